package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/backoffice-api/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateParse_RoundTrip(t *testing.T) {
	id := pkgjwt.Identity{AccountID: "acc-1", Email: "ana@example.com", Role: "ADMIN", BranchID: "b-1"}
	tok, err := pkgjwt.Generate(secret, id, "idp", 5)
	require.NoError(t, err)

	got, err := pkgjwt.Parse(secret, tok, "idp")
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_Rechazos(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, pkgjwt.Identity{AccountID: "a"}, "idp", 5)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secreto", tok, "idp")
	assert.Error(t, err, "firma incorrecta")

	_, err = pkgjwt.Parse(secret, tok, "otro-emisor")
	assert.Error(t, err, "emisor incorrecto")

	expired, err := pkgjwt.Generate(secret, pkgjwt.Identity{AccountID: "a"}, "idp", -1)
	require.NoError(t, err)
	_, err = pkgjwt.Parse(secret, expired, "idp")
	assert.Error(t, err, "token expirado")

	_, err = pkgjwt.Parse("", tok, "")
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
}
