// seed crea una sucursal de demostración con su dueño y el catálogo de productos,
// y muestra un token de desarrollo para probar la API.
//
// Uso: go run ./cmd/seed [catalogo.csv]
// El CSV externo se asume exportado en ISO-8859-1 (categoria;nombre;precio;stock).
// Sin argumento se usa el catálogo de demostración embebido.
package main

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/store"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/jwt"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

//go:embed demo_catalog.csv
var demoCatalog []byte

const ownerEmail = "dueno@tienda.co"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	var src io.Reader = bytes.NewReader(demoCatalog)
	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("abrir catálogo")
		}
		defer f.Close()
		src = latin1Reader(f)
	}
	rows, err := parseCatalog(src)
	if err != nil {
		log.Fatal().Err(err).Msg("catálogo inválido")
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg, log.Component("gateway"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir persistencia")
	}
	defer st.Close()

	var owner *entity.Staff
	err = st.Tx.Run(ctx, func(r repository.Repos) error {
		var err error
		owner, err = seed(ctx, r, rows, time.Now().UTC())
		return err
	})
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar datos")
	}
	log.Info().Str("branch_id", owner.BranchID).Int("products", len(rows)).Msg("datos de demostración creados")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: no se genera token de desarrollo")
		return
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, jwt.Identity{
		AccountID: owner.ID,
		Email:     owner.Email,
		Role:      string(owner.Role),
		BranchID:  owner.BranchID,
	}, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal().Err(err).Msg("generar token")
	}
	fmt.Printf("Authorization: Bearer %s\n", tok)
}

// seed inserta sucursal, dueño, categorías y productos. Devuelve el dueño.
func seed(ctx context.Context, r repository.Repos, rows []catalogRow, now time.Time) (*entity.Staff, error) {
	branch := &entity.Branch{
		ID:         uuid.NewString(),
		Name:       "Sucursal Principal",
		Attributes: []byte(`{"ciudad":"Bogotá"}`),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := r.Branches.Create(ctx, branch); err != nil {
		return nil, fmt.Errorf("sucursal: %w", err)
	}

	owner := &entity.Staff{
		ID:        uuid.NewString(),
		BranchID:  branch.ID,
		FirstName: "Dueño",
		LastName:  "Demo",
		Email:     ownerEmail,
		Role:      entity.RoleOwner,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.Staff.Create(ctx, owner); err != nil {
		return nil, fmt.Errorf("dueño: %w", err)
	}

	categories := map[string]string{}
	for _, row := range rows {
		catID, ok := categories[row.Category]
		if !ok {
			cat := &entity.Category{
				ID:        uuid.NewString(),
				BranchID:  branch.ID,
				Name:      row.Category,
				Active:    true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := r.Categories.Create(ctx, cat); err != nil {
				return nil, fmt.Errorf("categoría %q: %w", row.Category, err)
			}
			catID = cat.ID
			categories[row.Category] = catID
		}
		p := &entity.Product{
			ID:         uuid.NewString(),
			BranchID:   branch.ID,
			CategoryID: catID,
			Name:       row.Name,
			Price:      row.Price,
			Stock:      row.Stock,
			Currency:   "COP",
			Available:  true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := r.Products.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("producto %q: %w", row.Name, err)
		}
	}
	return owner, nil
}
