package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/authz"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/pkg/jwt"
)

// LocalActor clave en c.Locals del usuario autenticado.
const LocalActor = "actor"

// AuthConfig verificación de los tokens del proveedor de identidad.
type AuthConfig struct {
	Secret string
	Issuer string // vacío = no se valida el emisor
}

// AuthMiddleware valida el Bearer Token y deja el authz.Actor en c.Locals.
// Cualquier fallo responde 401 UNAUTHENTICATED antes de llegar al dominio.
func AuthMiddleware(cfg AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return writeError(c, domain.ErrUnauthenticated.WithMessage("Authorization header requerido"))
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return writeError(c, domain.ErrUnauthenticated.WithMessage("formato: Bearer <token>"))
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return writeError(c, domain.ErrUnauthenticated.WithMessage("token vacío"))
		}
		id, err := jwt.Parse(cfg.Secret, tokenString, cfg.Issuer)
		if err != nil {
			return writeError(c, domain.ErrUnauthenticated.WithMessage("token inválido o expirado"))
		}
		role, ok := entity.ParseRole(id.Role)
		if !ok {
			return writeError(c, domain.ErrUnauthenticated.WithMessage("el token no trae un rol válido"))
		}
		c.Locals(LocalActor, authz.Actor{
			AccountID: id.AccountID,
			Email:     id.Email,
			Role:      role,
			BranchID:  id.BranchID,
		})
		return c.Next()
	}
}

// GetActor devuelve el actor del contexto (después del middleware de auth).
// Sin middleware devuelve un actor vacío, que la política deniega.
func GetActor(c *fiber.Ctx) authz.Actor {
	a, _ := c.Locals(LocalActor).(authz.Actor)
	return a
}
