package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/validation"
)

// input arma el mapa crudo que reciben los casos de uso:
// cuerpo JSON (si hay) + query string + parámetros de ruta. Los parámetros de
// ruta ganan sobre el cuerpo; la query solo completa claves ausentes.
//
// Un cuerpo que no es un objeto JSON no corta la petición aquí: queda marcado
// en validation.MalformedBody y el caso de uso lo rechaza al validar, después
// de autorizar (un rol sin permiso recibe 403, no 400).
func input(c *fiber.Ctx) map[string]any {
	raw := map[string]any{}
	if body := c.Body(); len(body) > 0 {
		if err := c.App().Config().JSONDecoder(body, &raw); err != nil {
			raw = map[string]any{validation.MalformedBody: true}
		}
		if raw == nil {
			raw = map[string]any{}
		}
	}
	for k, v := range c.Queries() {
		if _, ok := raw[k]; !ok {
			raw[k] = v
		}
	}
	for k, v := range c.AllParams() {
		raw[k] = v
	}
	return raw
}
