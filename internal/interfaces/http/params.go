package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// queryBool devuelve nil si el parámetro no llegó o no es un booleano.
func queryBool(c *fiber.Ctx, key string) *bool {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}

