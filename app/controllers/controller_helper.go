package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}

// maskAPIKey keeps enough of a provider key for an admin to recognize it
// without ever echoing the credential itself.
func maskAPIKey(key string) string {
	key = strings.TrimSpace(key)
	if len(key) <= 4 {
		return "****"
	}
	return key[:4] + "****"
}
