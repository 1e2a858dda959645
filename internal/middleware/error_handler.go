package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"storemanager/internal/apperrors"
)

// ErrorHandler renders every error escaping a handler as the uniform
// {err: {message, code}} body. Domain errors carry their own status and
// code; anything else collapses to the generic 500 shape.
func ErrorHandler(c *fiber.Ctx, err error) error {
	log.Println(err.Error())

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return c.Status(appErr.Status()).JSON(fiber.Map{
			"err": fiber.Map{
				"message": appErr.Message,
				"code":    appErr.Code(),
			},
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"err": fiber.Map{
			"message": "Internal Server Error",
			"code":    "Internal Server Error",
		},
	})
}
