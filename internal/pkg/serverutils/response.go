package serverutils

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

// ValidateStruct runs the `validate` tags on a request DTO.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// SuccessResponse builds the standard success envelope.
func SuccessResponse(message string, data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"code":    200,
		"message": message,
		"data":    data,
	}
}

// ErrorResponse builds the standard error envelope.
func ErrorResponse(code int, message string) fiber.Map {
	return fiber.Map{
		"success": false,
		"code":    code,
		"message": message,
	}
}

// ErrorHandlerMiddleware converts uncaught errors into the standard
// envelope so handlers can simply `return err`.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}

		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}

// UserFromLocals reads the authenticated identity the JWT middleware
// stored on the request.
func UserFromLocals(ctx *fiber.Ctx) (uuid.UUID, string, error) {
	idStr, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	userId, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, "", fiber.NewError(fiber.StatusBadRequest, "Invalid user ID")
	}
	email, _ := ctx.Locals("email").(string)
	return userId, email, nil
}
