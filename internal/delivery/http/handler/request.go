package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/parquimetro-map/internal/pkg/errors"
	"github.com/parquimetro-map/internal/pkg/validator"
)

// sessionID читает :id из пути
func sessionID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidSessionID
	}
	return id, nil
}

// bindBody разбирает JSON тело и валидирует его
func bindBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"body": "invalid JSON body",
		})
	}
	return validator.Validate(req)
}

// bindQuery разбирает query параметры и валидирует их
func bindQuery(c *fiber.Ctx, req interface{}) error {
	if err := c.QueryParser(req); err != nil {
		return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"query": err.Error(),
		})
	}
	return validator.Validate(req)
}
