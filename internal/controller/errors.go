package controller

import (
	"errors"

	"github.com/benbeisheim/chessrules-backend/internal/chess"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// statusOf maps domain errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrGameExists),
		errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrAlreadyQueued),
		errors.Is(err, chess.ErrGameOver),
		errors.Is(err, chess.ErrWrongTurn):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrPlayerNotInGame),
		errors.Is(err, model.ErrNotYourPiece),
		errors.Is(err, model.ErrNotAuthorized):
		return fiber.StatusForbidden
	case errors.Is(err, chess.ErrIllegalDestination),
		errors.Is(err, chess.ErrNoPieceAtSource),
		errors.Is(err, chess.ErrDeadPiece),
		errors.Is(err, chess.ErrInvalidFEN):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, chess.ErrOutOfBounds):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func sendError(c *fiber.Ctx, err error) error {
	status := statusOf(err)
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
