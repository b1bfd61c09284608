package presenter

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/resumematch/pkg/analysis"
	"github.com/artem13815/resumematch/pkg/auth"
	"github.com/artem13815/resumematch/pkg/logger"
	"github.com/artem13815/resumematch/pkg/matching"
	"github.com/artem13815/resumematch/pkg/resume"
	"github.com/artem13815/resumematch/pkg/skill"
	"github.com/artem13815/resumematch/pkg/vacancy"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// FromError maps a domain error to a status code. Unknown errors are logged
// and reported as 500 without details.
func FromError(c *fiber.Ctx, err error) error {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.Ctx(c.UserContext()).Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return Error(c, status, "internal error")
	}
	return Error(c, status, err.Error())
}

// StatusFor picks the HTTP status for err.
func StatusFor(err error) int {
	var (
		fe      *fiber.Error
		invalid vacancy.ErrValidation
	)
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, resume.ErrNotFound),
		errors.Is(err, vacancy.ErrNotFound),
		errors.Is(err, analysis.ErrNotFound),
		errors.Is(err, skill.ErrNotFound),
		errors.Is(err, auth.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, resume.ErrEmptyText),
		errors.Is(err, resume.ErrUnsupportedFormat),
		errors.Is(err, vacancy.ErrEmptyText),
		errors.Is(err, skill.ErrInvalidSeed),
		errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.Is(err, matching.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, auth.ErrUserAlreadyExists),
		errors.Is(err, resume.ErrInUse),
		errors.Is(err, vacancy.ErrInUse):
		return http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
