package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/resumematch/api/http/presenter"
	"github.com/artem13815/resumematch/pkg/security/jwt"
)

// scope is the caller and the :id path parameter of a request.
type scope struct {
	actorID uuid.UUID
	isAdmin bool
	id      uuid.UUID
}

func withScope(c *fiber.Ctx, fn func(*fiber.Ctx, scope) error) error {
	actorID, isAdmin, err := jwt.Actor(c)
	if err != nil {
		return presenter.FromError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return fn(c, scope{actorID: actorID, isAdmin: isAdmin, id: id})
}
