package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/resumematch/api/http/presenter"
	"github.com/artem13815/resumematch/pkg/security/jwt"
	"github.com/artem13815/resumematch/pkg/vacancy"
)

type VacancyHandler struct {
	uc vacancy.UseCase
}

func NewVacancyHandler(uc vacancy.UseCase) *VacancyHandler { return &VacancyHandler{uc: uc} }

type createVacancyRequest struct {
	Title   string `json:"title"`
	RawText string `json:"rawText"`
}

// Create stores a job description and derives its requirements.
// @Summary Create vacancy
// @Description Sections, required skills with importance and minimum years are extracted from rawText.
// @Tags        vacancies
// @Accept      json
// @Produce     json
// @Param       input body createVacancyRequest true "title and JD text"
// @Security    BearerAuth
// @Success     201 {object} vacancy.Vacancy
// @Failure     400 {object} presenter.ErrorResponse
// @Router      /vacancies [post]
func (h *VacancyHandler) Create(c *fiber.Ctx) error {
	actorID, _, err := jwt.Actor(c)
	if err != nil {
		return presenter.FromError(c, err)
	}
	var req createVacancyRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	v, err := h.uc.Create(c.UserContext(), actorID, req.Title, req.RawText)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, v)
}

// Get returns one vacancy.
// @Summary Get vacancy
// @Tags    vacancies
// @Produce json
// @Param   id path string true "vacancy id (UUID)"
// @Security BearerAuth
// @Success 200 {object} vacancy.Vacancy
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /vacancies/{id} [get]
func (h *VacancyHandler) Get(c *fiber.Ctx) error {
	return withScope(c, func(c *fiber.Ctx, d scope) error {
		v, err := h.uc.Get(c.UserContext(), d.actorID, d.isAdmin, d.id)
		if err != nil {
			return presenter.FromError(c, err)
		}
		return presenter.JSON(c, http.StatusOK, v)
	})
}

// List returns the caller's vacancies, or all of them for admins.
// @Summary List vacancies
// @Tags    vacancies
// @Produce json
// @Param   limit query int false "page size (1-200)"
// @Param   offset query int false "offset"
// @Security BearerAuth
// @Success 200 {array} vacancy.Vacancy
// @Router  /vacancies [get]
func (h *VacancyHandler) List(c *fiber.Ctx) error {
	actorID, isAdmin, err := jwt.Actor(c)
	if err != nil {
		return presenter.FromError(c, err)
	}
	limit, offset := parseLimitOffset(c, defaultPageSize)
	items, err := h.uc.List(c.UserContext(), actorID, isAdmin, limit, offset)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Reprocess re-derives requirements with the current vocabulary.
// @Summary Reprocess vacancy
// @Tags    vacancies
// @Produce json
// @Param   id path string true "vacancy id (UUID)"
// @Security BearerAuth
// @Success 200 {object} vacancy.Vacancy
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /vacancies/{id}/reprocess [post]
func (h *VacancyHandler) Reprocess(c *fiber.Ctx) error {
	return withScope(c, func(c *fiber.Ctx, d scope) error {
		v, err := h.uc.Reprocess(c.UserContext(), d.actorID, d.isAdmin, d.id)
		if err != nil {
			return presenter.FromError(c, err)
		}
		return presenter.JSON(c, http.StatusOK, v)
	})
}

// Delete removes a vacancy together with its analyses.
// @Summary Delete vacancy
// @Tags    vacancies
// @Param   id path string true "vacancy id (UUID)"
// @Security BearerAuth
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /vacancies/{id} [delete]
func (h *VacancyHandler) Delete(c *fiber.Ctx) error {
	return withScope(c, func(c *fiber.Ctx, d scope) error {
		if err := h.uc.Delete(c.UserContext(), d.actorID, d.isAdmin, d.id); err != nil {
			return presenter.FromError(c, err)
		}
		return c.SendStatus(http.StatusNoContent)
	})
}
