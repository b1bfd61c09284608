package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/resumematch/api/http/presenter"
	"github.com/artem13815/resumematch/pkg/analysis"
	"github.com/artem13815/resumematch/pkg/security/jwt"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AnalysisHandler struct {
	uc analysis.UseCase
}

func NewAnalysisHandler(uc analysis.UseCase) *AnalysisHandler { return &AnalysisHandler{uc: uc} }

type createAnalysisRequest struct {
	ResumeID  string `json:"resumeId"`
	VacancyID string `json:"vacancyId"`
}

// Create scores a resume against a vacancy and stores a new snapshot.
// @Summary Create analysis
// @Description Every call stores a new immutable analysis; earlier ones are kept.
// @Tags    analyses
// @Accept  json
// @Produce json
// @Param   input body createAnalysisRequest true "resumeId and vacancyId"
// @Security BearerAuth
// @Success 201 {object} analysis.Analysis
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /analyses [post]
func (h *AnalysisHandler) Create(c *fiber.Ctx) error {
	actorID, isAdmin, err := jwt.Actor(c)
	if err != nil {
		return presenter.FromError(c, err)
	}
	var req createAnalysisRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	resumeID, err1 := uuid.Parse(req.ResumeID)
	vacancyID, err2 := uuid.Parse(req.VacancyID)
	if err1 != nil || err2 != nil {
		return presenter.Error(c, http.StatusBadRequest, "resumeId and vacancyId must be UUIDs")
	}
	a, err := h.uc.Create(c.UserContext(), actorID, isAdmin, resumeID, vacancyID)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, a)
}

// Get returns one analysis.
// @Summary Get analysis
// @Tags    analyses
// @Produce json
// @Param   id path string true "analysis id (UUID)"
// @Security BearerAuth
// @Success 200 {object} analysis.Analysis
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /analyses/{id} [get]
func (h *AnalysisHandler) Get(c *fiber.Ctx) error {
	return withScope(c, func(c *fiber.Ctx, d scope) error {
		a, err := h.uc.Get(c.UserContext(), d.actorID, d.isAdmin, d.id)
		if err != nil {
			return presenter.FromError(c, err)
		}
		return presenter.JSON(c, http.StatusOK, a)
	})
}

// List returns the caller's analyses, newest first.
// @Summary List analyses
// @Tags    analyses
// @Produce json
// @Param   limit query int false "page size (1-200)"
// @Param   offset query int false "offset"
// @Security BearerAuth
// @Success 200 {array} analysis.Analysis
// @Router  /analyses [get]
func (h *AnalysisHandler) List(c *fiber.Ctx) error {
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

// ListByVacancy returns the analysis history of one vacancy.
// @Summary Vacancy analyses
// @Tags    analyses
// @Produce json
// @Param   id path string true "vacancy id (UUID)"
// @Param   limit query int false "page size (1-200)"
// @Param   offset query int false "offset"
// @Security BearerAuth
// @Success 200 {array} analysis.Analysis
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /vacancies/{id}/analyses [get]
func (h *AnalysisHandler) ListByVacancy(c *fiber.Ctx) error {
	return withScope(c, func(c *fiber.Ctx, d scope) error {
		limit, offset := parseLimitOffset(c, defaultPageSize)
		items, err := h.uc.ListByVacancy(c.UserContext(), d.actorID, d.isAdmin, d.id, limit, offset)
		if err != nil {
			return presenter.FromError(c, err)
		}
		return presenter.JSON(c, http.StatusOK, items)
	})
}

// Export downloads every analysis of a vacancy as an XLSX workbook.
// @Summary Export vacancy analyses
// @Tags    analyses
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   id path string true "vacancy id (UUID)"
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /vacancies/{id}/analyses/export [get]
func (h *AnalysisHandler) Export(c *fiber.Ctx) error {
	return withScope(c, func(c *fiber.Ctx, d scope) error {
		var buf bytes.Buffer
		if err := h.uc.ExportVacancy(c.UserContext(), d.actorID, d.isAdmin, d.id, &buf); err != nil {
			return presenter.FromError(c, err)
		}
		c.Set(fiber.HeaderContentType, xlsxContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="analyses-%s.xlsx"`, d.id))
		return c.Status(http.StatusOK).Send(buf.Bytes())
	})
}
