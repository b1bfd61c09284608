package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/resumematch/api/http/presenter"
	"github.com/artem13815/resumematch/pkg/resume"
	"github.com/artem13815/resumematch/pkg/security/jwt"
)

type ResumesHandler struct {
	uc       resume.UseCase
	maxBytes int64
}

func NewResumesHandler(uc resume.UseCase, maxBytes int64) *ResumesHandler {
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &ResumesHandler{uc: uc, maxBytes: maxBytes}
}

// Upload stores a resume file and runs the extraction pipeline on it.
// @Summary Upload resume
// @Description Accepts PDF, DOCX or TXT. Returns metadata, detected sections, experience years and skills.
// @Tags        resumes
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "Resume file (pdf, docx, txt)"
// @Security    BearerAuth
// @Success     201 {object} resume.Details
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     401 {object} presenter.ErrorResponse
// @Failure     413 {object} presenter.ErrorResponse
// @Router      /resumes [post]
func (h *ResumesHandler) Upload(c *fiber.Ctx) error {
	actorID, _, err := jwt.Actor(c)
	if err != nil {
		return presenter.FromError(c, err)
	}
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required (pdf, docx or txt)")
	}
	if fh.Size > h.maxBytes {
		return presenter.Error(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", h.maxBytes))
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to read uploaded file")
	}
	if int64(len(data)) > h.maxBytes {
		return presenter.Error(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", h.maxBytes))
	}

	details, err := h.uc.Ingest(c.UserContext(), resume.Upload{
		OwnerID:  actorID,
		Filename: fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Data:     data,
	})
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, details)
}

// List returns the caller's resumes, or all of them for admins.
// @Summary List resumes
// @Tags    resumes
// @Produce json
// @Param   limit query int false "page size (1-200)"
// @Param   offset query int false "offset"
// @Security BearerAuth
// @Success 200 {array} resume.Resume
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /resumes [get]
func (h *ResumesHandler) List(c *fiber.Ctx) error {
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

// Get returns metadata, the parsed record and the extracted skills.
// @Summary Get resume
// @Tags    resumes
// @Produce json
// @Param   id path string true "resume id (UUID)"
// @Security BearerAuth
// @Success 200 {object} resume.Details
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [get]
func (h *ResumesHandler) Get(c *fiber.Ctx) error {
	return withScope(c, func(c *fiber.Ctx, d scope) error {
		details, err := h.uc.Get(c.UserContext(), d.actorID, d.isAdmin, d.id)
		if err != nil {
			return presenter.FromError(c, err)
		}
		return presenter.JSON(c, http.StatusOK, details)
	})
}

// Skills returns the skills extracted from a resume.
// @Summary Resume skills
// @Tags    resumes
// @Produce json
// @Param   id path string true "resume id (UUID)"
// @Security BearerAuth
// @Success 200 {array} skill.Extracted
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/skills [get]
func (h *ResumesHandler) Skills(c *fiber.Ctx) error {
	return withScope(c, func(c *fiber.Ctx, d scope) error {
		skills, err := h.uc.Skills(c.UserContext(), d.actorID, d.isAdmin, d.id)
		if err != nil {
			return presenter.FromError(c, err)
		}
		return presenter.JSON(c, http.StatusOK, skills)
	})
}

// Reprocess re-runs extraction on the stored text.
// @Summary Reprocess resume
// @Tags    resumes
// @Produce json
// @Param   id path string true "resume id (UUID)"
// @Security BearerAuth
// @Success 200 {object} resume.Details
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/reprocess [post]
func (h *ResumesHandler) Reprocess(c *fiber.Ctx) error {
	return withScope(c, func(c *fiber.Ctx, d scope) error {
		details, err := h.uc.Reprocess(c.UserContext(), d.actorID, d.isAdmin, d.id)
		if err != nil {
			return presenter.FromError(c, err)
		}
		return presenter.JSON(c, http.StatusOK, details)
	})
}

// Download sends the original file.
// @Summary Download resume file
// @Tags    resumes
// @Produce application/octet-stream
// @Param   id path string true "resume id (UUID)"
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/file [get]
func (h *ResumesHandler) Download(c *fiber.Ctx) error {
	return withScope(c, func(c *fiber.Ctx, d scope) error {
		details, err := h.uc.Get(c.UserContext(), d.actorID, d.isAdmin, d.id)
		if err != nil {
			return presenter.FromError(c, err)
		}
		return c.Download(details.Resume.StorageURI, details.Resume.Filename)
	})
}

// Delete removes a resume, its derived records and the stored file.
// @Summary Delete resume
// @Tags    resumes
// @Param   id path string true "resume id (UUID)"
// @Security BearerAuth
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [delete]
func (h *ResumesHandler) Delete(c *fiber.Ctx) error {
	return withScope(c, func(c *fiber.Ctx, d scope) error {
		if err := h.uc.Delete(c.UserContext(), d.actorID, d.isAdmin, d.id); err != nil {
			return presenter.FromError(c, err)
		}
		return c.SendStatus(http.StatusNoContent)
	})
}

