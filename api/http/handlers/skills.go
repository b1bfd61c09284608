package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/resumematch/api/http/presenter"
	"github.com/artem13815/resumematch/pkg/skill"
)

type SkillsHandler struct {
	uc skill.UseCase
}

func NewSkillsHandler(uc skill.UseCase) *SkillsHandler { return &SkillsHandler{uc: uc} }

// List returns the skill vocabulary.
// @Summary List skills
// @Tags    skills
// @Produce json
// @Security BearerAuth
// @Success 200 {array} skill.Skill
// @Router  /skills [get]
func (h *SkillsHandler) List(c *fiber.Ctx) error {
	vocab, err := h.uc.Vocabulary(c.UserContext())
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, vocab.Entries())
}

// Seed loads vocabulary entries. The body is a JSON array of {name, category};
// an empty body loads the bundled default list.
// @Summary Seed skills (admin)
// @Tags    skills
// @Accept  json
// @Produce json
// @Param   input body []skill.Skill false "entries to add"
// @Security BearerAuth
// @Success 200 {object} skill.SeedResult
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /skills/seed [post]
func (h *SkillsHandler) Seed(c *fiber.Ctx) error {
	var src io.Reader = bytes.NewReader(c.Body())
	if len(bytes.TrimSpace(c.Body())) == 0 {
		src = skill.DefaultSeed()
	}
	res, err := h.uc.Seed(c.UserContext(), src)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}
