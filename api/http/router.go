package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/resumematch/api/http/handlers"
	"github.com/artem13815/resumematch/pkg/security/jwt"
)

// Handlers bundles every route handler.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Health   *handlers.HealthHandler
	Resumes  *handlers.ResumesHandler
	Vacancy  *handlers.VacancyHandler
	Analysis *handlers.AnalysisHandler
	Skills   *handlers.SkillsHandler
}

// Register wires all HTTP routes onto given Fiber app. authMW guards every
// route except health probes and /auth.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)

	r := v1.Group("/resumes", authMW)
	r.Post("/", h.Resumes.Upload)
	r.Get("/", h.Resumes.List)
	r.Get("/:id", h.Resumes.Get)
	r.Delete("/:id", h.Resumes.Delete)
	r.Post("/:id/reprocess", h.Resumes.Reprocess)
	r.Get("/:id/skills", h.Resumes.Skills)
	r.Get("/:id/file", h.Resumes.Download)

	v := v1.Group("/vacancies", authMW)
	v.Post("/", h.Vacancy.Create)
	v.Get("/", h.Vacancy.List)
	v.Get("/:id", h.Vacancy.Get)
	v.Delete("/:id", h.Vacancy.Delete)
	v.Post("/:id/reprocess", h.Vacancy.Reprocess)
	v.Get("/:id/analyses", h.Analysis.ListByVacancy)
	v.Get("/:id/analyses/export", h.Analysis.Export)

	an := v1.Group("/analyses", authMW)
	an.Post("/", h.Analysis.Create)
	an.Get("/", h.Analysis.List)
	an.Get("/:id", h.Analysis.Get)

	s := v1.Group("/skills", authMW)
	s.Get("/", h.Skills.List)
	s.Post("/seed", jwt.RequireAdmin(), h.Skills.Seed)
}
