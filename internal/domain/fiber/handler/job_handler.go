package handler

import (
	"time"

	"github.com/dhealy/applytrack/internal/apperror"
	"github.com/dhealy/applytrack/internal/dto"
	"github.com/dhealy/applytrack/internal/middleware"
	"github.com/dhealy/applytrack/internal/usecase"
	"github.com/dhealy/applytrack/internal/util"
	"github.com/gofiber/fiber/v2"
)

type JobHandler struct {
	jobs      *usecase.JobUsecase
	importer  *usecase.ImportUsecase
	discovery *usecase.DiscoveryUsecase
	analysis  *usecase.AnalysisUsecase
	letters   *usecase.CoverLetterUsecase
}

func NewJobHandler(
	jobs *usecase.JobUsecase,
	importer *usecase.ImportUsecase,
	discovery *usecase.DiscoveryUsecase,
	analysis *usecase.AnalysisUsecase,
	letters *usecase.CoverLetterUsecase,
) *JobHandler {
	return &JobHandler{
		jobs:      jobs,
		importer:  importer,
		discovery: discovery,
		analysis:  analysis,
		letters:   letters,
	}
}

func (h *JobHandler) RegisterRoutes(app *fiber.App) {
	// LLM-backed routes sit behind a tight limiter; each call costs tokens.
	llmLimit := middleware.RateLimiter(1, 4*time.Second)

	api := app.Group("/api")
	// Static paths before :id so "import-url" is never read as a job id.
	api.Post("/jobs/import-url", llmLimit, h.ImportURL)
	api.Post("/jobs/discover", llmLimit, h.Discover)
	api.Get("/jobs/analyze-all", h.AnalyzeAllStatus)
	api.Post("/jobs/analyze-all", llmLimit, h.AnalyzeAll)
	api.Get("/jobs", h.List)
	api.Post("/jobs", h.Create)
	api.Get("/jobs/:id", h.Get)
	api.Patch("/jobs/:id", h.Patch)
	api.Post("/jobs/:id/analyze", llmLimit, h.Analyze)
	api.Post("/jobs/:id/apply", h.Apply)
	api.Get("/jobs/:id/cover-letter", h.GetCoverLetter)
	api.Post("/jobs/:id/cover-letter", llmLimit, h.GenerateCoverLetter)
}

func (h *JobHandler) List(c *fiber.Ctx) error {
	jobs, pagination, err := h.jobs.List(
		c.Query("filter"),
		c.Query("q"),
		c.QueryInt("page", 1),
		c.QueryInt("limit", 0),
	)
	if err != nil {
		return util.FromError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "jobs listed",
		Data:       jobs,
		Pagination: pagination,
	})
}

func (h *JobHandler) Create(c *fiber.Ctx) error {
	var req dto.JobCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.FromError(c, &apperror.ValidationError{Message: "invalid request body"})
	}
	job, err := h.jobs.Create(&req)
	if err != nil {
		return util.FromError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "job created",
		Data:    job,
	})
}

func (h *JobHandler) Get(c *fiber.Ctx) error {
	job, err := h.jobs.Get(c.Params("id"))
	if err != nil {
		return util.FromError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "job found",
		Data:    job,
	})
}

func (h *JobHandler) Patch(c *fiber.Ctx) error {
	var req dto.JobPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return util.FromError(c, &apperror.ValidationError{Message: "invalid request body"})
	}
	job, err := h.jobs.UpdateStatus(c.Params("id"), req.Status)
	if err != nil {
		return util.FromError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "job updated",
		Data:    job,
	})
}

func (h *JobHandler) ImportURL(c *fiber.Ctx) error {
	var req dto.ImportURLRequest
	if err := c.BodyParser(&req); err != nil {
		return util.FromError(c, &apperror.ValidationError{Message: "invalid request body"})
	}
	job, err := h.importer.ImportFromURL(c.Context(), req.URL)
	if err != nil {
		return util.FromError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "job imported",
		Data:    job,
	})
}

func (h *JobHandler) Discover(c *fiber.Ctx) error {
	result, err := h.discovery.Run(c.Context())
	if err != nil {
		return util.FromError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "feed discovery finished",
		Data:    result,
	})
}

func (h *JobHandler) Analyze(c *fiber.Ctx) error {
	job, err := h.analysis.AnalyzeJob(c.Context(), c.Params("id"))
	if err != nil {
		return util.FromError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "job analyzed",
		Data:    job,
	})
}

func (h *JobHandler) AnalyzeAllStatus(c *fiber.Ctx) error {
	pending, err := h.analysis.CountUnanalyzed()
	if err != nil {
		return util.FromError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "pending analysis count",
		Data:    fiber.Map{"unanalyzed": pending},
	})
}

func (h *JobHandler) AnalyzeAll(c *fiber.Ctx) error {
	result, err := h.analysis.AnalyzeBatch(c.Context())
	if err != nil {
		return util.FromError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "batch analysis finished",
		Data:    result,
	})
}

func (h *JobHandler) Apply(c *fiber.Ctx) error {
	var req dto.ApplyRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return util.FromError(c, &apperror.ValidationError{Message: "invalid request body"})
	}
	app, err := h.jobs.Apply(c.Params("id"), &req)
	if err != nil {
		return util.FromError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "application recorded",
		Data:    app,
	})
}

func (h *JobHandler) GetCoverLetter(c *fiber.Ctx) error {
	letter, err := h.letters.Latest(c.Params("id"))
	if err != nil {
		return util.FromError(c, err)
	}
	if letter == nil {
		return util.SuccessResponse(c, util.SuccessResponseFormat{
			Message: "no cover letter yet",
		})
	}
	if c.Query("format") == "html" {
		return util.SuccessResponse(c, util.SuccessResponseFormat{
			Message: "cover letter found",
			Data: fiber.Map{
				"id":         letter.ID,
				"job_id":     letter.JobID,
				"html":       h.letters.RenderHTML(letter),
				"created_at": letter.CreatedAt,
			},
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "cover letter found",
		Data:    letter,
	})
}

func (h *JobHandler) GenerateCoverLetter(c *fiber.Ctx) error {
	letter, err := h.letters.Generate(c.Context(), c.Params("id"))
	if err != nil {
		return util.FromError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "cover letter generated",
		Data:    letter,
	})
}
