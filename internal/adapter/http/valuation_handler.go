package http

import (
	"net/http"

	"oqassets-backend/internal/usecase/tokenize"
	"oqassets-backend/internal/usecase/valuation"

	"github.com/labstack/echo/v4"
)

type ValuationHandler struct {
	pipeline *valuation.Pipeline
	tokenize *tokenize.Usecase
}

func NewValuationHandler(p *valuation.Pipeline, t *tokenize.Usecase) *ValuationHandler {
	return &ValuationHandler{pipeline: p, tokenize: t}
}

// StartValuation enqueues a job and kicks it off in the background; the
// response only acknowledges the job, progress arrives via the event channel.
func (h *ValuationHandler) StartValuation(c echo.Context) error {
	documentID := c.Param("document_id")
	if documentID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing document_id path param"})
	}
	dto, err := h.pipeline.Enqueue(c.Request().Context(), documentID)
	if err != nil {
		return writeError(c, err)
	}
	go h.pipeline.Process(dto.JobID)
	return c.JSON(http.StatusAccepted, dto)
}

func (h *ValuationHandler) GetValuation(c echo.Context) error {
	jobID := c.Param("job_id")
	if jobID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing job_id path param"})
	}
	dto, err := h.pipeline.Get(c.Request().Context(), jobID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type acceptValuationReq struct {
	OwnerAddress string `json:"owner_address" validate:"required,hexaddr"`
}

// AcceptValuation mints an oqAsset from a completed valuation.
func (h *ValuationHandler) AcceptValuation(c echo.Context) error {
	jobID := c.Param("job_id")
	if jobID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing job_id path param"})
	}
	var req acceptValuationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.tokenize.Accept(c.Request().Context(), tokenize.AcceptValuationInput{
		JobID:        jobID,
		OwnerAddress: req.OwnerAddress,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
