package http

import (
	"errors"
	"net/http"
	"strings"

	"oqassets-backend/internal/domain/asset"
	"oqassets-backend/internal/domain/document"
	"oqassets-backend/internal/domain/loan"
	"oqassets-backend/internal/domain/valuation"

	"github.com/labstack/echo/v4"
)

// writeError maps domain sentinels onto HTTP statuses. The error text is
// passed through so admission rejections carry the computed LTV.
func writeError(c echo.Context, err error) error {
	return c.JSON(statusFromError(err), ErrorResponse{Error: err.Error()})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, loan.ErrNotFound),
		errors.Is(err, asset.ErrNotFound),
		errors.Is(err, document.ErrNotFound),
		errors.Is(err, valuation.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, asset.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, loan.ErrAssetCollateralized),
		errors.Is(err, loan.ErrNotActive),
		errors.Is(err, asset.ErrAlreadyMinted),
		errors.Is(err, valuation.ErrNotDone),
		errors.Is(err, document.ErrNotValued):
		return http.StatusConflict
	case errors.Is(err, loan.ErrLTVTooHigh):
		return http.StatusUnprocessableEntity
	case errors.Is(err, asset.ErrMintFailed):
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

// ---- test helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
