package http

import (
	"net/http"

	"oqassets-backend/internal/usecase/document"

	"github.com/labstack/echo/v4"
)

type DocumentHandler struct{ uc *document.Usecase }

func NewDocumentHandler(uc *document.Usecase) *DocumentHandler { return &DocumentHandler{uc: uc} }

type registerDocumentReq struct {
	OwnerAddress string `json:"owner_address" validate:"required,hexaddr"`
	FileName     string `json:"file_name"     validate:"required"`
	DocHash      string `json:"doc_hash"      validate:"required,hex64"`
	AssetType    string `json:"asset_type"    validate:"omitempty,oneof=invoice"`
	MaturityDate string `json:"maturity_date" validate:"required,datetime=2006-01-02"`
}

func (h *DocumentHandler) RegisterDocument(c echo.Context) error {
	var req registerDocumentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Register(c.Request().Context(), document.RegisterInput{
		OwnerAddress: req.OwnerAddress,
		FileName:     req.FileName,
		DocHash:      req.DocHash,
		AssetType:    req.AssetType,
		MaturityDate: req.MaturityDate,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *DocumentHandler) GetDocument(c echo.Context) error {
	documentID := c.Param("document_id")
	if documentID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing document_id path param"})
	}
	dto, err := h.uc.Get(c.Request().Context(), documentID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
