package services

import (
	"context"
	"hash/fnv"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	portssvc "github.com/teaminfinity/expense_management/internal/core/ports/services"
	"github.com/teaminfinity/expense_management/internal/dto"
	"github.com/teaminfinity/expense_management/internal/middleware"
)

// ocrService is a stub extractor: it returns deterministic pseudo-extracted
// fields derived from the image URL so that clients can integrate against the
// endpoint before a real OCR provider is wired in.
// TODO: replace with a real OCR provider once one is chosen.
type ocrService struct{}

// NewOcrService creates a new OcrService.
func NewOcrService() portssvc.OcrSvcFacade {
	return &ocrService{}
}

// Ensure ocrService implements the OcrSvcFacade interface.
var _ portssvc.OcrSvcFacade = (*ocrService)(nil)

var ocrCategories = []string{"Meals", "Travel", "Office Supplies", "Lodging", "Other"}

// ExtractReceipt extracts expense fields from a receipt image.
func (s *ocrService) ExtractReceipt(ctx context.Context, req dto.OcrRequest) (*dto.OcrResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	h := fnv.New32a()
	h.Write([]byte(req.ImageURL))
	seed := h.Sum32()

	// Amount in the 5.00 - 504.99 range, stable for the same image URL.
	cents := int64(seed%50000) + 500
	amount := decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))

	resp := &dto.OcrResponse{
		Amount:       amount,
		CurrencyCode: "USD",
		ExpenseDate:  time.Now().UTC().Truncate(24 * time.Hour),
		Merchant:     "Scanned Merchant",
		Category:     ocrCategories[seed%uint32(len(ocrCategories))],
	}

	logger.Info("Receipt extracted", slog.String("image_url", req.ImageURL), slog.String("amount", resp.Amount.String()))
	return resp, nil
}
