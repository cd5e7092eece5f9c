package bills

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/smartspend-ai/smartspend-backend/internal/classifier"
	"github.com/smartspend-ai/smartspend-backend/internal/ingestion"
	"github.com/smartspend-ai/smartspend-backend/internal/pricing"
	"github.com/smartspend-ai/smartspend-backend/pkg/db/models"
	"github.com/smartspend-ai/smartspend-backend/pkg/enums"
	pkgerrors "github.com/smartspend-ai/smartspend-backend/pkg/errors"
	"github.com/smartspend-ai/smartspend-backend/pkg/logger"
	"github.com/smartspend-ai/smartspend-backend/pkg/metrics"
)

// Service processes uploaded bills end to end and serves the persisted ones.
type Service interface {
	Upload(ctx context.Context, userID uuid.UUID, payload []byte, contentType string) (*models.Bill, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Bill, error)
	Get(ctx context.Context, userID, billID uuid.UUID) (*models.Bill, error)
}

type billRepository interface {
	Create(ctx context.Context, bill *models.Bill) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Bill, error)
	FindByIDForUser(ctx context.Context, billID, userID uuid.UUID) (*models.Bill, error)
}

type textExtractor interface {
	ExtractText(ctx context.Context, pngImage []byte) (string, error)
}

type itemClassifier interface {
	Classify(ctx context.Context, parsed []ingestion.ParsedItem) []classifier.Item
}

type priceComparator interface {
	Compare(ctx context.Context, name string, category enums.Category, originalPrice float64, quantity string) pricing.Comparison
}

// ServiceParams bundles the bill service dependencies.
type ServiceParams struct {
	Repo       billRepository
	Extractor  textExtractor
	Classifier itemClassifier
	Comparator priceComparator
	Pipeline   *metrics.PipelineMetrics
	Logger     *logger.Logger
}

type service struct {
	repo       billRepository
	extractor  textExtractor
	classifier itemClassifier
	comparator priceComparator
	pipeline   *metrics.PipelineMetrics
	logg       *logger.Logger
}

// NewService validates the dependency bundle and returns a bill service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, errors.New("bills: repository is required")
	}
	if params.Extractor == nil {
		return nil, errors.New("bills: text extractor is required")
	}
	if params.Classifier == nil {
		return nil, errors.New("bills: classifier is required")
	}
	if params.Comparator == nil {
		return nil, errors.New("bills: comparator is required")
	}
	if params.Logger == nil {
		return nil, errors.New("bills: logger is required")
	}
	return &service{
		repo:       params.Repo,
		extractor:  params.Extractor,
		classifier: params.Classifier,
		comparator: params.Comparator,
		pipeline:   params.Pipeline,
		logg:       params.Logger,
	}, nil
}

// Upload runs the full pipeline: image conversion, OCR, line parsing,
// classification and cross-platform comparison. The bill persists as one row
// only after every stage succeeds; a failure at any point leaves nothing
// behind.
func (s *service) Upload(ctx context.Context, userID uuid.UUID, payload []byte, contentType string) (*models.Bill, error) {
	ctx = s.logg.WithUserID(ctx, userID.String())

	start := time.Now()
	image, err := ingestion.PrepareImage(payload, contentType)
	s.pipeline.ObserveUploadStage("convert", time.Since(start))
	if err != nil {
		s.pipeline.IncBillsProcessed("unreadable_upload")
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnprocessable, err, "uploaded file could not be read as an image")
	}

	start = time.Now()
	text, err := s.extractor.ExtractText(ctx, image)
	s.pipeline.ObserveUploadStage("ocr", time.Since(start))
	if err != nil {
		s.pipeline.IncBillsProcessed("ocr_failure")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "text extraction failed")
	}
	if strings.TrimSpace(text) == "" {
		s.pipeline.IncBillsProcessed("ocr_failure")
		return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "no readable text found in the uploaded bill")
	}

	start = time.Now()
	parsed := ingestion.ParseItems(text)
	s.pipeline.ObserveUploadStage("parse", time.Since(start))
	if len(parsed.Items) == 0 {
		s.pipeline.IncBillsProcessed("no_items")
		return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "no line items could be recognized in the bill")
	}

	start = time.Now()
	classified := s.classifier.Classify(ctx, parsed.Items)
	s.pipeline.ObserveUploadStage("classify", time.Since(start))

	start = time.Now()
	items := make(models.LineItems, 0, len(classified))
	totalSavings := decimal.Zero
	for _, item := range classified {
		comparison := s.comparator.Compare(ctx, item.Name, item.Category, item.Price, item.Quantity)
		items = append(items, models.LineItem{
			Name:                 item.Name,
			Category:             item.Category,
			Quantity:             item.Quantity,
			OriginalPrice:        item.Price,
			PlatformPrices:       comparison.PlatformPrices,
			BestPrice:            comparison.BestPrice,
			MaxSavings:           comparison.MaxSavings,
			RecommendedPlatforms: comparison.Recommendations,
		})
		totalSavings = totalSavings.Add(decimal.NewFromFloat(comparison.MaxSavings))
	}
	s.pipeline.ObserveUploadStage("compare", time.Since(start))

	bill := &models.Bill{
		UserID:       userID,
		TotalAmount:  parsed.Total,
		TotalSavings: totalSavings.Round(2).InexactFloat64(),
		Items:        items,
		Status:       enums.BillStatusCompleted,
	}
	if err := s.repo.Create(ctx, bill); err != nil {
		s.pipeline.IncBillsProcessed("persist_failure")
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to save bill")
	}

	s.pipeline.IncBillsProcessed("success")
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"bill_id":       bill.ID.String(),
		"items":         len(items),
		"dropped_lines": parsed.Dropped,
		"total_amount":  bill.TotalAmount,
		"total_savings": bill.TotalSavings,
	}), "bill processed")
	return bill, nil
}

// List returns the user's bills, newest first.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]models.Bill, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list bills")
	}
	return list, nil
}

// Get loads one bill with an ownership check. Bills belonging to other users
// are indistinguishable from missing ones.
func (s *service) Get(ctx context.Context, userID, billID uuid.UUID) (*models.Bill, error) {
	bill, err := s.repo.FindByIDForUser(ctx, billID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bill not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load bill")
	}
	return bill, nil
}
