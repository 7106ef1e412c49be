package service

import (
	"context"
	"time"

	"github.com/infact-news/infact/internal/domain"
)

// ArticleWriterInterface defines the repository interface for article ingestion
type ArticleWriterInterface interface {
	IsDuplicate(ctx context.Context, a *domain.Article) (bool, error)
	Insert(ctx context.Context, a *domain.Article) (string, error)
}

// IngestService handles the shared ingestion path. Manual submissions,
// RSS items, and news-API results all pass through the same duplicate
// check before insertion.
type IngestService struct {
	repo ArticleWriterInterface
	now  func() time.Time
}

// NewIngestService creates a new IngestService instance
func NewIngestService(repo ArticleWriterInterface) *IngestService {
	return &IngestService{repo: repo, now: time.Now}
}

// Ingest runs the batch through duplicate detection and inserts the
// survivors. Articles without a dedup key pass the check by default:
// with neither title nor url there is nothing to compare against. A
// store error on any article aborts the batch; the report reflects the
// work done up to that point.
func (s *IngestService) Ingest(ctx context.Context, articles []*domain.Article) (*domain.IngestReport, error) {
	report := &domain.IngestReport{TotalReceived: len(articles)}
	for _, a := range articles {
		dup, err := s.repo.IsDuplicate(ctx, a)
		if err != nil {
			return report, err
		}
		if dup {
			report.SkippedCount++
			report.Skipped = append(report.Skipped, a.Title)
			continue
		}
		if a.ExtractedAt.IsZero() {
			a.ExtractedAt = s.now()
		}
		id, err := s.repo.Insert(ctx, a)
		if err != nil {
			return report, err
		}
		a.ID = id
		report.InsertedCount++
		report.Inserted = append(report.Inserted, id)
	}
	return report, nil
}
