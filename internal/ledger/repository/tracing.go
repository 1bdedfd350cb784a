package repository

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/library-management/internal/ledger/domain"
)

var tracer = otel.Tracer("ledger-repository")

// GormBorrowRecordRepositoryWithTracing wraps the repository with tracing.
// The transactional paths get spans; the embedded repository serves the rest.
type GormBorrowRecordRepositoryWithTracing struct {
	*GormBorrowRecordRepository
}

var _ domain.BorrowRecordRepository = (*GormBorrowRecordRepositoryWithTracing)(nil)

// NewGormBorrowRecordRepositoryWithTracing creates a new repository with tracing
func NewGormBorrowRecordRepositoryWithTracing(db *gorm.DB) *GormBorrowRecordRepositoryWithTracing {
	return &GormBorrowRecordRepositoryWithTracing{
		GormBorrowRecordRepository: NewGormBorrowRecordRepository(db),
	}
}

// CreateWithDecrement runs the borrow transaction under a span
func (r *GormBorrowRecordRepositoryWithTracing) CreateWithDecrement(ctx context.Context, record *domain.BorrowRecord) error {
	ctx, span := tracer.Start(ctx, "repository.CreateWithDecrement",
		trace.WithAttributes(
			attribute.Int("book.id", int(record.BookID)),
			attribute.Int("user.id", int(record.UserID)),
		),
	)
	defer span.End()

	if err := r.GormBorrowRecordRepository.CreateWithDecrement(ctx, record); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("record.id", int(record.ID)))
	return nil
}

// FinishWithIncrement runs the return transaction under a span
func (r *GormBorrowRecordRepositoryWithTracing) FinishWithIncrement(ctx context.Context, record *domain.BorrowRecord) error {
	ctx, span := tracer.Start(ctx, "repository.FinishWithIncrement",
		trace.WithAttributes(
			attribute.Int("record.id", int(record.ID)),
			attribute.Int("book.id", int(record.BookID)),
			attribute.Int64("record.late_fee", record.LateFee),
		),
	)
	defer span.End()

	if err := r.GormBorrowRecordRepository.FinishWithIncrement(ctx, record); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// FindOverdue lists overdue records under a span
func (r *GormBorrowRecordRepositoryWithTracing) FindOverdue(ctx context.Context, now time.Time) ([]domain.BorrowRecord, error) {
	ctx, span := tracer.Start(ctx, "repository.FindOverdue")
	defer span.End()

	records, err := r.GormBorrowRecordRepository.FindOverdue(ctx, now)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(records)))
	return records, nil
}
