package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/library-management/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// GormBookRepositoryWithTracing wraps GormBookRepository with tracing.
// The hot paths get spans; the embedded repository serves the rest.
type GormBookRepositoryWithTracing struct {
	*GormBookRepository
}

var _ domain.BookRepository = (*GormBookRepositoryWithTracing)(nil)

// NewGormBookRepositoryWithTracing creates a new repository with tracing
func NewGormBookRepositoryWithTracing(db *gorm.DB) *GormBookRepositoryWithTracing {
	return &GormBookRepositoryWithTracing{
		GormBookRepository: NewGormBookRepository(db),
	}
}

// Create inserts a book under a span
func (r *GormBookRepositoryWithTracing) Create(ctx context.Context, book *domain.Book) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("book.title", book.Title),
			attribute.String("book.author", book.Author),
		),
	)
	defer span.End()

	if err := r.GormBookRepository.Create(ctx, book); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("book.id", int(book.ID)))
	return nil
}

// FindByID looks a book up under a span
func (r *GormBookRepositoryWithTracing) FindByID(ctx context.Context, id uint) (*domain.Book, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(
			attribute.Int("book.id", int(id)),
		),
	)
	defer span.End()

	book, err := r.GormBookRepository.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("book.title", book.Title))
	return book, nil
}

// Search searches the catalog under a span
func (r *GormBookRepositoryWithTracing) Search(ctx context.Context, query, category string) ([]domain.Book, error) {
	ctx, span := tracer.Start(ctx, "repository.Search",
		trace.WithAttributes(
			attribute.String("search.query", query),
			attribute.String("search.category", category),
		),
	)
	defer span.End()

	books, err := r.GormBookRepository.Search(ctx, query, category)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(books)))
	return books, nil
}

// DecrementAvailable adjusts availability under a span
func (r *GormBookRepositoryWithTracing) DecrementAvailable(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "repository.DecrementAvailable",
		trace.WithAttributes(
			attribute.Int("book.id", int(id)),
		),
	)
	defer span.End()

	if err := r.GormBookRepository.DecrementAvailable(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// IncrementAvailable adjusts availability under a span
func (r *GormBookRepositoryWithTracing) IncrementAvailable(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "repository.IncrementAvailable",
		trace.WithAttributes(
			attribute.Int("book.id", int(id)),
		),
	)
	defer span.End()

	if err := r.GormBookRepository.IncrementAvailable(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
