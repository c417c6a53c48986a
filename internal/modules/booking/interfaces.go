package booking

import (
	"context"
	"time"

	"studiobook/internal/domain"
)

// BookingRepository defines the interface for booking persistence.
// Lookups of absent rows return an error wrapping domain.ErrRecordNotFound.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	// ListActive returns slot-holding bookings for a resource on a date.
	ListActive(ctx context.Context, resourceID int64, date domain.Date) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListPendingByStudios(ctx context.Context, studioIDs []int64) ([]domain.Booking, error)
	ListByStudios(ctx context.Context, studioIDs []int64) ([]domain.Booking, error)
	// UpdateTransition persists b's lifecycle columns only if the stored status
	// is still from; otherwise it returns domain.ErrWriteConflict.
	UpdateTransition(ctx context.Context, b *domain.Booking, from domain.BookingStatus) error
}

// CatalogRepository reads studios, resources and their opening hours.
type CatalogRepository interface {
	GetResource(ctx context.Context, id int64) (*domain.Resource, error)
	GetStudio(ctx context.Context, id int64) (*domain.Studio, error)
	// LockResource serialises writers on the resource row for the current transaction.
	LockResource(ctx context.Context, id int64) error
	// GetTemplate returns nil, nil when the resource has no template for the weekday.
	GetTemplate(ctx context.Context, resourceID int64, weekday time.Weekday) (*domain.AvailabilityTemplate, error)
	ListExceptions(ctx context.Context, resourceID int64, date domain.Date) ([]domain.AvailabilityException, error)
	ListStudioIDsByOwner(ctx context.Context, ownerID int64) ([]int64, error)
}

type EventRecorder interface {
	Record(ctx context.Context, e *domain.EventLog) error
}

// Transactor runs fn as one unit of work. Repositories called with the ctx
// passed to fn take part in the same transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
