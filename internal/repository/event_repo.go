package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"studiobook/internal/domain"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Record(ctx context.Context, e *domain.EventLog) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	return translateError(conn(ctx, r.db).Create(e).Error)
}

func (r *EventRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.EventLog, error) {
	var rows []domain.EventLog
	err := conn(ctx, r.db).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	return rows, translateError(err)
}

// DeleteOlderThan removes audit rows created before cutoff.
func (r *EventRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := conn(ctx, r.db).Where("created_at < ?", cutoff).Delete(&domain.EventLog{})
	return res.RowsAffected, translateError(res.Error)
}
