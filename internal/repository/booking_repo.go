package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"studiobook/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return translateError(conn(ctx, r.db).Create(b).Error)
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := conn(ctx, r.db).First(&b, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &b, nil
}

// ListActive returns the slot-holding bookings of a resource on date, by start time.
func (r *BookingRepository) ListActive(ctx context.Context, resourceID int64, date domain.Date) ([]domain.Booking, error) {
	var rows []domain.Booking
	err := conn(ctx, r.db).
		Where("resource_id = ? AND booking_date = ? AND status IN ?", resourceID, date, domain.ActiveBookingStatuses).
		Order("start_time ASC").
		Find(&rows).Error
	return rows, translateError(err)
}

// ListByUser returns a customer's bookings, newest first.
func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var rows []domain.Booking
	err := conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, translateError(err)
}

// ListPendingByStudios returns bookings awaiting approval, oldest request first.
func (r *BookingRepository) ListPendingByStudios(ctx context.Context, studioIDs []int64) ([]domain.Booking, error) {
	var rows []domain.Booking
	err := conn(ctx, r.db).
		Where("studio_id IN ? AND status = ?", studioIDs, domain.BookingPendingApproval).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	return rows, translateError(err)
}

func (r *BookingRepository) ListByStudios(ctx context.Context, studioIDs []int64) ([]domain.Booking, error) {
	var rows []domain.Booking
	err := conn(ctx, r.db).
		Where("studio_id IN ?", studioIDs).
		Order("booking_date DESC, start_time DESC, id DESC").
		Find(&rows).Error
	return rows, translateError(err)
}

// UpdateTransition writes the lifecycle columns of b guarded by its previous status.
func (r *BookingRepository) UpdateTransition(ctx context.Context, b *domain.Booking, from domain.BookingStatus) error {
	res := conn(ctx, r.db).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ?", b.ID, from).
		Updates(map[string]any{
			"status":            b.Status,
			"approved_by":       b.ApprovedBy,
			"approved_at":       b.ApprovedAt,
			"rejection_reason":  b.RejectionReason,
			"cancelled_at":      b.CancelledAt,
			"cancel_reason":     b.CancelReason,
			"refund_percentage": b.RefundPercentage,
			"refund_amount":     b.RefundAmount,
			"updated_at":        b.UpdatedAt,
		})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: booking %d is no longer %s", domain.ErrWriteConflict, b.ID, from)
	}
	return nil
}
