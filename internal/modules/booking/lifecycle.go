package booking

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"studiobook/internal/domain"
)

var transitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.BookingPendingApproval: {domain.BookingApproved, domain.BookingRejected, domain.BookingCancelled},
	domain.BookingApproved:        {domain.BookingConfirmed, domain.BookingCancelled},
	domain.BookingConfirmed:       {domain.BookingCheckedIn, domain.BookingCancelled},
	domain.BookingCheckedIn:       {domain.BookingCompleted, domain.BookingCancelled},
	domain.BookingCancelled:       {domain.BookingRefunded},
}

// CanTransition reports whether the state machine has an edge from -> to.
func CanTransition(from, to domain.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Approve moves a pending booking to APPROVED and stamps the approver.
func Approve(b *domain.Booking, approverID int64, at time.Time) error {
	if !CanTransition(b.Status, domain.BookingApproved) {
		return invalidTransition(b.Status, "approve")
	}
	b.Status = domain.BookingApproved
	b.ApprovedBy = &approverID
	b.ApprovedAt = &at
	b.RejectionReason = nil
	b.UpdatedAt = at
	return nil
}

// Reject moves a pending booking to REJECTED. The reason is mandatory.
func Reject(b *domain.Booking, reason string, at time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return validation("rejection_reason", "rejection reason is required when rejecting a booking")
	}
	if !CanTransition(b.Status, domain.BookingRejected) {
		return invalidTransition(b.Status, "reject")
	}
	b.Status = domain.BookingRejected
	b.RejectionReason = &reason
	b.ApprovedBy = nil
	b.ApprovedAt = nil
	b.UpdatedAt = at
	return nil
}

// Cancel moves a slot-holding booking to CANCELLED with the computed refund.
func Cancel(b *domain.Booking, reason string, at time.Time, refundPct, refundAmount decimal.Decimal) error {
	if !CanTransition(b.Status, domain.BookingCancelled) {
		return invalidTransition(b.Status, "cancel")
	}
	b.Status = domain.BookingCancelled
	b.CancelledAt = &at
	b.CancelReason = &reason
	b.RefundPercentage = decimal.NewNullDecimal(refundPct)
	b.RefundAmount = decimal.NewNullDecimal(refundAmount)
	b.UpdatedAt = at
	return nil
}
