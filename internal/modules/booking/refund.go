package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RefundPolicy pays Percent of the total when the customer cancels at least
// MinLeadTime before the booking starts, and nothing otherwise.
type RefundPolicy struct {
	MinLeadTime time.Duration
	Percent     decimal.Decimal
}

func DefaultRefundPolicy() RefundPolicy {
	return RefundPolicy{
		MinLeadTime: 24 * time.Hour,
		Percent:     decimal.NewFromInt(80),
	}
}

// Refund returns the refund percentage and amount for a cancellation at cancelledAt
// of a booking starting at startsAt. Exactly MinLeadTime counts as eligible.
func (p RefundPolicy) Refund(total decimal.Decimal, startsAt, cancelledAt time.Time) (percentage, amount decimal.Decimal) {
	percentage = decimal.Zero
	if startsAt.Sub(cancelledAt) >= p.MinLeadTime {
		percentage = p.Percent
	}
	percentage = percentage.Round(moneyPlaces)
	amount = total.Mul(percentage).Div(hundred).RoundBank(moneyPlaces)
	return percentage, amount
}
