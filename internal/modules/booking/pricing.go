package booking

import "github.com/shopspring/decimal"

const moneyPlaces = 2

var minutesPerHour = decimal.NewFromInt(60)

// Price is hourlyRate * minutes / 60, rounded half-to-even to cents.
func Price(hourlyRate decimal.Decimal, minutes int) decimal.Decimal {
	return hourlyRate.
		Mul(decimal.NewFromInt(int64(minutes))).
		Div(minutesPerHour).
		RoundBank(moneyPlaces)
}
