package utils

import "github.com/shopspring/decimal"

// Round rounds an amount to MoneyPlaces decimal places
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}

// Sum adds up the amounts selected by pick
func Sum[T any](items []T, pick func(T) (decimal.Decimal, bool)) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if amount, ok := pick(item); ok {
			total = total.Add(amount)
		}
	}
	return total
}
