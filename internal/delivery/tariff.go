package delivery

import "math"

const (
	BaseTariff    int64 = 1200
	MaxWeightFee  int64 = 7000
	RatePerKg           = 20.0
	DefaultWeight       = 60.0 // kg, assumed for an empty cart
)

// Tariff is the delivery price for the given total weight in kg
func Tariff(weight float64) int64 {
	fee := int64(math.Round(weight * RatePerKg))
	return BaseTariff + min(MaxWeightFee, max(fee, 0))
}
