package utils

import "math"

// RoundDecimal rounds value half away from zero to decimals places, so
// RoundDecimal(2.5, 0) is 3 and RoundDecimal(-2.5, 0) is -3.
// A negative decimals rounds to tens, hundreds and so on.
func RoundDecimal(value float64, decimals int) float64 {
	pow := math.Pow10(decimals)
	return math.Round(value*pow) / pow
}
