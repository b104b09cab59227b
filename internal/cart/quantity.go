package cart

import (
	"math"
	"strconv"
	"strings"
)

// ParseQuantity coerces raw user input to a quantity of at least 1.
// Empty or non-numeric input yields 1.
func ParseQuantity(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 1
		}
		n = int(f)
	}
	return max(n, 1)
}
