package insight

import (
	"fmt"
	"math"
	"strings"
)

// Fallback computes a local insight from the price deltas alone. It is pure
// and total: any input, including no price data at all, yields a non-empty
// string.
func Fallback(prefs Preferences, sum Summary) string {
	coins := strings.Join(prefs.FavoriteCoins, ", ")

	if len(sum.Prices) == 0 {
		return fmt.Sprintf("Stay informed! Keep an eye on %s for potential opportunities.", coins)
	}

	var bestID, worstID string
	best := math.Inf(-1)
	worst := math.Inf(1)
	for coinID, delta := range sum.Prices {
		if delta.Change > best || (delta.Change == best && coinID < bestID) {
			best = delta.Change
			bestID = coinID
		}
		if delta.Change < worst || (delta.Change == worst && coinID < worstID) {
			worst = delta.Change
			worstID = coinID
		}
	}

	switch {
	case best > 5:
		return fmt.Sprintf("%s is up %.2f%% today! Consider reviewing your portfolio allocation.",
			strings.ToUpper(bestID), best)
	case worst < -5:
		return fmt.Sprintf("%s is down %.2f%% today. This could be a buying opportunity if you believe in the fundamentals.",
			strings.ToUpper(worstID), math.Abs(worst))
	default:
		return fmt.Sprintf("Markets are relatively stable today. Your tracked coins (%s) are showing moderate movement.", coins)
	}
}
