package publish

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/donaldgifford/ebay-lister/internal/apperror"
)

const (
	maxSKULength  = 50
	maxSKUPrefix  = 30
	maxTitleRunes = 80
	maxImages     = 24
)

var (
	skuUnsafe  = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
	skuAllowed = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// newSKU derives a SKU from the card ID and a millisecond timestamp. seq > 0
// adds a suffix used after a uniqueness conflict. The prefix shrinks so the
// result never exceeds the marketplace limit.
func newSKU(cardID string, at time.Time, seq int) string {
	prefix := strings.Trim(skuUnsafe.ReplaceAllString(cardID, "-"), "-")
	if prefix == "" {
		prefix = "ITEM"
	}

	tail := fmt.Sprintf("-%d", at.UnixMilli())
	if seq > 0 {
		tail = fmt.Sprintf("%s-%d", tail, seq)
	}
	if limit := min(maxSKUPrefix, maxSKULength-len(tail)); len(prefix) > limit {
		prefix = prefix[:limit]
	}
	return prefix + tail
}

func validateSKU(sku string) error {
	if len(sku) > maxSKULength {
		return apperror.Validation("sku", fmt.Sprintf("must be at most %d characters", maxSKULength))
	}
	if !skuAllowed.MatchString(sku) {
		return apperror.Validation("sku", "may contain only letters, digits, '-' and '_'")
	}
	return nil
}

// truncateTitle cuts s to the marketplace limit on a rune boundary and
// reports whether it did.
func truncateTitle(s string) (string, bool) {
	r := []rune(s)
	if len(r) <= maxTitleRunes {
		return s, false
	}
	return strings.TrimSpace(string(r[:maxTitleRunes])), true
}
