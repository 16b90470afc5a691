package usecase

import (
	"fmt"
	"strings"

	domainErrors "github.com/dukahub/storefront/internal/domain/errors"
)

// Orders strictly above this subtotal ship for free.
const freeDeliveryThreshold = 5000

// Per-county delivery base rates in KES. Nairobi is pickup.
var countyDeliveryBase = map[string]float64{
	"nairobi":  0,
	"kiambu":   200,
	"thika":    300,
	"machakos": 400,
	"kajiado":  500,
	"nyeri":    700,
	"nakuru":   800,
	"eldoret":  1100,
	"kisumu":   1200,
	"mombasa":  1500,
}

var deliveryOptionMultiplier = map[string]float64{
	"standard":  1.0,
	"express":   1.5,
	"overnight": 2.0,
}

// DeliveryCost computes the delivery charge for a destination county and
// delivery option. The charge is recomputed server-side on every checkout;
// client-supplied totals are verified against it, never trusted.
func DeliveryCost(subtotal float64, county, option string) (float64, error) {
	base, ok := countyDeliveryBase[strings.ToLower(strings.TrimSpace(county))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown delivery county %q", domainErrors.ErrValidation, county)
	}

	multiplier, ok := deliveryOptionMultiplier[strings.ToLower(strings.TrimSpace(option))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown delivery option %q", domainErrors.ErrValidation, option)
	}

	if subtotal > freeDeliveryThreshold {
		return 0, nil
	}
	return base * multiplier, nil
}
