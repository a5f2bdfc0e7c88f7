package domain

import (
	"math"

	feedomain "github.com/revendahq/revenda/internal/feesettings/domain"
)

// FeeSnapshot is the immutable fee configuration a single recalculation run
// operates on. It is taken once at run start; configuration changes made while
// a run is in flight do not affect that run.
type FeeSnapshot struct {
	PlatformFeeValue     float64
	PlatformFeeType      string
	GatewayFeePercentage float64
	AdditionalCosts      []feedomain.AdditionalCost
}

// Compute returns the sellable price for one item.
//
// The platform fee and every active additional cost are added off the original
// cost basis (they do not compound on each other). The gateway fee is then
// backed out as a divisor so the seller still nets the pre-gateway subtotal
// after the gateway takes its percentage of the final sale price. The result
// is rounded to 2 decimals, half away from zero.
func Compute(cost float64, snap FeeSnapshot) float64 {
	price := cost

	switch snap.PlatformFeeType {
	case feedomain.FeeTypePercentage:
		price += cost * snap.PlatformFeeValue / 100
	case feedomain.FeeTypeFixed:
		price += snap.PlatformFeeValue
	}

	for _, extra := range snap.AdditionalCosts {
		if !extra.Active {
			continue
		}
		switch extra.Type {
		case feedomain.FeeTypePercentage:
			price += cost * extra.Value / 100
		case feedomain.FeeTypeFixed:
			price += extra.Value
		}
	}

	if snap.GatewayFeePercentage > 0 {
		price = price / (1 - snap.GatewayFeePercentage/100)
	}

	return math.Round(price*100) / 100
}
