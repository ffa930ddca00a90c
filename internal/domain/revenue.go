// internal/domain/revenue.go
package domain

import "github.com/shopspring/decimal"

// Fixed shares of an advertiser payment. They sum to exactly one.
var (
	UserRewardsShare    = decimal.RequireFromString("0.75")
	PlatformFeeShare    = decimal.RequireFromString("0.15")
	OperatingCostsShare = decimal.RequireFromString("0.10")
)

// RevenueSplit is the display breakdown of one broadcast's ad payment.
type RevenueSplit struct {
	AdPayment        decimal.Decimal `json:"adPayment"`
	EstimatedViewers int64           `json:"estimatedViewers"`
	UserRewards      decimal.Decimal `json:"userRewards"`
	PlatformFee      decimal.Decimal `json:"platformFee"`
	OperatingCosts   decimal.Decimal `json:"operatingCosts"`
	PerViewer        decimal.Decimal `json:"perViewer"`
}

// SplitRevenue divides adPayment into user rewards, platform fee and
// operating costs, and spreads the user rewards over estimatedViewers.
// PerViewer is zero when there are no viewers. No rounding is applied.
func SplitRevenue(adPayment decimal.Decimal, estimatedViewers int64) RevenueSplit {
	split := RevenueSplit{
		AdPayment:        adPayment,
		EstimatedViewers: estimatedViewers,
		UserRewards:      adPayment.Mul(UserRewardsShare),
		PlatformFee:      adPayment.Mul(PlatformFeeShare),
		OperatingCosts:   adPayment.Mul(OperatingCostsShare),
		PerViewer:        decimal.Zero,
	}
	if estimatedViewers > 0 {
		split.PerViewer = split.UserRewards.Div(decimal.NewFromInt(estimatedViewers))
	}
	return split
}
