package core

import "github.com/shopspring/decimal"

// Policy holds the business constants used by the derivation, forecast and shortfall services.
type Policy struct {
	TaxRate                    decimal.Decimal // applied to the forecast subtotal
	DefaultAccuracy            decimal.Decimal // reported when no forecast has been realized
	ShortfallBuffer            decimal.Decimal // multiplier on the shortfall for the recommended order
	RecordedConfidence         decimal.Decimal // confidence stamped on appended forecast entries
	RemoteReadyConfidence      decimal.Decimal
	RemoteUnreadyConfidence    decimal.Decimal
	HeuristicConfidence        decimal.Decimal
	CriticalFulfillment        decimal.Decimal // projects below this fulfillment % are critical
	DefaultLineLength          decimal.Decimal // km, used when a request carries no line length
	DefaultTerrain             string
	DefaultDistanceFromStorage decimal.Decimal
	AtRiskCompletionThreshold  decimal.Decimal
	TopMaterialsByValue        int
}

// DefaultPolicy returns the stock constants.
func DefaultPolicy() Policy {
	return Policy{
		TaxRate:                    decimal.RequireFromString("0.18"),
		DefaultAccuracy:            decimal.RequireFromString("94.5"),
		ShortfallBuffer:            decimal.RequireFromString("1.1"),
		RecordedConfidence:         decimal.NewFromInt(94),
		RemoteReadyConfidence:      decimal.NewFromInt(94),
		RemoteUnreadyConfidence:    decimal.NewFromInt(80),
		HeuristicConfidence:        decimal.NewFromInt(94),
		CriticalFulfillment:        decimal.NewFromInt(70),
		DefaultLineLength:          decimal.NewFromInt(100),
		DefaultTerrain:             "Mixed",
		DefaultDistanceFromStorage: decimal.NewFromInt(50),
		AtRiskCompletionThreshold:  decimal.NewFromInt(50),
		TopMaterialsByValue:        6,
	}
}
