package core

import "github.com/shopspring/decimal"

var (
	towerSpanKm          = decimal.RequireFromString("0.4")
	towersPerSpanFactor  = decimal.RequireFromString("0.4")
	conductorPhases      = decimal.NewFromInt(3)
	insulatorsPerTower   = decimal.NewFromInt(12)
	boltsPerTower        = decimal.NewFromInt(24)
	metresPerKm          = decimal.NewFromInt(1000)
	substationBreakers   = decimal.NewFromInt(8)
	substationXfmrs      = decimal.NewFromInt(4)
	substationInsulators = decimal.NewFromInt(500)
)

// HeuristicLines derives a bill of materials from the project type and line length (km)
// using fixed engineering ratios. A non-positive lineLength is replaced by defaultLength.
// Unknown project types produce no lines.
func HeuristicLines(projectType ProjectType, lineLength, defaultLength decimal.Decimal) []ForecastLine {
	if !lineLength.IsPositive() {
		lineLength = defaultLength
	}
	lines := []ForecastLine{}

	if projectType.IncludesTower() {
		towers := lineLength.Div(towerSpanKm).Ceil()
		conductor := lineLength.Mul(metresPerKm)
		lines = append(lines,
			pricedLine("MAT001", "Steel Towers (Type A - 765kV)", towers.Mul(towersPerSpanFactor).Ceil(), "Units", 850000),
			pricedLine("MAT004", "Conductors - ACSR 400mm", conductor.Mul(conductorPhases).Ceil(), "Meters", 450),
			pricedLine("MAT006", "Insulators - Disc Type", towers.Mul(insulatorsPerTower).Ceil(), "Units", 1200),
			pricedLine("MAT012", "Foundation Bolts M36", towers.Mul(boltsPerTower).Ceil(), "Units", 850),
		)
	}
	if projectType.IncludesSubstation() {
		lines = append(lines,
			pricedLine("MAT008", "Circuit Breakers 765kV", substationBreakers, "Units", 1250000),
			pricedLine("MAT010", "Transformers 765/400kV", substationXfmrs, "Units", 8500000),
			pricedLine("MAT006", "Insulators - Disc Type", substationInsulators, "Units", 1200),
		)
	}
	return lines
}

func pricedLine(materialID, name string, quantity decimal.Decimal, unit string, unitCost int64) ForecastLine {
	cost := decimal.NewFromInt(unitCost)
	return ForecastLine{
		MaterialID: materialID,
		Name:       name,
		Quantity:   quantity,
		Unit:       unit,
		UnitCost:   cost,
		TotalCost:  quantity.Mul(cost),
	}
}
