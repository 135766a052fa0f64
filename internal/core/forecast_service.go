package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Predictor is a remote material-demand model.
type Predictor interface {
	Predict(ctx context.Context, req PredictionRequest) (*Prediction, error)
}

// PredictionRequest is the feature vector sent to the prediction service.
type PredictionRequest struct {
	ProjectName string
	Features    PredictionFeatures
	Metadata    map[string]string
}

// PredictionFeatures are the model inputs. Budget is in lakhs, distances in km.
type PredictionFeatures struct {
	ProjectCategoryMain string
	ProjectType         string
	BudgetLakhs         decimal.Decimal
	State               string
	Terrain             string
	DistanceFromStorage decimal.Decimal
	LineLengthKm        decimal.Decimal
}

// Prediction is a successful model response.
type Prediction struct {
	ForecastID  string
	GeneratedAt string
	ModelReady  bool
	Outputs     []PredictionOutput
}

// PredictionOutput is one predicted material quantity.
type PredictionOutput struct {
	Label string
	Value decimal.Decimal
	Unit  string
}

// Unit costs for labels the prediction model emits.
var remoteUnitCosts = map[string]decimal.Decimal{
	"Steel Towers":         decimal.NewFromInt(850000),
	"Conductors":           decimal.NewFromInt(450),
	"Insulator Strings":    decimal.NewFromInt(1200),
	"Substation Equipment": decimal.NewFromInt(1250000),
}

var (
	lakhsPerCrore    = decimal.NewFromInt(100)
	fallbackUnitCost = decimal.NewFromInt(50000)
	defaultCategory  = "Transmission"
	defaultState     = "Unknown"
	untitledProject  = "Untitled project"
)

// ForecastService produces priced material forecasts and maintains the forecast history.
type ForecastService interface {
	// GenerateForecast asks the predictor first and falls back to the local heuristic on any
	// predictor failure. Every generated line is appended to the forecast history.
	GenerateForecast(ctx context.Context, req ForecastRequest) (*ForecastResult, error)
	// RecordForecastActual stores the realized quantity of a forecast entry. It can be set once.
	RecordForecastActual(ctx context.Context, entryID string, actual decimal.Decimal) (*ForecastEntry, error)
}

type forecastService struct {
	store     Store
	predictor Predictor
	policy    Policy
	logger    *zap.Logger
	now       func() time.Time
}

// NewForecastService wires the forecast generator. predictor may be nil to always use the heuristic;
// logger may be nil to discard logs; now may be nil to use time.Now.
func NewForecastService(store Store, predictor Predictor, policy Policy, logger *zap.Logger, now func() time.Time) ForecastService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &forecastService{store: store, predictor: predictor, policy: policy, logger: logger, now: now}
}

func (s *forecastService) GenerateForecast(ctx context.Context, req ForecastRequest) (*ForecastResult, error) {
	if strings.TrimSpace(req.ProjectName) == "" {
		req.ProjectName = untitledProject
		s.logger.Info("forecast request has no project name", zap.String("project_name", untitledProject))
	}

	result := &ForecastResult{Source: SourceHeuristic}
	now := s.now()
	forecast := Forecast{ProjectName: req.ProjectName, GeneratedAt: now.UTC().Format(time.RFC3339)}

	if pred := s.tryRemote(ctx, req); pred != nil {
		result.Source = SourceRemote
		forecast.Materials = remoteLines(pred.Outputs)
		forecast.ForecastID = pred.ForecastID
		forecast.Confidence = s.policy.RemoteUnreadyConfidence
		if pred.ModelReady {
			forecast.Confidence = s.policy.RemoteReadyConfidence
		}
		if pred.GeneratedAt != "" {
			forecast.GeneratedAt = pred.GeneratedAt
		}
	} else {
		length := decimal.Zero
		if req.LineLength != nil {
			length = *req.LineLength
		}
		forecast.Materials = HeuristicLines(req.ProjectType, length, s.policy.DefaultLineLength)
		forecast.Confidence = s.policy.HeuristicConfidence
	}

	forecast.Subtotal = decimal.Zero
	for _, l := range forecast.Materials {
		forecast.Subtotal = forecast.Subtotal.Add(l.TotalCost)
	}
	forecast.Taxes = forecast.Subtotal.Mul(s.policy.TaxRate)
	forecast.Total = forecast.Subtotal.Add(forecast.Taxes)

	batch := ForecastBatch{
		ForecastID: forecast.ForecastID,
		ProjectID:  req.ProjectID,
		Month:      now.Format("2006-01"),
		Confidence: s.policy.RecordedConfidence,
		Lines:      make([]BatchLine, 0, len(forecast.Materials)),
	}
	for _, l := range forecast.Materials {
		batch.Lines = append(batch.Lines, BatchLine{MaterialID: l.MaterialID, Quantity: l.Quantity})
	}
	recorded, err := s.store.RecordForecastBatch(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to record forecast history: %w", err)
	}
	forecast.ForecastID = recorded.ForecastID
	forecast.ProjectID = recorded.ProjectID

	result.Forecast = forecast
	result.RecordedEntries = recorded.Entries
	s.logger.Info("forecast generated",
		zap.String("forecast_id", forecast.ForecastID),
		zap.String("project_id", forecast.ProjectID),
		zap.String("source", string(result.Source)),
		zap.Int("lines", len(forecast.Materials)),
		zap.String("total", forecast.Total.String()),
	)
	return result, nil
}

// tryRemote returns nil whenever the predictor is absent or fails; failures are logged only.
func (s *forecastService) tryRemote(ctx context.Context, req ForecastRequest) *Prediction {
	if s.predictor == nil {
		return nil
	}
	pred, err := s.predictor.Predict(ctx, s.predictionRequest(req))
	if err != nil {
		s.logger.Warn("forecast API unavailable, using local heuristic",
			zap.String("project_name", req.ProjectName),
			zap.Error(err),
		)
		return nil
	}
	if pred == nil {
		s.logger.Warn("forecast API returned no prediction, using local heuristic",
			zap.String("project_name", req.ProjectName))
		return nil
	}
	return pred
}

func (s *forecastService) predictionRequest(req ForecastRequest) PredictionRequest {
	budget := decimal.Zero
	if req.Budget != nil {
		budget = *req.Budget
	}
	distance := s.policy.DefaultDistanceFromStorage
	if req.DistanceFromStorage != nil && req.DistanceFromStorage.IsPositive() {
		distance = *req.DistanceFromStorage
	}
	length := s.policy.DefaultLineLength
	if req.LineLength != nil && req.LineLength.IsPositive() {
		length = *req.LineLength
	}
	return PredictionRequest{
		ProjectName: req.ProjectName,
		Features: PredictionFeatures{
			ProjectCategoryMain: firstNonEmpty(req.ProjectCategory, string(req.ProjectType), defaultCategory),
			ProjectType:         firstNonEmpty(req.TowerType, req.SubstationType, string(req.ProjectType), defaultCategory),
			BudgetLakhs:         budget.Mul(lakhsPerCrore),
			State:               firstNonEmpty(req.Location, req.Region, defaultState),
			Terrain:             firstNonEmpty(req.Terrain, s.policy.DefaultTerrain),
			DistanceFromStorage: distance,
			LineLengthKm:        length,
		},
		Metadata: map[string]string{
			"region":   req.Region,
			"location": req.Location,
		},
	}
}

// remoteLines prices model outputs. Quantities are rounded to two places before costing.
func remoteLines(outputs []PredictionOutput) []ForecastLine {
	lines := make([]ForecastLine, 0, len(outputs))
	for i, o := range outputs {
		label := o.Label
		if label == "" {
			label = fmt.Sprintf("Output %d", i+1)
		}
		unit := o.Unit
		if unit == "" {
			unit = "Units"
		}
		cost, ok := remoteUnitCosts[label]
		if !ok {
			cost = fallbackUnitCost.Mul(decimal.NewFromInt(int64(i + 1)))
		}
		quantity := o.Value.Round(2)
		lines = append(lines, ForecastLine{
			MaterialID: fmt.Sprintf("ML-%d", i+1),
			Name:       label,
			Quantity:   quantity,
			Unit:       unit,
			UnitCost:   cost,
			TotalCost:  quantity.Mul(cost),
		})
	}
	return lines
}

func (s *forecastService) RecordForecastActual(ctx context.Context, entryID string, actual decimal.Decimal) (*ForecastEntry, error) {
	if actual.IsNegative() {
		return nil, fmt.Errorf("%w: actual quantity cannot be negative", ErrValidation)
	}
	entry, err := s.store.UpdateForecastEntry(ctx, entryID, func(e *ForecastEntry) error {
		if e.Realized() {
			return fmt.Errorf("forecast entry %s: %w", e.ID, ErrActualAlreadyRecorded)
		}
		acc := entryAccuracy(e.ForecastedQty, actual).Round(1)
		e.ActualQty = &actual
		e.Accuracy = &acc
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record actual for forecast entry %s: %w", entryID, err)
	}
	return entry, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
