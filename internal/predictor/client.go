// Package predictor is the HTTP client for the remote material-demand model.
package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"grid-supply/internal/core"

	"github.com/shopspring/decimal"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// Config locates the prediction service.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client calls POST {BaseURL}/api/forecast and GET {BaseURL}/health.
type Client struct {
	cfg  Config
	http *http.Client
}

var _ core.Predictor = (*Client)(nil)

// New creates a Client. A zero timeout defaults to five seconds.
func New(cfg Config) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: cfg.Timeout,
				}).DialContext,
				MaxIdleConnsPerHost: 4,
			},
		},
	}
}

// Close releases idle keep-alive connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// forecastRequest is the JSON body sent to POST /api/forecast.
type forecastRequest struct {
	ProjectName string            `json:"project_name"`
	Features    forecastFeatures  `json:"features"`
	Metadata    map[string]string `json:"metadata"`
}

type forecastFeatures struct {
	ProjectCategoryMain string  `json:"project_category_main"`
	ProjectType         string  `json:"project_type"`
	BudgetLakhs         float64 `json:"project_budget_price_in_lake"`
	State               string  `json:"state"`
	Terrain             string  `json:"terrain"`
	DistanceFromStorage float64 `json:"Distance_from_Storage_unit"`
	LineLengthKm        float64 `json:"transmission_line_length_km"`
}

// forecastResponse is the JSON body returned by POST /api/forecast.
type forecastResponse struct {
	ForecastID  string           `json:"forecast_id"`
	GeneratedAt string           `json:"generated_at"`
	ProjectName string           `json:"project_name"`
	Outputs     []forecastOutput `json:"outputs"`
	ModelReady  *bool            `json:"model_ready"`
}

type forecastOutput struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
	Unit  string          `json:"unit"`
}

// Health is the body of GET /health.
type Health struct {
	Status       string `json:"status"`
	ModelReady   bool   `json:"model_ready"`
	ModelPath    string `json:"model_path"`
	FeatureCount int    `json:"feature_count"`
	OutputCount  *int   `json:"output_count"`
	LastError    string `json:"last_error,omitempty"`
}

// Predict sends the feature vector to the model. Every failure is returned as an error wrapping
// one of the package sentinels; callers decide whether to fall back.
func (c *Client) Predict(ctx context.Context, req core.PredictionRequest) (*core.Prediction, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body := forecastRequest{
		ProjectName: req.ProjectName,
		Features: forecastFeatures{
			ProjectCategoryMain: req.Features.ProjectCategoryMain,
			ProjectType:         req.Features.ProjectType,
			BudgetLakhs:         req.Features.BudgetLakhs.InexactFloat64(),
			State:               req.Features.State,
			Terrain:             req.Features.Terrain,
			DistanceFromStorage: req.Features.DistanceFromStorage.InexactFloat64(),
			LineLengthKm:        req.Features.LineLengthKm.InexactFloat64(),
		},
		Metadata: req.Metadata,
	}
	if body.Metadata == nil {
		body.Metadata = map[string]string{}
	}

	var resp forecastResponse
	if err := c.do(ctx, http.MethodPost, "/api/forecast", body, &resp); err != nil {
		return nil, err
	}

	pred := &core.Prediction{
		ForecastID:  resp.ForecastID,
		GeneratedAt: resp.GeneratedAt,
		ModelReady:  resp.ModelReady == nil || *resp.ModelReady,
		Outputs:     make([]core.PredictionOutput, 0, len(resp.Outputs)),
	}
	for _, o := range resp.Outputs {
		pred.Outputs = append(pred.Outputs, core.PredictionOutput{Label: o.Label, Value: o.Value, Unit: o.Unit})
	}
	return pred, nil
}

// Health reports whether the model is loaded.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var h Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// ModelReady reports the model_ready flag of GET /health.
func (c *Client) ModelReady(ctx context.Context) (bool, error) {
	h, err := c.Health(ctx)
	if err != nil {
		return false, err
	}
	return h.ModelReady, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var reader io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d: %s", ErrBadStatus, httpResp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}
