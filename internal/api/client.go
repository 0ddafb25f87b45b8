package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/backtest-console/internal/config"
	"github.com/yourusername/backtest-console/internal/models"
)

// Client talks to the backtest platform backend over its REST API.
type Client struct {
	http      *RateLimitedHTTPClient
	baseURL   string
	authToken string
	logger    *logrus.Logger
}

// NewClient creates a backend API client from application configuration
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = cfg.RequestTimeout()
	httpCfg.MaxRetries = cfg.API.RetryAttempts
	httpCfg.RateLimit = cfg.API.RateLimitPerSecond
	httpCfg.CircuitBreakerMax = cfg.API.CircuitBreakerMax

	return &Client{
		http:      NewRateLimitedHTTPClient(httpCfg, logger),
		baseURL:   strings.TrimRight(cfg.API.BaseURL, "/"),
		authToken: cfg.API.AuthToken,
		logger:    logger,
	}
}

// SubmitJobRequest is the payload of the background-job submission endpoint.
type SubmitJobRequest struct {
	ClientRequestID string                 `json:"client_request_id"`
	StrategyID      string                 `json:"strategy_id"`
	DatasetID       string                 `json:"dataset_id"`
	InitialCapital  float64                `json:"initial_capital"`
	PositionSize    int                    `json:"position_size"`
	Commission      float64                `json:"commission"`
	Slippage        float64                `json:"slippage"`
	StartDate       string                 `json:"start_date,omitempty"`
	EndDate         string                 `json:"end_date,omitempty"`
	Parameters      map[string]interface{} `json:"parameters"`
}

// SubmitJobResponse is the backend's acknowledgement of a submitted job.
type SubmitJobResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// ListStrategies fetches all registered strategies
func (c *Client) ListStrategies(ctx context.Context) ([]models.Strategy, error) {
	body, err := c.get(ctx, "/strategies/", "list_strategies")
	if err != nil {
		return nil, err
	}
	return normalizeStrategies(body)
}

// GetStrategySchema fetches the parameter schema for one strategy
func (c *Client) GetStrategySchema(ctx context.Context, strategyID string) ([]models.ParameterSpec, error) {
	body, err := c.get(ctx, "/strategies/"+strategyID+"/schema", "get_schema")
	if err != nil {
		return nil, err
	}
	var schema []models.ParameterSpec
	if err := decodeCollection(body, &schema); err != nil {
		return nil, err
	}
	return schema, nil
}

// ListDatasets fetches all available datasets
func (c *Client) ListDatasets(ctx context.Context) ([]models.Dataset, error) {
	body, err := c.get(ctx, "/datasets/", "list_datasets")
	if err != nil {
		return nil, err
	}
	return normalizeDatasets(body)
}

// SubmitJob submits a backtest for background execution and returns the job id
func (c *Client) SubmitJob(ctx context.Context, req SubmitJobRequest) (string, error) {
	if req.ClientRequestID == "" {
		req.ClientRequestID = uuid.NewString()
	}

	body, err := c.post(ctx, "/jobs/", "submit_job", req)
	if err != nil {
		return "", err
	}

	var resp SubmitJobResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if resp.JobID == "" {
		return "", fmt.Errorf("%w: response carries no job id", ErrSubmissionRejected)
	}

	JobsSubmittedTotal.Inc()
	c.logger.WithFields(logrus.Fields{
		"job_id":      resp.JobID,
		"strategy_id": req.StrategyID,
		"dataset_id":  req.DatasetID,
	}).Info("Backtest job submitted")

	return resp.JobID, nil
}

// ListJobs fetches all background jobs
func (c *Client) ListJobs(ctx context.Context) ([]models.Job, error) {
	body, err := c.get(ctx, "/jobs/", "list_jobs")
	if err != nil {
		return nil, err
	}
	return normalizeJobs(body)
}

// GetJob fetches the current state of one job
func (c *Client) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	body, err := c.get(ctx, "/jobs/"+jobID, "get_job")
	if err != nil {
		return nil, err
	}
	var job models.Job
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &job, nil
}

// GetJobStats fetches job counts by status
func (c *Client) GetJobStats(ctx context.Context) (*models.JobStats, error) {
	body, err := c.get(ctx, "/jobs/stats", "job_stats")
	if err != nil {
		return nil, err
	}
	var stats models.JobStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &stats, nil
}

// GetJobResult downloads the raw result payload of a completed job
func (c *Client) GetJobResult(ctx context.Context, jobID string) (json.RawMessage, error) {
	body, err := c.get(ctx, "/jobs/"+jobID+"/result", "job_result")
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// ListBacktests fetches backtests, optionally filtered by strategy
func (c *Client) ListBacktests(ctx context.Context, strategyID string) ([]models.Backtest, error) {
	path := "/backtests/"
	if strategyID != "" {
		path += "?strategy_id=" + strategyID
	}
	body, err := c.get(ctx, path, "list_backtests")
	if err != nil {
		return nil, err
	}
	return normalizeBacktests(body)
}

// GetBacktest fetches one backtest with its metrics
func (c *Client) GetBacktest(ctx context.Context, backtestID string) (*models.Backtest, error) {
	body, err := c.get(ctx, "/backtests/"+backtestID, "get_backtest")
	if err != nil {
		return nil, err
	}
	var bt models.Backtest
	if err := json.Unmarshal(body, &bt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &bt, nil
}

// GetChartSeries fetches the equity-curve series of a backtest
func (c *Client) GetChartSeries(ctx context.Context, backtestID string) (*models.ChartSeries, error) {
	body, err := c.get(ctx, "/backtests/"+backtestID+"/chart", "get_chart")
	if err != nil {
		return nil, err
	}
	var series models.ChartSeries
	if err := json.Unmarshal(body, &series); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &series, nil
}

// DeleteBacktest removes a backtest on the backend
func (c *Client) DeleteBacktest(ctx context.Context, backtestID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/backtests/"+backtestID, nil)
	if err != nil {
		return err
	}
	_, err = c.do(req, "delete_backtest")
	return err
}

// Close releases the underlying transport
func (c *Client) Close() error {
	return c.http.Close()
}

func (c *Client) get(ctx context.Context, path, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req, endpoint)
}

func (c *Client) post(ctx context.Context, path, endpoint string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, endpoint)
}

func (c *Client) do(req *http.Request, endpoint string) ([]byte, error) {
	start := time.Now()
	defer func() {
		RequestLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.http.Do(req.Context(), req)
	if err != nil {
		RequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		RequestsTotal.WithLabelValues(endpoint, "read_error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		RequestsTotal.WithLabelValues(endpoint, "not_found").Inc()
		return nil, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		RequestsTotal.WithLabelValues(endpoint, "http_error").Inc()
		return nil, &APIError{StatusCode: resp.StatusCode, Message: extractServerMessage(body)}
	}

	RequestsTotal.WithLabelValues(endpoint, "success").Inc()
	return body, nil
}

// extractServerMessage pulls a human-readable reason out of an error body.
func extractServerMessage(body []byte) string {
	var payload struct {
		Detail  string `json:"detail"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, msg := range []string{payload.Detail, payload.Error, payload.Message} {
		if msg != "" {
			return msg
		}
	}
	return ""
}
