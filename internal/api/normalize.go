package api

import (
	"encoding/json"
	"fmt"

	"github.com/yourusername/backtest-console/internal/models"
)

// Collection endpoints are normalized here, at the boundary: the backend has
// shipped list payloads as a bare array and as envelopes under "results",
// "items", or "data". Consumers only ever see the canonical slice.

type listEnvelope struct {
	Results json.RawMessage `json:"results"`
	Items   json.RawMessage `json:"items"`
	Data    json.RawMessage `json:"data"`
}

func decodeCollection(body []byte, out interface{}) error {
	if err := json.Unmarshal(body, out); err == nil {
		return nil
	}

	var env listEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	for _, raw := range []json.RawMessage{env.Results, env.Items, env.Data} {
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, out); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
			}
			return nil
		}
	}

	return fmt.Errorf("%w: no recognised collection field", ErrInvalidResponse)
}

func normalizeStrategies(body []byte) ([]models.Strategy, error) {
	var strategies []models.Strategy
	if err := decodeCollection(body, &strategies); err != nil {
		return nil, err
	}
	for i, s := range strategies {
		if s.ID == "" {
			return nil, fmt.Errorf("%w: strategy at index %d has no id", ErrInvalidResponse, i)
		}
	}
	return strategies, nil
}

func normalizeDatasets(body []byte) ([]models.Dataset, error) {
	var datasets []models.Dataset
	if err := decodeCollection(body, &datasets); err != nil {
		return nil, err
	}
	for i, d := range datasets {
		if d.ID == "" {
			return nil, fmt.Errorf("%w: dataset at index %d has no id", ErrInvalidResponse, i)
		}
	}
	return datasets, nil
}

func normalizeJobs(body []byte) ([]models.Job, error) {
	var jobs []models.Job
	if err := decodeCollection(body, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func normalizeBacktests(body []byte) ([]models.Backtest, error) {
	var backtests []models.Backtest
	if err := decodeCollection(body, &backtests); err != nil {
		return nil, err
	}
	return backtests, nil
}
