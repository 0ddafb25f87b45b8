package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

// RegisterItem is one discovered strategy or dataset to register on the backend.
type RegisterItem struct {
	Name    string                 `json:"name"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// RegisterReport counts per-item outcomes of a bulk registration. A partial
// failure never fails the whole batch.
type RegisterReport struct {
	Succeeded int
	Skipped   int
	Failed    int
	Failures  map[string]string // item name -> reason
}

type registerResponse struct {
	Status string `json:"status"` // registered, skipped
	Detail string `json:"detail,omitempty"`
}

// RegisterDiscovered registers discovered strategies or datasets one by one,
// reporting succeeded/skipped/failed counts separately. kind is "strategies"
// or "datasets".
func (c *Client) RegisterDiscovered(ctx context.Context, kind string, items []RegisterItem) (*RegisterReport, error) {
	if kind != "strategies" && kind != "datasets" {
		return nil, fmt.Errorf("unknown registration kind %q", kind)
	}

	report := &RegisterReport{Failures: make(map[string]string)}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		body, err := c.post(ctx, "/"+kind+"/register", "register_"+kind, item)
		if err != nil {
			report.Failed++
			report.Failures[item.Name] = UserMessage(err)
			c.logger.WithError(err).WithField("name", item.Name).Warn("Registration failed")
			continue
		}

		var resp registerResponse
		if err := decodeRegisterResponse(body, &resp); err != nil {
			report.Failed++
			report.Failures[item.Name] = err.Error()
			continue
		}

		if resp.Status == "skipped" {
			report.Skipped++
		} else {
			report.Succeeded++
		}
	}

	c.logger.WithFields(logrus.Fields{
		"kind":      kind,
		"succeeded": report.Succeeded,
		"skipped":   report.Skipped,
		"failed":    report.Failed,
	}).Info("Bulk registration finished")

	return report, nil
}

func decodeRegisterResponse(body []byte, resp *registerResponse) error {
	if err := json.Unmarshal(body, resp); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}
