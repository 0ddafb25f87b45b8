// Package submit orchestrates the validate -> transform -> submit pipeline
// that turns a draft configuration into a background job on the backend.
package submit

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/backtest-console/internal/api"
	"github.com/yourusername/backtest-console/internal/draft"
	"github.com/yourusername/backtest-console/internal/models"
)

// JobSubmitter is the single backend operation this package needs.
type JobSubmitter interface {
	SubmitJob(ctx context.Context, req api.SubmitJobRequest) (string, error)
}

// Notifier receives the transient user notifications the pipeline produces.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Outcome reports what the pipeline did with the draft.
type Outcome struct {
	JobID      string
	Validation draft.Result
	// Submitted is true once the backend accepted the job; the caller closes
	// the configuration surface and navigates to monitoring only then.
	Submitted bool
}

// Handler runs the submission pipeline.
type Handler struct {
	client   JobSubmitter
	notifier Notifier
	logger   *logrus.Logger
}

// NewHandler creates a submission handler
func NewHandler(client JobSubmitter, notifier Notifier, logger *logrus.Logger) *Handler {
	return &Handler{client: client, notifier: notifier, logger: logger}
}

// Submit validates the draft and, if valid, submits it as a background job.
// Validation failure surfaces a single generic notification and aborts without
// calling the backend. A backend failure keeps the draft open for retry.
func (h *Handler) Submit(ctx context.Context, d draft.Draft, strategy *models.Strategy, dataset *models.Dataset, schema []models.ParameterSpec) Outcome {
	result := draft.Validate(d, strategy, dataset, d.Parameters, schema)
	if !result.Valid {
		h.logger.WithField("error_count", len(result.Errors)).Debug("Draft failed validation")
		h.notifier.Error("Please fix the errors in the form")
		return Outcome{Validation: result}
	}

	req := BuildRequest(d)

	jobID, err := h.client.SubmitJob(ctx, req)
	if err != nil {
		h.logger.WithError(err).Error("Backtest submission failed")
		h.notifier.Error("Failed to start backtest: " + api.UserMessage(err))
		return Outcome{Validation: result}
	}

	h.notifier.Success("Backtest started")
	return Outcome{JobID: jobID, Validation: result, Submitted: true}
}
