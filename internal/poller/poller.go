// Package poller observes background-job progress by re-fetching job state on
// a fixed interval until the job reaches a terminal status or the consumer
// cancels. No backoff: the interval is constant throughout.
package poller

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/backtest-console/internal/models"
)

// JobFetcher is the single backend operation polling needs.
type JobFetcher interface {
	GetJob(ctx context.Context, jobID string) (*models.Job, error)
}

// Update is one observation of a polled job. Err is set when a poll attempt
// failed; polling continues regardless, the next tick may succeed.
type Update struct {
	Job *models.Job
	Err error
}

// Poller re-fetches one job's state on a fixed interval. Pollers for
// different job ids are fully independent.
type Poller struct {
	client   JobFetcher
	interval time.Duration
	logger   *logrus.Logger
}

// New creates a poller
func New(client JobFetcher, interval time.Duration, logger *logrus.Logger) *Poller {
	return &Poller{client: client, interval: interval, logger: logger}
}

// Watch polls the job until it reaches a terminal status or ctx is cancelled,
// delivering every observation on the returned channel. The channel closes
// when polling stops. In-flight requests at cancellation time are not aborted
// beyond ctx propagation; their responses are simply discarded.
func (p *Poller) Watch(ctx context.Context, jobID string) <-chan Update {
	updates := make(chan Update, 1)

	go func() {
		defer close(updates)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		// First observation immediately, then on every tick.
		if done := p.poll(ctx, jobID, updates); done {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if done := p.poll(ctx, jobID, updates); done {
					return
				}
			}
		}
	}()

	return updates
}

func (p *Poller) poll(ctx context.Context, jobID string, updates chan<- Update) bool {
	job, err := p.client.GetJob(ctx, jobID)
	if ctx.Err() != nil {
		// Consumer went away; discard the response.
		return true
	}

	if err != nil {
		p.logger.WithError(err).WithField("job_id", jobID).Warn("Job poll failed")
		select {
		case updates <- Update{Err: err}:
		case <-ctx.Done():
			return true
		}
		return false
	}

	select {
	case updates <- Update{Job: job}:
	case <-ctx.Done():
		return true
	}

	return job.Status.IsTerminal()
}
