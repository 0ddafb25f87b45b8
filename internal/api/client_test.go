package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/backtest-console/internal/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		API: config.APIConfig{
			BaseURL:               baseURL,
			AuthToken:             "test-token",
			RequestTimeoutSeconds: 5,
			RetryAttempts:         0,
			RateLimitPerSecond:    1000,
			CircuitBreakerMax:     5,
		},
		Cache: config.CacheConfig{TTLSeconds: 60, MaxSize: 32},
	}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(testConfig(server.URL), testLogger())
	t.Cleanup(func() { client.Close() })
	return client, server
}

// TestListStrategiesSendsAuth tests the happy path with bearer auth attached
func TestListStrategiesSendsAuth(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/strategies/", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"results":[{"id":"s1","name":"Alpha","is_active":true}]}`))
	}))

	strategies, err := client.ListStrategies(context.Background())
	require.NoError(t, err)
	require.Len(t, strategies, 1)
	assert.Equal(t, "Alpha", strategies[0].Name)
	assert.True(t, strategies[0].Active)
}

// TestSubmitJobPayload tests the wire shape of the job submission
func TestSubmitJobPayload(t *testing.T) {
	var received map[string]interface{}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/jobs/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{"job_id":"job-42","status":"pending"}`))
	}))

	jobID, err := client.SubmitJob(context.Background(), SubmitJobRequest{
		StrategyID:     "strategy-1",
		DatasetID:      "dataset-1",
		InitialCapital: 10000,
		PositionSize:   2,
		Commission:     0.0005,
		Parameters:     map[string]interface{}{"lookback": 12},
	})
	require.NoError(t, err)
	assert.Equal(t, "job-42", jobID)

	assert.Equal(t, "strategy-1", received["strategy_id"])
	assert.Equal(t, "dataset-1", received["dataset_id"])
	assert.Equal(t, float64(2), received["position_size"])
	assert.NotEmpty(t, received["client_request_id"], "a request id is generated when none is supplied")

	params, ok := received["parameters"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(12), params["lookback"])
}

// TestSubmitJobRejectsMissingJobID tests the malformed acknowledgement path
func TestSubmitJobRejectsMissingJobID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"pending"}`))
	}))

	_, err := client.SubmitJob(context.Background(), SubmitJobRequest{StrategyID: "s1"})
	assert.ErrorIs(t, err, ErrSubmissionRejected)
}

// TestServerErrorMessageExtraction tests that server-provided reasons surface
// through APIError across the field names the backend has used
func TestServerErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"Detail field", `{"detail":"dataset is archived"}`, "dataset is archived"},
		{"Error field", `{"error":"quota exceeded"}`, "quota exceeded"},
		{"Message field", `{"message":"try later"}`, "try later"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte(tt.body))
			}))

			_, err := client.ListStrategies(context.Background())
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
			assert.Equal(t, tt.want, apiErr.Message)
			assert.Equal(t, tt.want, UserMessage(err))
		})
	}
}

// TestNotFound tests the 404 sentinel
func TestNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetBacktest(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestCachedClientServesFromCache tests cache-first reads and explicit refetch
func TestCachedClientServesFromCache(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`[{"id":"s1","name":"Alpha"}]`))
	}))
	cached := NewCachedClientWith(client, time.Minute, 32, testLogger())

	ctx := context.Background()
	_, err := cached.ListStrategies(ctx)
	require.NoError(t, err)
	_, err = cached.ListStrategies(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "second read should come from cache")

	_, err = cached.RefetchStrategies(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "refetch bypasses the cache")
}

// TestRefetchJobsBypassesCache tests that a manual refresh observes a job
// status change the cached copy is still hiding
func TestRefetchJobsBypassesCache(t *testing.T) {
	status := "running"
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"job-1","status":"` + status + `"}]`))
	}))
	cached := NewCachedClientWith(client, time.Hour, 32, testLogger())

	ctx := context.Background()
	jobs, err := cached.ListJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, "running", string(jobs[0].Status))

	status = "completed"

	jobs, err = cached.ListJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "running", string(jobs[0].Status), "the cached copy is served until it expires")

	jobs, err = cached.RefetchJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "completed", string(jobs[0].Status), "refetch must bypass the cache")

	jobs, err = cached.ListJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "completed", string(jobs[0].Status), "refetch repopulates the cache")
}

// TestCachedClientSubmitInvalidatesJobs tests that a submission forces the
// next jobs read back to the backend
func TestCachedClientSubmitInvalidatesJobs(t *testing.T) {
	var jobCalls int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Write([]byte(`{"job_id":"job-1"}`))
			return
		}
		jobCalls++
		w.Write([]byte(`[]`))
	}))
	cached := NewCachedClientWith(client, time.Minute, 32, testLogger())

	ctx := context.Background()
	_, err := cached.ListJobs(ctx)
	require.NoError(t, err)
	_, err = cached.ListJobs(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, jobCalls)

	_, err = cached.SubmitJob(ctx, SubmitJobRequest{StrategyID: "s1"})
	require.NoError(t, err)

	_, err = cached.ListJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, jobCalls, "submission should invalidate the jobs cache")
}

// TestRegisterDiscovered tests per-item outcomes of a bulk registration
func TestRegisterDiscovered(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var item RegisterItem
		require.NoError(t, json.NewDecoder(r.Body).Decode(&item))

		switch item.Name {
		case "known":
			w.Write([]byte(`{"status":"skipped"}`))
		case "broken":
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"detail":"bad payload"}`))
		default:
			w.Write([]byte(`{"status":"registered"}`))
		}
	}))

	report, err := client.RegisterDiscovered(context.Background(), "strategies", []RegisterItem{
		{Name: "fresh"},
		{Name: "known"},
		{Name: "broken"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, "bad payload", report.Failures["broken"])
}

// TestRegisterDiscoveredRejectsUnknownKind tests kind validation
func TestRegisterDiscoveredRejectsUnknownKind(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	_, err := client.RegisterDiscovered(context.Background(), "widgets", nil)
	assert.Error(t, err)
}
