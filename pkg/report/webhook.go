package report

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"digital.vasic.benchmarks/pkg/benchmark"
	"digital.vasic.benchmarks/pkg/httpclient"
)

// WebhookPublisher posts benchmark results to an external HTTP
// endpoint, e.g. a CI status collector or a results warehouse.
type WebhookPublisher struct {
	client *httpclient.Client
	path   string
}

// WebhookOption configures a WebhookPublisher.
type WebhookOption func(*WebhookPublisher)

// WithPath overrides the endpoint path results are posted to.
func WithPath(path string) WebhookOption {
	return func(p *WebhookPublisher) { p.path = path }
}

// WithClient replaces the underlying HTTP client.
func WithClient(c *httpclient.Client) WebhookOption {
	return func(p *WebhookPublisher) { p.client = c }
}

// NewWebhookPublisher creates a publisher targeting the given URL.
// The token, when non-empty, is sent as a bearer credential.
func NewWebhookPublisher(
	url, token string,
	opts ...WebhookOption,
) *WebhookPublisher {
	p := &WebhookPublisher{
		client: httpclient.NewClient(
			url,
			httpclient.WithToken(token),
			httpclient.WithTimeout(15*time.Second),
		),
		path: "/results",
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// webhookPayload is the JSON body posted for each result.
type webhookPayload struct {
	RunID          string        `json:"run_id"`
	BenchmarkID    benchmark.ID  `json:"benchmark_id"`
	BenchmarkName  string        `json:"benchmark_name"`
	Status         string        `json:"status"`
	Duration       time.Duration `json:"duration"`
	Trials         int           `json:"trials"`
	VerdictsTotal  int           `json:"verdicts_total"`
	VerdictsPassed int           `json:"verdicts_passed"`
	Failures       []string      `json:"failures,omitempty"`
	Error          string        `json:"error,omitempty"`
	Timestamp      time.Time     `json:"timestamp"`
}

// Publish posts a single benchmark result. A non-2xx response is
// an error.
func (p *WebhookPublisher) Publish(
	ctx context.Context, result *benchmark.Result,
) error {
	payload := webhookPayload{
		RunID:         result.RunID,
		BenchmarkID:   result.BenchmarkID,
		BenchmarkName: result.BenchmarkName,
		Status:        result.Status,
		Duration:      result.Duration,
		Trials:        result.Trials,
		VerdictsTotal: result.Report.Len(),
		Error:         result.Error,
		Timestamp:     result.EndTime,
	}
	for _, v := range result.Report.Verdicts {
		if v.Pass {
			payload.VerdictsPassed++
		} else {
			payload.Failures = append(
				payload.Failures, v.Message,
			)
		}
	}

	code, body, err := p.client.PostObject(ctx, p.path, payload)
	if err != nil {
		return fmt.Errorf("publish result %s: %w", result.RunID, err)
	}
	if code < http.StatusOK || code >= http.StatusMultipleChoices {
		return fmt.Errorf(
			"publish result %s: webhook returned HTTP %d: %s",
			result.RunID, code, string(body),
		)
	}
	return nil
}

// PublishAll posts every result, continuing past individual
// failures and returning the first error encountered.
func (p *WebhookPublisher) PublishAll(
	ctx context.Context, results []*benchmark.Result,
) error {
	var firstErr error
	for _, r := range results {
		if err := p.Publish(ctx, r); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
