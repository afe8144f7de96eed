package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mcp-analytics/resort-dmr/pkg/models/api"
	"github.com/mcp-analytics/resort-dmr/pkg/models/domain"
)

const requestTimeout = 30 * time.Second

// Publisher POSTs finished reports as JSON to a list of webhook endpoints.
// Delivery is best effort: a failing endpoint is logged and skipped, never
// fatal to the run.
type Publisher struct {
	client *http.Client
	urls   []string
}

func NewPublisher(urls []string) *Publisher {
	return &Publisher{
		client: &http.Client{Timeout: requestTimeout},
		urls:   urls,
	}
}

type payload struct {
	Resort string     `json:"resort"`
	Report api.Report `json:"report"`
}

// Publish sends the report to every configured endpoint and returns how many
// deliveries succeeded.
func (p *Publisher) Publish(ctx context.Context, report *domain.Report) (int, error) {
	logger := zerolog.Ctx(ctx)

	body, err := json.Marshal(payload{
		Resort: Slug(report.Resort),
		Report: api.MapReport(report),
	})
	if err != nil {
		return 0, fmt.Errorf("marshal report payload: %w", err)
	}

	delivered := 0
	for _, url := range p.urls {
		if err := p.post(ctx, url, body); err != nil {
			logger.Warn().Err(err).Str("url", url).Msg("webhook delivery failed")
			continue
		}
		logger.Info().Str("url", url).Msg("report published")
		delivered++
	}
	return delivered, nil
}

func (p *Publisher) post(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("post report: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("endpoint returned %s", resp.Status)
	}
	return nil
}

// Slug normalizes a resort name into the identifier webhook consumers key on,
// lowercase with hyphens for whitespace.
func Slug(resort string) string {
	return strings.ToLower(strings.Join(strings.Fields(resort), "-"))
}
