// Package integrations implements the connected-provider fetchers: Meta Ads
// insights, ClickUp tasks, Notion wiki search and Google Drive file listing.
//
// Every fetcher absorbs its own failures. Instead of an error the caller
// gets the data plus a FetchMeta tagging where the data came from (live,
// mock or empty) and, when degraded, the absorbed reason. The dashboard and
// the reports page keep rendering whatever a provider does.
package integrations

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/observability"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/resilience"
	"github.com/agenciaturbo/turbo-ops-go/internal/port"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("integrations")

// fetcher carries the plumbing every provider fetcher shares.
type fetcher struct {
	httpClient *http.Client
	creds      port.CredentialStore
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// credentials loads the stored blob for provider. ok is false when the
// provider was never configured; err carries store-level failures only.
func (f *fetcher) credentials(ctx context.Context, provider domain.Provider) (map[string]string, bool, error) {
	integ, err := f.creds.GetCredentials(ctx, provider)
	if err != nil {
		var notConfigured *domain.ErrNotConfigured
		if errors.As(err, &notConfigured) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if integ == nil || len(integ.Credentials) == 0 {
		return nil, false, nil
	}
	return integ.Credentials, true, nil
}

// meta builds the FetchMeta tag and records the outcome metric.
func (f *fetcher) meta(provider domain.Provider, source domain.Source, degraded string) domain.FetchMeta {
	f.metrics.IncrFetch(string(provider), string(source))
	if degraded != "" {
		f.metrics.IncrExternalError(string(provider))
		f.logger.Warn("integration fetch degraded",
			zap.String("provider", string(provider)),
			zap.String("source", string(source)),
			zap.String("reason", degraded),
		)
	}
	return domain.FetchMeta{Provider: provider, Source: source, Degraded: degraded}
}

// do runs an outbound provider call behind the circuit breaker and the
// retry policy, returning the response body on 2xx. The request is rebuilt
// per attempt so a consumed body never leaks into a retry.
func (f *fetcher) do(ctx context.Context, method, url string, header http.Header, payload []byte) ([]byte, error) {
	var body []byte
	_, err := f.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, f.cfg, func() error {
			var reqBody io.Reader
			if payload != nil {
				reqBody = bytes.NewReader(payload)
			}
			req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
			if err != nil {
				return err
			}
			for k, vs := range header {
				for _, v := range vs {
					req.Header.Add(k, v)
				}
			}

			resp, err := f.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			b, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return &domain.ErrExternalService{
					Service: req.URL.Host,
					Err:     errors.New(http.StatusText(resp.StatusCode)),
				}
			}
			body = b
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}
