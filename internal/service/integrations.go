package service

import (
	"context"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/observability"
	"github.com/agenciaturbo/turbo-ops-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var integrationsTracer = otel.Tracer("service/integrations")

// CachedInsights is the insights cache entry: the payload plus the tag
// saying where it came from, so a cached mock stays labeled as mock.
type CachedInsights struct {
	Insights *domain.AdsInsights
	Meta     domain.FetchMeta
}

// IntegrationService fronts the provider fetchers, adding a read-through
// cache on the ads insights since the reports page re-requests them on
// every range change.
type IntegrationService struct {
	ads     port.AdsInsightsFetcher
	tracker port.TrackerFetcher
	wiki    port.WikiSearcher
	files   port.FileLister
	cache   port.Cache[CachedInsights]
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewIntegrationService creates the fetch orchestrator.
func NewIntegrationService(
	ads port.AdsInsightsFetcher,
	tracker port.TrackerFetcher,
	wiki port.WikiSearcher,
	files port.FileLister,
	cache port.Cache[CachedInsights],
	logger *zap.Logger,
	metrics *observability.Metrics,
) *IntegrationService {
	return &IntegrationService{
		ads:     ads,
		tracker: tracker,
		wiki:    wiki,
		files:   files,
		cache:   cache,
		logger:  logger,
		metrics: metrics,
	}
}

// AdsInsights returns insights for the date preset, cached per preset.
func (s *IntegrationService) AdsInsights(ctx context.Context, datePreset string) (*domain.AdsInsights, domain.FetchMeta) {
	ctx, span := integrationsTracer.Start(ctx, "IntegrationService.AdsInsights")
	defer span.End()

	key := "meta_ads:" + datePreset
	if cached, ok := s.cache.Get(key); ok {
		s.metrics.IncrCacheHit("insights")
		return cached.Insights, cached.Meta
	}
	s.metrics.IncrCacheMiss("insights")

	insights, meta := s.ads.GetInsights(ctx, datePreset)
	s.cache.Set(key, CachedInsights{Insights: insights, Meta: meta})
	return insights, meta
}

// TrackerTasks lists the connected tracker's tasks for the linked user.
func (s *IntegrationService) TrackerTasks(ctx context.Context) ([]domain.TrackerTask, domain.FetchMeta) {
	ctx, span := integrationsTracer.Start(ctx, "IntegrationService.TrackerTasks")
	defer span.End()

	return s.tracker.GetTasks(ctx)
}

// WikiPages searches the connected wiki.
func (s *IntegrationService) WikiPages(ctx context.Context, query string) ([]domain.WikiPage, domain.FetchMeta) {
	ctx, span := integrationsTracer.Start(ctx, "IntegrationService.WikiPages")
	defer span.End()

	return s.wiki.SearchPages(ctx, query)
}

// DriveFiles lists files under the given folder.
func (s *IntegrationService) DriveFiles(ctx context.Context, folderID string) ([]domain.DriveFile, domain.FetchMeta) {
	ctx, span := integrationsTracer.Start(ctx, "IntegrationService.DriveFiles")
	defer span.End()

	return s.files.ListFiles(ctx, folderID)
}
