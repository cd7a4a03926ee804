package service

import (
	"context"
	"sync"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var dashboardTracer = otel.Tracer("service/dashboard")

// DashboardService aggregates the landing-page loads: four Supabase tables
// plus two provider fetches, all issued concurrently and awaited jointly.
type DashboardService struct {
	store        port.WorkspaceStore
	integrations *IntegrationService
	logger       *zap.Logger
}

// NewDashboardService creates the dashboard aggregator.
func NewDashboardService(store port.WorkspaceStore, integrations *IntegrationService, logger *zap.Logger) *DashboardService {
	return &DashboardService{store: store, integrations: integrations, logger: logger}
}

// Load assembles the dashboard. Per-source failures degrade to empty
// slices and a note in Degraded; the response itself never fails because
// one source did.
func (s *DashboardService) Load(ctx context.Context) *domain.Dashboard {
	ctx, span := dashboardTracer.Start(ctx, "DashboardService.Load")
	defer span.End()

	dash := &domain.Dashboard{
		Clients:      []domain.Client{},
		Tasks:        []domain.Task{},
		Rocks:        []domain.Rock{},
		Deals:        []domain.PipelineDeal{},
		TrackerTasks: []domain.TrackerTask{},
	}

	var (
		mu       sync.Mutex
		degraded []string
	)
	markDegraded := func(source string) {
		mu.Lock()
		degraded = append(degraded, source)
		mu.Unlock()
	}
	note := func(source string, err error) {
		s.logger.Warn("dashboard source failed",
			zap.String("source", source),
			zap.Error(err),
		)
		markDegraded(source)
	}

	// errgroup without error propagation: every branch absorbs its own
	// failure so a single dead source cannot cancel the siblings.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		clients, err := s.store.ListClients(gctx)
		if err != nil {
			note("clients", err)
			return nil
		}
		dash.Clients = clients
		return nil
	})
	g.Go(func() error {
		tasks, err := s.store.ListTasks(gctx, "")
		if err != nil {
			note("tasks", err)
			return nil
		}
		dash.Tasks = tasks
		return nil
	})
	g.Go(func() error {
		rocks, err := s.store.ListRocks(gctx, "")
		if err != nil {
			note("rocks", err)
			return nil
		}
		dash.Rocks = rocks
		return nil
	})
	g.Go(func() error {
		deals, err := s.store.ListDeals(gctx)
		if err != nil {
			note("deals", err)
			return nil
		}
		dash.Deals = deals
		return nil
	})
	g.Go(func() error {
		insights, meta := s.integrations.AdsInsights(gctx, "last_30d")
		dash.AdsInsights = insights
		dash.AdsMeta = &meta
		if meta.Degraded != "" {
			markDegraded("meta_ads")
		}
		return nil
	})
	g.Go(func() error {
		tasks, meta := s.integrations.TrackerTasks(gctx)
		dash.TrackerTasks = tasks
		dash.TrackerMeta = &meta
		if meta.Degraded != "" {
			markDegraded("clickup")
		}
		return nil
	})

	_ = g.Wait()
	dash.Degraded = degraded
	return dash
}

// ReportSummary builds the admin reporting rollup from deals, clients,
// tasks, approvals and the ads insights.
func (s *DashboardService) ReportSummary(ctx context.Context, datePreset string) (*domain.ReportSummary, error) {
	ctx, span := dashboardTracer.Start(ctx, "DashboardService.ReportSummary")
	defer span.End()

	summary := &domain.ReportSummary{
		TasksByStatus: map[string]int{},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		clients, err := s.store.ListClients(gctx)
		if err != nil {
			return err
		}
		for _, c := range clients {
			if c.Status == domain.ClientActive {
				summary.ActiveClients++
				summary.TotalContracts += c.ContractValue
			}
		}
		return nil
	})
	g.Go(func() error {
		deals, err := s.store.ListDeals(gctx)
		if err != nil {
			return err
		}
		for _, d := range deals {
			switch d.Stage {
			case domain.StageClosedWon:
				summary.WonValue += d.Value
			case domain.StageClosedLost:
				// dropped from every total
			default:
				summary.OpenDeals++
				summary.PipelineValue += d.Value
				summary.WeightedValue += d.Value * float64(d.Probability) / 100
			}
		}
		return nil
	})
	g.Go(func() error {
		tasks, err := s.store.ListTasks(gctx, "")
		if err != nil {
			return err
		}
		for _, t := range tasks {
			summary.TasksByStatus[string(t.Status)]++
		}
		return nil
	})
	g.Go(func() error {
		pending, err := s.store.ListApprovals(gctx, string(domain.ApprovalPending), "")
		if err != nil {
			return err
		}
		summary.PendingReviews = len(pending)
		return nil
	})
	g.Go(func() error {
		insights, meta := s.integrations.AdsInsights(gctx, datePreset)
		summary.AdsInsights = insights
		summary.AdsMeta = &meta
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}
