package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/observability"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/resilience"
	"github.com/agenciaturbo/turbo-ops-go/internal/port"

	"go.uber.org/zap"
)

const metaGraphURL = "https://graph.facebook.com/v19.0"

// datePresets the Graph API accepts for the reports page range picker.
var datePresets = map[string]bool{
	"last_7d":    true,
	"last_30d":   true,
	"this_month": true,
}

// mockInsights is the demo payload served while the account is not
// connected, and the fallback when a live call fails.
func mockInsights() *domain.AdsInsights {
	return &domain.AdsInsights{
		Spend:       1250.50,
		Impressions: 45000,
		Clicks:      850,
		CPC:         1.47,
		CPM:         27.78,
		CTR:         1.88,
		Actions: []domain.AdsAction{
			{ActionType: "lead", Value: 45},
			{ActionType: "purchase", Value: 12},
		},
		DateStart: "2023-10-01",
		DateStop:  "2023-10-31",
	}
}

// MetaFetcher pulls ad insights from the Meta Graph API.
type MetaFetcher struct {
	fetcher
	baseURL string
}

// NewMetaFetcher creates a Meta Ads fetcher.
func NewMetaFetcher(httpClient *http.Client, creds port.CredentialStore, cfg resilience.Config, logger *zap.Logger, metrics *observability.Metrics) *MetaFetcher {
	return &MetaFetcher{
		fetcher: fetcher{
			httpClient: httpClient,
			creds:      creds,
			cb:         resilience.NewCircuitBreaker("meta_ads"),
			cfg:        cfg,
			logger:     logger,
			metrics:    metrics,
		},
		baseURL: metaGraphURL,
	}
}

// graph insights envelope
type metaInsightsResponse struct {
	Data []struct {
		Spend       string `json:"spend"`
		Impressions string `json:"impressions"`
		Clicks      string `json:"clicks"`
		CPC         string `json:"cpc"`
		CPM         string `json:"cpm"`
		CTR         string `json:"ctr"`
		Actions     []struct {
			ActionType string `json:"action_type"`
			Value      string `json:"value"`
		} `json:"actions"`
		DateStart string `json:"date_start"`
		DateStop  string `json:"date_stop"`
	} `json:"data"`
}

// GetInsights fetches insights for the configured ad account. Without
// stored credentials, or when the live call fails, it returns the mock
// payload so the reports page always has numbers to show.
func (f *MetaFetcher) GetInsights(ctx context.Context, datePreset string) (*domain.AdsInsights, domain.FetchMeta) {
	ctx, span := tracer.Start(ctx, "Meta.GetInsights")
	defer span.End()

	if !datePresets[datePreset] {
		datePreset = "last_30d"
	}

	creds, ok, err := f.credentials(ctx, domain.ProviderMetaAds)
	if err != nil {
		// Store unreachable: demo numbers would mask the outage.
		return &domain.AdsInsights{Actions: []domain.AdsAction{}}, f.meta(domain.ProviderMetaAds, domain.SourceEmpty, err.Error())
	}
	token := creds["access_token"]
	if !ok || token == "" {
		return mockInsights(), f.meta(domain.ProviderMetaAds, domain.SourceMock, "not configured")
	}

	accountID := creds["ad_account_id"]
	if !strings.HasPrefix(accountID, "act_") {
		accountID = "act_" + accountID
	}

	// The Graph API takes the token as a query param, not a header.
	q := url.Values{}
	q.Set("access_token", token)
	q.Set("date_preset", datePreset)
	q.Set("fields", "spend,impressions,clicks,cpc,cpm,ctr,actions")
	endpoint := fmt.Sprintf("%s/%s/insights?%s", f.baseURL, accountID, q.Encode())

	body, err := f.do(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return mockInsights(), f.meta(domain.ProviderMetaAds, domain.SourceMock, err.Error())
	}

	var envelope metaInsightsResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return mockInsights(), f.meta(domain.ProviderMetaAds, domain.SourceMock, "decode insights: "+err.Error())
	}
	if len(envelope.Data) == 0 {
		// Connected but no rows for the range. Zeros, not mock numbers.
		return &domain.AdsInsights{Actions: []domain.AdsAction{}}, f.meta(domain.ProviderMetaAds, domain.SourceLive, "")
	}

	row := envelope.Data[0]
	insights := &domain.AdsInsights{
		Spend:       parseFloat(row.Spend),
		Impressions: parseInt(row.Impressions),
		Clicks:      parseInt(row.Clicks),
		CPC:         parseFloat(row.CPC),
		CPM:         parseFloat(row.CPM),
		CTR:         parseFloat(row.CTR),
		Actions:     make([]domain.AdsAction, 0, len(row.Actions)),
		DateStart:   row.DateStart,
		DateStop:    row.DateStop,
	}
	for _, a := range row.Actions {
		insights.Actions = append(insights.Actions, domain.AdsAction{
			ActionType: a.ActionType,
			Value:      parseInt(a.Value),
		})
	}

	return insights, f.meta(domain.ProviderMetaAds, domain.SourceLive, "")
}

// Graph returns numerics as strings; bad values collapse to zero.
func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}
