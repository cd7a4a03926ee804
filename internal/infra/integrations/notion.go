package integrations

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/observability"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/resilience"
	"github.com/agenciaturbo/turbo-ops-go/internal/port"

	"go.uber.org/zap"
)

const (
	notionAPIURL  = "https://api.notion.com"
	notionVersion = "2022-06-28"
)

func mockWikiPages() []domain.WikiPage {
	return []domain.WikiPage{
		{ID: "1", Title: "Empresa Wiki", URL: "https://notion.so/wiki", LastEdited: "2023-10-25"},
		{ID: "2", Title: "Roadmap Q4", URL: "https://notion.so/roadmap", LastEdited: "2023-10-28"},
	}
}

// NotionFetcher searches the connected Notion workspace for pages.
type NotionFetcher struct {
	fetcher
	baseURL string
}

// NewNotionFetcher creates a Notion fetcher.
func NewNotionFetcher(httpClient *http.Client, creds port.CredentialStore, cfg resilience.Config, logger *zap.Logger, metrics *observability.Metrics) *NotionFetcher {
	return &NotionFetcher{
		fetcher: fetcher{
			httpClient: httpClient,
			creds:      creds,
			cb:         resilience.NewCircuitBreaker("notion"),
			cfg:        cfg,
			logger:     logger,
			metrics:    metrics,
		},
		baseURL: notionAPIURL,
	}
}

type notionSearchResponse struct {
	Results []struct {
		ID             string `json:"id"`
		URL            string `json:"url"`
		LastEditedTime string `json:"last_edited_time"`
		Properties     map[string]struct {
			Title []struct {
				PlainText string `json:"plain_text"`
			} `json:"title"`
		} `json:"properties"`
	} `json:"results"`
}

// SearchPages runs a page search against the Notion API. Unconfigured
// yields the mock pages; a failed call yields an empty list.
func (f *NotionFetcher) SearchPages(ctx context.Context, query string) ([]domain.WikiPage, domain.FetchMeta) {
	ctx, span := tracer.Start(ctx, "Notion.SearchPages")
	defer span.End()

	creds, ok, err := f.credentials(ctx, domain.ProviderNotion)
	if err != nil {
		return []domain.WikiPage{}, f.meta(domain.ProviderNotion, domain.SourceEmpty, err.Error())
	}
	token := creds["token"]
	if !ok || token == "" {
		return mockWikiPages(), f.meta(domain.ProviderNotion, domain.SourceMock, "not configured")
	}

	payload, err := json.Marshal(map[string]any{
		"query":  query,
		"filter": map[string]string{"property": "object", "value": "page"},
	})
	if err != nil {
		return []domain.WikiPage{}, f.meta(domain.ProviderNotion, domain.SourceEmpty, err.Error())
	}

	header := http.Header{
		"Authorization":  {"Bearer " + token},
		"Notion-Version": {notionVersion},
		"Content-Type":   {"application/json"},
	}
	body, err := f.do(ctx, http.MethodPost, f.baseURL+"/v1/search", header, payload)
	if err != nil {
		return []domain.WikiPage{}, f.meta(domain.ProviderNotion, domain.SourceEmpty, "search: "+err.Error())
	}

	var resp notionSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return []domain.WikiPage{}, f.meta(domain.ProviderNotion, domain.SourceEmpty, "decode search: "+err.Error())
	}

	pages := make([]domain.WikiPage, 0, len(resp.Results))
	for _, r := range resp.Results {
		page := domain.WikiPage{ID: r.ID, URL: r.URL, LastEdited: r.LastEditedTime}
		// The page title lives in whichever property is title-typed.
		for _, prop := range r.Properties {
			if len(prop.Title) > 0 {
				page.Title = prop.Title[0].PlainText
				break
			}
		}
		pages = append(pages, page)
	}

	return pages, f.meta(domain.ProviderNotion, domain.SourceLive, "")
}
