package domain

// Provider identifies an external platform the agency connects.
type Provider string

const (
	ProviderClickUp     Provider = "clickup"
	ProviderGoogleDrive Provider = "google_drive"
	ProviderMetaAds     Provider = "meta_ads"
	ProviderNotion      Provider = "notion"
)

// AllProviders lists the supported providers.
var AllProviders = []Provider{ProviderClickUp, ProviderGoogleDrive, ProviderMetaAds, ProviderNotion}

// ValidProvider reports whether s names a supported provider.
func ValidProvider(s string) bool {
	switch Provider(s) {
	case ProviderClickUp, ProviderGoogleDrive, ProviderMetaAds, ProviderNotion:
		return true
	}
	return false
}

// Integration is one stored credential blob per provider. At most one row
// per provider, enforced by an upsert keyed on the provider column.
type Integration struct {
	ID          string            `json:"id"`
	Provider    Provider          `json:"provider"`
	Credentials map[string]string `json:"credentials"`
	Status      string            `json:"status"` // active | inactive | error
	CreatedAt   string            `json:"created_at,omitempty"`
	UpdatedAt   string            `json:"updated_at,omitempty"`
}

// Source tags where a fetch result came from, so callers and tests can tell
// live data, mock fallback and empty fallback apart.
type Source string

const (
	SourceLive  Source = "live"
	SourceMock  Source = "mock"
	SourceEmpty Source = "empty"
)

// FetchMeta describes how an integration fetch resolved. Degraded carries
// the absorbed failure reason; the error itself never reaches the caller.
type FetchMeta struct {
	Provider Provider `json:"provider"`
	Source   Source   `json:"source"`
	Degraded string   `json:"degraded,omitempty"`
}

// AdsInsights is the normalized social-ads insight shape.
type AdsInsights struct {
	Spend       float64     `json:"spend"`
	Impressions int64       `json:"impressions"`
	Clicks      int64       `json:"clicks"`
	CPC         float64     `json:"cpc"`
	CPM         float64     `json:"cpm"`
	CTR         float64     `json:"ctr"`
	Actions     []AdsAction `json:"actions"`
	DateStart   string      `json:"date_start"`
	DateStop    string      `json:"date_stop"`
}

// AdsAction is one conversion bucket (lead, purchase, ...).
type AdsAction struct {
	ActionType string `json:"action_type"`
	Value      int64  `json:"value"`
}

// TrackerTask is the normalized task-tracker item shape.
type TrackerTask struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Status    string   `json:"status"`
	Assignees []string `json:"assignees"`
	URL       string   `json:"url"`
}

// WikiPage is the normalized wiki search result shape.
type WikiPage struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	LastEdited string `json:"last_edited"`
}

// DriveFile is the normalized file-listing item shape.
type DriveFile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MimeType    string `json:"mimeType"`
	WebViewLink string `json:"webViewLink"`
	IconLink    string `json:"iconLink,omitempty"`
}
