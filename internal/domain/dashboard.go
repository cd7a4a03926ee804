package domain

// Dashboard aggregates the landing-page loads. Sources are fetched
// concurrently and awaited jointly; a failed source degrades to its zero
// value instead of failing the whole response.
type Dashboard struct {
	Clients      []Client       `json:"clients"`
	Tasks        []Task         `json:"tasks"`
	Rocks        []Rock         `json:"rocks"`
	Deals        []PipelineDeal `json:"deals"`
	AdsInsights  *AdsInsights   `json:"ads_insights,omitempty"`
	AdsMeta      *FetchMeta     `json:"ads_meta,omitempty"`
	TrackerTasks []TrackerTask  `json:"tracker_tasks"`
	TrackerMeta  *FetchMeta     `json:"tracker_meta,omitempty"`
	Degraded     []string       `json:"degraded,omitempty"`
}

// ReportSummary is the admin-only reporting rollup.
type ReportSummary struct {
	ActiveClients  int            `json:"active_clients"`
	TotalContracts float64        `json:"total_contracts"`
	OpenDeals      int            `json:"open_deals"`
	PipelineValue  float64        `json:"pipeline_value"`
	WeightedValue  float64        `json:"weighted_value"`
	WonValue       float64        `json:"won_value"`
	PendingReviews int            `json:"pending_reviews"`
	AdsInsights    *AdsInsights   `json:"ads_insights,omitempty"`
	AdsMeta        *FetchMeta     `json:"ads_meta,omitempty"`
	TasksByStatus  map[string]int `json:"tasks_by_status"`
}
