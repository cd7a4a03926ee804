package domain

// HealthStatus is the body of GET /healthz.
type HealthStatus struct {
	Status   string          `json:"status"` // healthy | degraded | unhealthy
	Services []ServiceHealth `json:"services"`
}

// ServiceHealth is the probe result for one dependency.
type ServiceHealth struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	LatencyMs   int64  `json:"latencyMs"`
	LastChecked string `json:"lastChecked"`
}
