package apiclient

import "time"

// HealthStatus is the server liveness report.
type HealthStatus struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	StartedAt time.Time `json:"started_at"`
	Uptime    string    `json:"uptime"`
	UptimeSec int64     `json:"uptime_sec"`
}

// Health fetches the server liveness status. It does not require
// authentication.
func (c *Client) Health() (*HealthStatus, error) {
	return getResource[HealthStatus](c, "/health")
}
