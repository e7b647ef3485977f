package handlers

// URLResponse describes the canonical request for a query without sending it.
type URLResponse struct {
	Endpoint string `json:"endpoint"`
	URL      string `json:"url"`
	Path     string `json:"path"`
	Query    string `json:"query"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Version   string `json:"version,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}
