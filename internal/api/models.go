package api

import "time"

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse represents a simple status response.
type StatusResponse struct {
	Status string `json:"status"`
}

// RecordResponse is one resource record with its rdata rendered as text.
type RecordResponse struct {
	Name string `json:"name"`
	Type string `json:"type"`
	TTL  uint32 `json:"ttl"`
	Data string `json:"data"`
}

// ResolveResponse is the decoded outcome of one lookup.
type ResolveResponse struct {
	Server      string           `json:"server"`
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	RCode       string           `json:"rcode"`
	Truncated   bool             `json:"truncated,omitempty"`
	RTTMs       float64          `json:"rtt_ms"`
	Answers     []RecordResponse `json:"answers"`
	Authorities []RecordResponse `json:"authorities,omitempty"`
	Additionals []RecordResponse `json:"additionals,omitempty"`
}

// StatsResponse contains server runtime statistics.
type StatsResponse struct {
	Uptime        string    `json:"uptime"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	StartTime     time.Time `json:"start_time"`
	GoRoutines    int       `json:"goroutines"`
	MemoryAllocMB float64   `json:"memory_alloc_mb"`
	NumCPU        int       `json:"num_cpu"`
	ProcessCPUPct float64   `json:"process_cpu_pct"`
	ProcessRSSMB  float64   `json:"process_rss_mb"`
	Lookups       LookupStatsResponse `json:"lookups"`
}

// LookupStatsResponse contains lookup counters.
type LookupStatsResponse struct {
	Total    uint64  `json:"total"`
	Failures uint64  `json:"failures"`
	NXDomain uint64  `json:"nxdomain"`
	AvgRTTMs float64 `json:"avg_rtt_ms"`
}
