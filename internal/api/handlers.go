package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/dnsq/dnsq/internal/client"
	"github.com/dnsq/dnsq/internal/format"
	"github.com/dnsq/dnsq/internal/history"
	"github.com/dnsq/dnsq/internal/stats"
	"github.com/dnsq/dnsq/internal/wire"
)

// LookupFunc performs one DNS lookup. It matches client.Client.Lookup so the
// handlers can be tested without touching the network.
type LookupFunc func(ctx context.Context, server, name string, qtype wire.RecordType) (*client.Result, error)

// Handler contains dependencies for API handlers.
type Handler struct {
	logger        *slog.Logger
	lookup        LookupFunc
	stats         *stats.LookupStats
	journal       *history.Journal // nil when history is disabled
	defaultServer string
	startTime     time.Time
	proc          *process.Process
}

// NewHandler creates a Handler. journal may be nil.
func NewHandler(lookup LookupFunc, defaultServer string, st *stats.LookupStats, journal *history.Journal, logger *slog.Logger) *Handler {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		proc = nil
	}
	return &Handler{
		logger:        logger,
		lookup:        lookup,
		stats:         st,
		journal:       journal,
		defaultServer: defaultServer,
		startTime:     time.Now(),
		proc:          proc,
	}
}

// Resolve handles GET /api/v1/resolve?name=&type=&server=.
func (h *Handler) Resolve(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing required query parameter: name"})
		return
	}

	typeParam := c.DefaultQuery("type", "A")
	qtype, err := wire.ParseRecordType(typeParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	server := c.DefaultQuery("server", h.defaultServer)

	res, err := h.lookup(c.Request.Context(), server, name, qtype)
	if err != nil {
		h.stats.RecordFailure()
		h.record(c.Request.Context(), server, name, qtype, nil, err)
		status := http.StatusBadGateway
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	h.stats.RecordLookup(res.Msg.Header.RCode(), res.RTT)
	h.record(c.Request.Context(), server, name, qtype, res, nil)

	c.JSON(http.StatusOK, ResolveResponse{
		Server:      res.Server,
		Name:        name,
		Type:        qtype.String(),
		RCode:       res.Msg.Header.RCode().String(),
		Truncated:   res.Msg.Header.Truncated(),
		RTTMs:       float64(res.RTT.Microseconds()) / 1000,
		Answers:     toRecordResponses(res.Msg.Answers),
		Authorities: toRecordResponses(res.Msg.Authorities),
		Additionals: toRecordResponses(res.Msg.Additionals),
	})
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(h.startTime)
	snap := h.stats.Snapshot()

	resp := StatsResponse{
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: int64(uptime.Seconds()),
		StartTime:     h.startTime,
		GoRoutines:    runtime.NumGoroutine(),
		MemoryAllocMB: float64(m.Alloc) / 1024 / 1024,
		NumCPU:        runtime.NumCPU(),
		Lookups: LookupStatsResponse{
			Total:    snap.LookupsTotal,
			Failures: snap.Failures,
			NXDomain: snap.NXDomain,
			AvgRTTMs: snap.AvgRTTMs,
		},
	}

	if h.proc != nil {
		if pct, err := h.proc.CPUPercent(); err == nil {
			resp.ProcessCPUPct = pct
		}
		if mem, err := h.proc.MemoryInfo(); err == nil {
			resp.ProcessRSSMB = float64(mem.RSS) / 1024 / 1024
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) record(ctx context.Context, server, name string, qtype wire.RecordType, res *client.Result, lookupErr error) {
	if h.journal == nil {
		return
	}

	e := history.Entry{
		Server: server,
		Name:   name,
		QType:  qtype.String(),
	}
	if res != nil {
		e.RCode = res.Msg.Header.RCode().String()
		e.Answers = len(res.Msg.Answers)
		e.RTTMs = res.RTT.Milliseconds()
	}
	if lookupErr != nil {
		e.Err = lookupErr.Error()
	}

	if err := h.journal.Append(ctx, e); err != nil && h.logger != nil {
		h.logger.Warn("failed to record lookup history", "error", err)
	}
}

func toRecordResponses(records []wire.Record) []RecordResponse {
	out := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, RecordResponse{
			Name: r.Name,
			Type: r.Type.String(),
			TTL:  r.TTL,
			Data: format.RData(r.Data),
		})
	}
	return out
}
