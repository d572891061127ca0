// Command dnsq is a small DNS query tool.
//
// One-shot mode sends a single UDP query and prints the decoded response:
//
//	dnsq -name example.com -type AAAA -server 8.8.8.8:53
//
// Serve mode exposes lookups over HTTP instead:
//
//	dnsq -serve -api-port 8080 -api-key secret
//
// Completed lookups are journaled to a local SQLite file; -history N prints
// the most recent entries.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dnsq/dnsq/internal/api"
	"github.com/dnsq/dnsq/internal/client"
	"github.com/dnsq/dnsq/internal/config"
	"github.com/dnsq/dnsq/internal/format"
	"github.com/dnsq/dnsq/internal/history"
	"github.com/dnsq/dnsq/internal/logging"
	"github.com/dnsq/dnsq/internal/stats"
	"github.com/dnsq/dnsq/internal/wire"
)

func main() {
	var (
		server    = flag.String("server", config.DefaultServer, "DNS server HOST:PORT")
		name      = flag.String("name", "", "Query name")
		qtype     = flag.String("type", config.DefaultType, "Query type (mnemonic like AAAA, or numeric)")
		timeout   = flag.Duration("timeout", config.DefaultTimeout, "Query timeout")
		recvSize  = flag.Int("recv-size", config.DefaultRecvSize, "UDP receive buffer size")
		norecurse = flag.Bool("norecurse", false, "Do not set the recursion desired flag")
		short     = flag.Bool("short", false, "Print answer rdata only, one per line")
		jsonLogs  = flag.Bool("json-logs", false, "Enable JSON structured logging")
		debug     = flag.Bool("debug", false, "Enable debug logging")
		histN     = flag.Int("history", 0, "Show the N most recent lookups and exit")
		noHist    = flag.Bool("no-history", false, "Do not record this lookup in the journal")
		histPath  = flag.String("history-path", "", "Journal location (default ~/.dnsq/history.db)")
		serve     = flag.Bool("serve", false, "Run the HTTP lookup API instead of a one-shot query")
		apiHost   = flag.String("api-host", config.DefaultAPIHost, "HTTP API bind host")
		apiPort   = flag.Int("api-port", config.DefaultAPIPort, "HTTP API bind port")
		apiKey    = flag.String("api-key", "", "Require this X-API-Key header on API requests")
	)
	flag.Parse()

	cfg := &config.Config{
		Query: config.QueryConfig{
			Server:   *server,
			Type:     *qtype,
			Timeout:  *timeout,
			RecvSize: *recvSize,
			Recurse:  !*norecurse,
		},
		History: config.HistoryConfig{
			Enabled: !*noHist,
			Path:    *histPath,
		},
		API: config.APIConfig{
			Enabled: *serve,
			Host:    *apiHost,
			Port:    *apiPort,
			APIKey:  *apiKey,
		},
		Logging: config.LoggingConfig{Format: "text"},
	}
	if *jsonLogs {
		cfg.Logging.Format = "json"
	}
	if *debug {
		cfg.Logging.Level = "DEBUG"
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	logger := logging.Configure(cfg.Logging)

	if *histN > 0 {
		if err := showHistory(cfg, *histN); err != nil {
			fatal(err)
		}
		return
	}

	if cfg.API.Enabled {
		if err := runServe(cfg, logger); err != nil {
			fatal(err)
		}
		return
	}

	if *name == "" {
		fatal(errors.New("missing required flag: -name"))
	}
	if err := runLookup(cfg, *name, *short, logger); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "dnsq: %v\n", err)
	os.Exit(1)
}

func runLookup(cfg *config.Config, name string, short bool, logger *slog.Logger) error {
	qtype, err := wire.ParseRecordType(cfg.Query.Type)
	if err != nil {
		return err
	}

	journal := openJournal(cfg, logger)
	if journal != nil {
		defer journal.Close()
	}

	c := client.New(cfg.Query.Timeout, cfg.Query.RecvSize, cfg.Query.Recurse, logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Query.Timeout)
	defer cancel()

	res, err := c.Lookup(ctx, cfg.Query.Server, name, qtype)
	recordHistory(journal, cfg.Query.Server, name, qtype, res, err, logger)
	if err != nil {
		return err
	}

	if short {
		if rerr := client.ResponseError(res.Msg); rerr != nil {
			return rerr
		}
		fmt.Print(format.Short(res.Msg))
		return nil
	}

	fmt.Print(format.Message(res.Msg))
	fmt.Printf("\n;; Query time: %d msec\n;; SERVER: %s\n;; MSG SIZE rcvd: %d\n",
		res.RTT.Milliseconds(), res.Server, res.ResponseSize)
	return nil
}

func runServe(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	journal := openJournal(cfg, logger)
	if journal != nil {
		defer journal.Close()
	}

	c := client.New(cfg.Query.Timeout, cfg.Query.RecvSize, cfg.Query.Recurse, logger)
	st := stats.NewLookupStats()
	h := api.NewHandler(c.Lookup, cfg.Query.Server, st, journal, logger)

	addr := net.JoinHostPort(cfg.API.Host, strconv.Itoa(cfg.API.Port))
	srv := api.New(addr, cfg.API.APIKey, h, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(ctx)
	}()

	logger.Info("lookup API listening", "addr", addr, "upstream", cfg.Query.Server)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("lookup API stopped")
	return nil
}

func showHistory(cfg *config.Config, n int) error {
	journal, err := openJournalStrict(cfg)
	if err != nil {
		return err
	}
	defer journal.Close()

	entries, err := journal.Recent(context.Background(), n)
	if err != nil {
		return err
	}

	for _, e := range entries {
		outcome := e.RCode
		if e.Err != "" {
			outcome = "error: " + e.Err
		}
		fmt.Printf("%s\t%s\t%s\t%s\t%s\tanswers=%d\t%dms\n",
			e.At.Format(time.DateTime), e.Server, e.Name, e.QType, outcome, e.Answers, e.RTTMs)
	}
	return nil
}

// openJournal opens the lookup journal, or returns nil when history is
// disabled or the journal cannot be opened. A broken journal must not stop
// a lookup.
func openJournal(cfg *config.Config, logger *slog.Logger) *history.Journal {
	if !cfg.History.Enabled {
		return nil
	}
	journal, err := openJournalStrict(cfg)
	if err != nil {
		logger.Warn("lookup journal unavailable", "error", err)
		return nil
	}
	return journal
}

func openJournalStrict(cfg *config.Config) (*history.Journal, error) {
	path := cfg.History.Path
	if path == "" {
		var err error
		path, err = history.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return history.Open(path)
}

func recordHistory(journal *history.Journal, server, name string, qtype wire.RecordType, res *client.Result, lookupErr error, logger *slog.Logger) {
	if journal == nil {
		return
	}

	e := history.Entry{Server: server, Name: name, QType: qtype.String()}
	if res != nil {
		e.RCode = res.Msg.Header.RCode().String()
		e.Answers = len(res.Msg.Answers)
		e.RTTMs = res.RTT.Milliseconds()
	}
	if lookupErr != nil {
		e.Err = lookupErr.Error()
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := journal.Append(ctx, e); err != nil {
		logger.Warn("failed to record lookup history", "error", err)
	}
}
