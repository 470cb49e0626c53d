// Command chaingraph indexes a Bitcoin chain into a Neo4j graph store.
//
// Usage:
//
//	chaingraph [flags] init
//	chaingraph [flags] import <start> <end>
//	chaingraph [flags] sync [start]
//	chaingraph [flags] reorg <height>
//	chaingraph [flags] orphans
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/neo4j"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	neo4jstore "github.com/blockgraph/chaingraph-backend/internal/graph/neo4j"
	"github.com/blockgraph/chaingraph-backend/internal/ingest"
	"github.com/blockgraph/chaingraph-backend/internal/metrics"
	"github.com/blockgraph/chaingraph-backend/internal/provider/bitcoin"
	"github.com/blockgraph/chaingraph-backend/internal/service"
	"github.com/blockgraph/chaingraph-backend/pkg/ratelimit"
)

type config struct {
	Neo4jURI      string `long:"neo4j-uri" env:"CHAINGRAPH_NEO4J_URI" default:"neo4j://localhost:7687" description:"Neo4j URI"`
	Neo4jUser     string `long:"neo4j-user" env:"CHAINGRAPH_NEO4J_USER" default:"neo4j" description:"Neo4j username"`
	Neo4jPassword string `long:"neo4j-password" env:"CHAINGRAPH_NEO4J_PASSWORD" description:"Neo4j password"`
	Neo4jDatabase string `long:"neo4j-database" env:"CHAINGRAPH_NEO4J_DATABASE" default:"neo4j" description:"Neo4j database name"`
	MigrationsDir string `long:"migrations-dir" env:"CHAINGRAPH_MIGRATIONS_DIR" default:"migrations/neo4j" description:"path to migration files"`

	Network     string `long:"network" env:"CHAINGRAPH_NETWORK" default:"mainnet" description:"chain network (mainnet, testnet, regtest, signet)"`
	RPCURL      string `long:"rpc-url" env:"CHAINGRAPH_RPC_URL" default:"http://127.0.0.1:8332" description:"Bitcoin RPC URL"`
	RPCUser     string `long:"rpc-user" env:"CHAINGRAPH_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword string `long:"rpc-password" env:"CHAINGRAPH_RPC_PASSWORD" description:"Bitcoin RPC password"`

	BatchSize   int           `long:"batch-size" env:"CHAINGRAPH_BATCH_SIZE" default:"100" description:"heights per ingestion batch"`
	Concurrency int           `long:"concurrency" env:"CHAINGRAPH_CONCURRENCY" default:"8" description:"concurrent fetches per batch"`
	BaseDelay   time.Duration `long:"base-delay" env:"CHAINGRAPH_BASE_DELAY" default:"100ms" description:"stagger delay between concurrent fetch slots"`

	RateLimit    int           `long:"rate-limit" env:"CHAINGRAPH_RATE_LIMIT" default:"32" description:"max RPC requests per window"`
	RateWindow   time.Duration `long:"rate-window" env:"CHAINGRAPH_RATE_WINDOW" default:"1s" description:"rate limit window"`
	SyncInterval time.Duration `long:"sync-interval" env:"CHAINGRAPH_SYNC_INTERVAL" default:"30s" description:"pause between sync ticks"`

	MetricsAddr string `long:"metrics-addr" env:"CHAINGRAPH_METRICS_ADDR" default:":2112" description:"address for metrics server"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	args, err := flags.ParseArgs(&cfg, os.Args[1:])
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}
	if len(args) == 0 {
		logger.Fatal("missing command: init, import, sync, reorg or orphans")
	}

	if err := run(ctx, cfg, args, logger); err != nil {
		logger.Fatal("chaingraph failed", zap.String("command", args[0]), zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, args []string, logger *zap.Logger) error {
	command := args[0]
	if command == "init" {
		return runMigrations(cfg, logger)
	}

	app, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.close()

	switch command {
	case "import":
		if len(args) != 3 {
			return errors.New("usage: import <start> <end>")
		}
		start, err := parseHeight(args[1])
		if err != nil {
			return err
		}
		end, err := parseHeight(args[2])
		if err != nil {
			return err
		}
		return app.runImport(ctx, start, end)
	case "sync":
		var start int64
		if len(args) > 1 {
			if start, err = parseHeight(args[1]); err != nil {
				return err
			}
		}
		return app.runSync(ctx, start)
	case "reorg":
		if len(args) != 2 {
			return errors.New("usage: reorg <height>")
		}
		height, err := parseHeight(args[1])
		if err != nil {
			return err
		}
		return app.runReorgCheck(ctx, height)
	case "orphans":
		return app.runOrphans(ctx)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// app wires the store, provider and services behind the commands.
type app struct {
	cfg       config
	logger    *zap.Logger
	store     *neo4jstore.Repository
	rpcClient *rpcclient.Client
	source    *bitcoin.Source
	engine    *ingest.Engine
	resolver  *service.OrphanResolver
	reorg     *service.ReorgService
}

func newApp(ctx context.Context, cfg config, logger *zap.Logger) (*app, error) {
	store, err := neo4jstore.NewRepository(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase, metrics.NewGraphRepository())
	if err != nil {
		return nil, fmt.Errorf("init graph store: %w", err)
	}

	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("init rpc client: %w", err)
	}

	limiter, err := ratelimit.New(cfg.RateLimit, cfg.RateWindow)
	if err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("init rate limiter: %w", err)
	}

	rpcMetrics := metrics.NewRPCClient(cfg.Network)
	source, err := bitcoin.NewSource(bitcoin.NewRPCClient(rpcClient, rpcMetrics), limiter, cfg.Network, bitcoin.RetryConfig{}, rpcMetrics)
	if err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("init chain source: %w", err)
	}

	engine := ingest.New(source, store, ingest.Config{
		BatchSize:   cfg.BatchSize,
		Concurrency: cfg.Concurrency,
		BaseDelay:   cfg.BaseDelay,
	}, metrics.NewIngester(cfg.Network), logger.Named("ingest"))

	resolver := service.NewOrphanResolver(store, metrics.NewResolver(cfg.Network), logger.Named("resolver"))
	reorg := service.NewReorgService(store, source, engine, resolver, metrics.NewReorg(cfg.Network), logger.Named("reorg"))

	return &app{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		rpcClient: rpcClient,
		source:    source,
		engine:    engine,
		resolver:  resolver,
		reorg:     reorg,
	}, nil
}

func (a *app) close() {
	a.rpcClient.Shutdown()
	a.rpcClient.WaitForShutdown()

	// The run context is already canceled when a signal triggered the
	// shutdown; closing the driver needs its own deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.store.Close(ctx); err != nil {
		a.logger.Error("failed to close graph store", zap.Error(err))
	}
}

func (a *app) runImport(ctx context.Context, start, end int64) error {
	if err := a.engine.IngestRange(ctx, start, end); err != nil {
		return err
	}
	resolved, err := a.resolver.Resolve(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("import finished",
		zap.Int64("start", start),
		zap.Int64("end", end),
		zap.Int("orphans_resolved", resolved))
	return nil
}

func (a *app) runSync(ctx context.Context, start int64) error {
	startMetricsServer(ctx, a.cfg.MetricsAddr, a.logger)

	scheduler := service.NewScheduler(
		a.store,
		a.source,
		a.engine,
		a.resolver,
		a.reorg,
		service.SchedulerConfig{StartHeight: start, Interval: a.cfg.SyncInterval},
		metrics.NewScheduler(a.cfg.Network),
		a.logger.Named("scheduler"),
	)
	return scheduler.Run(ctx)
}

func (a *app) runReorgCheck(ctx context.Context, height int64) error {
	result, err := a.reorg.Check(ctx, height)
	if err != nil {
		return err
	}
	if result == nil {
		a.logger.Info("no divergence found", zap.Int64("height", height))
		return nil
	}
	a.logger.Info("reorganization recovered",
		zap.Int64("fork_point", result.ForkPoint),
		zap.Int64("reingested", result.Reingested))
	return nil
}

func (a *app) runOrphans(ctx context.Context) error {
	resolved, err := a.resolver.Resolve(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("orphan resolution pass finished", zap.Int("resolved", resolved))
	return nil
}

func runMigrations(cfg config, logger *zap.Logger) error {
	dir, err := filepath.Abs(cfg.MigrationsDir)
	if err != nil {
		return fmt.Errorf("resolve migrations dir: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat migrations dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	databaseURL, err := migrateURL(cfg)
	if err != nil {
		return err
	}

	m, err := migrate.New(fmt.Sprintf("file://%s", filepath.ToSlash(dir)), databaseURL)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Error("failed to close migration source", zap.Error(srcErr))
		}
		if dbErr != nil {
			logger.Error("failed to close migration database", zap.Error(dbErr))
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("no migrations to apply")
			return nil
		}
		return err
	}

	logger.Info("migrations applied successfully")
	return nil
}

func migrateURL(cfg config) (string, error) {
	parsed, err := url.Parse(cfg.Neo4jURI)
	if err != nil {
		return "", fmt.Errorf("parse neo4j uri: %w", err)
	}
	if parsed.Host == "" {
		return "", errors.New("neo4j uri missing host")
	}
	return fmt.Sprintf("neo4j://%s:%s@%s/?x-multi-statement=true",
		url.QueryEscape(cfg.Neo4jUser), url.QueryEscape(cfg.Neo4jPassword), parsed.Host), nil
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}

func parseHeight(raw string) (int64, error) {
	height, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || height < 0 {
		return 0, fmt.Errorf("invalid height %q", raw)
	}
	return height, nil
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
