package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/shub-krishan208/pale-tsg-v2/internal/config"
	"github.com/shub-krishan208/pale-tsg-v2/internal/telemetry"
)

// cliConf collects the flag values of every subcommand. Flags that several
// commands share (batch size) bind to the same field.
type cliConf struct {
	// scan
	token             string
	keyPath           string
	mode              string
	printJSON         bool
	testMode          bool
	overrideScannedAt string
	overrideCreatedAt string

	// sync / repair
	once      bool
	batchSize int
	sleep     int

	// auto-exit
	hours  int
	dryRun bool

	// repair
	since string
	until string
	roll  string
}

func main() {
	if err := Run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func Run(args []string) error {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var cf cliConf
	app := kingpin.New("gate", "Offline gatehouse node: credential scanning and backend replication.")

	scanCmd := app.Command("scan", "Verify a credential offline and record the scan on the local store.")
	scanCmd.Flag("token", "JWT token string. If omitted, reads from stdin.").StringVar(&cf.token)
	scanCmd.Flag("key", "Path to the public key PEM. Overrides JWT_PUBLIC_KEY_PATH.").StringVar(&cf.keyPath)
	scanCmd.Flag("mode", "Scan mode.").Default("entry").EnumVar(&cf.mode, "entry", "exit")
	scanCmd.Flag("json", "Print the decoded claims as JSON.").BoolVar(&cf.printJSON)
	scanCmd.Flag("test-mode", "Skip expiry validation, allow timestamp overrides, mark source as TEST.").BoolVar(&cf.testMode)
	scanCmd.Flag("override-scanned-at", "Override scanned_at (ISO format). Requires --test-mode.").StringVar(&cf.overrideScannedAt)
	scanCmd.Flag("override-created-at", "Override created_at (ISO format). Requires --test-mode.").StringVar(&cf.overrideCreatedAt)

	syncCmd := app.Command("sync", "Drain outbox events to the backend.")
	syncCmd.Flag("once", "Run a single batch and exit.").BoolVar(&cf.once)
	syncCmd.Flag("batch-size", "Events per batch. Overrides SYNC_BATCH_SIZE.").IntVar(&cf.batchSize)
	syncCmd.Flag("sleep", "Seconds between batches. Overrides SYNC_INTERVAL_SECONDS.").IntVar(&cf.sleep)

	autoExitCmd := app.Command("auto-exit", "Close stale ENTERED entries with AUTO_EXIT logs.")
	autoExitCmd.Flag("hours", "Close entries older than this many hours. Overrides AUTO_EXIT_HOURS.").IntVar(&cf.hours)
	autoExitCmd.Flag("dry-run", "Preview what would happen without making changes.").BoolVar(&cf.dryRun)

	repairCmd := app.Command("repair", "Replay the full local log to the backend (idempotent).")
	repairCmd.Flag("since", "ISO datetime lower bound on created_at.").StringVar(&cf.since)
	repairCmd.Flag("until", "ISO datetime upper bound on created_at.").StringVar(&cf.until)
	repairCmd.Flag("roll", "Limit to a single roll number.").StringVar(&cf.roll)
	repairCmd.Flag("batch-size", "Events per batch. Overrides SYNC_BATCH_SIZE.").IntVar(&cf.batchSize)

	runCmd := app.Command("run", "Run the gate daemon: sync loop plus scheduled jobs.")

	command, err := app.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadGate()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OTELEndpoint != "" {
		tp, err := telemetry.InitTracer(ctx, "gatehouse-gate", cfg.OTELEndpoint)
		if err != nil {
			logger.Error("failed to init OTel tracer", zap.Error(err))
		} else {
			defer tp.Shutdown(context.Background())
		}
		mp, err := telemetry.InitMeterProvider(ctx, "gatehouse-gate", cfg.OTELEndpoint)
		if err != nil {
			logger.Error("failed to init OTel meter provider", zap.Error(err))
		} else {
			defer mp.Shutdown(context.Background())
		}
	}

	switch command {
	case scanCmd.FullCommand():
		return onScan(ctx, cfg, &cf, logger)
	case syncCmd.FullCommand():
		return onSync(ctx, cfg, &cf, logger)
	case autoExitCmd.FullCommand():
		return onAutoExit(ctx, cfg, &cf, logger)
	case repairCmd.FullCommand():
		return onRepair(ctx, cfg, &cf, logger)
	case runCmd.FullCommand():
		return onRun(ctx, cfg, logger)
	default:
		return fmt.Errorf("command %q not configured", command)
	}
}

func openPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	poolCfg.ConnConfig.Tracer = otelpgx.NewTracer()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return pool, nil
}
