package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/blackthreadai/wildcatter/pkg/dedup"
	"github.com/blackthreadai/wildcatter/pkg/events"
	"github.com/blackthreadai/wildcatter/pkg/linker"
	"github.com/blackthreadai/wildcatter/pkg/log"
	"github.com/blackthreadai/wildcatter/pkg/orchestrator"
	"github.com/blackthreadai/wildcatter/pkg/source"
	"github.com/blackthreadai/wildcatter/pkg/source/cogcc"
	"github.com/blackthreadai/wildcatter/pkg/source/laldnr"
	"github.com/blackthreadai/wildcatter/pkg/source/ndndic"
	"github.com/blackthreadai/wildcatter/pkg/source/nmocd"
	"github.com/blackthreadai/wildcatter/pkg/source/okocc"
	"github.com/blackthreadai/wildcatter/pkg/source/txrrc"
	"github.com/blackthreadai/wildcatter/pkg/store"
	"github.com/blackthreadai/wildcatter/pkg/types"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wildcatter",
	Short: "Wildcatter - oil & gas well registry ingestion pipeline",
	Long: `Wildcatter ingests public well and operator records from state
regulatory bodies (TX RRC, OK OCC, ND NDIC, CO COGCC, LA LDNR, NM OCD),
loads them into a shared relational store, then deduplicates operators
and assets and links unbound assets back to their operator.`,
	Version: Version,
	RunE:    runRoot,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"wildcatter version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().String("dsn", os.Getenv("WILDCATTER_DSN"), "Postgres connection string")
	rootCmd.PersistentFlags().String("data-dir", envOr("DATA_DIR", "/var/lib/wildcatter"), "Staging directory for downloaded source payloads")

	rootCmd.Flags().Bool("all", false, "Run every registered source")
	rootCmd.Flags().Bool("tx-rrc", false, "Run the Texas RRC adapter")
	rootCmd.Flags().Bool("ok-occ", false, "Run the Oklahoma OCC adapter")
	rootCmd.Flags().Bool("nd-ndic", false, "Run the North Dakota NDIC adapter")
	rootCmd.Flags().Bool("co-cogcc", false, "Run the Colorado COGCC adapter")
	rootCmd.Flags().Bool("la-ldnr", false, "Run the Louisiana LDNR adapter")
	rootCmd.Flags().Bool("nm-ocd", false, "Run the New Mexico OCD adapter")

	rootCmd.Flags().Bool("dedup", false, "Run the deduplicator after sources complete")
	rootCmd.Flags().Bool("dedup-dry-run", false, "Run the deduplicator without committing merges")
	rootCmd.Flags().Bool("link", false, "Run the linker after dedup completes")
	rootCmd.Flags().Bool("download", true, "Download fresh payloads instead of reusing the latest staged directory")
	rootCmd.Flags().Bool("schedule", false, "Run forever, dispatching the full sequence on a cron schedule")
	rootCmd.Flags().String("cron", orchestrator.DefaultCronExpr, "Cron expression for --schedule")

	// Hidden: set by the orchestrator when re-invoking this binary to
	// run exactly one source in its own subprocess.
	rootCmd.Flags().String("run-source", "", "")
	_ = rootCmd.Flags().MarkHidden("run-source")

	cobra.OnInitialize(initLogging)
}

func initLogging() {
	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")

	log.Init(log.Config{
		Level:      log.Level(logLevel),
		JSONOutput: logJSON,
	})
}

// newProgressBroker starts an events.Broker with one subscriber that
// logs each event as it arrives, giving operators a live stream of
// merge/link/source-run activity alongside the component loggers'
// per-call log lines. Callers must call the returned stop func when
// done.
func newProgressBroker() (*events.Broker, func()) {
	logger := log.WithComponent("events")
	broker := events.NewBroker()
	broker.Start()

	sub := broker.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for evt := range sub {
			logger.Debug().Str("type", string(evt.Type)).Str("message", evt.Message).Msg("pipeline event")
		}
	}()

	stop := func() {
		broker.Unsubscribe(sub)
		broker.Stop()
		<-done
	}
	return broker, stop
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var sourceFlags = []struct {
	flag string
	tag  string
}{
	{"tx-rrc", "tx_rrc"},
	{"ok-occ", "ok_occ"},
	{"nd-ndic", "nd_ndic"},
	{"co-cogcc", "co_cogcc"},
	{"la-ldnr", "la_ldnr"},
	{"nm-ocd", "nm_ocd"},
}

func buildRegistry() *source.Registry {
	reg := source.NewRegistry()
	reg.Register(txrrc.New())
	reg.Register(okocc.New())
	reg.Register(ndndic.New())
	reg.Register(cogcc.New())
	reg.Register(laldnr.New())
	reg.Register(nmocd.New())
	return reg
}

// sourceConfig resolves a Config for tag from --data-dir, --download,
// and the <SRC>_API_EMAIL / <SRC>_API_PASSWORD environment variables.
func sourceConfig(cmd *cobra.Command, tag string) source.Config {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	download, _ := cmd.Flags().GetBool("download")

	prefix := strings.ToUpper(tag)
	return source.Config{
		DataDir:  dataDir,
		Download: download,
		Credential: source.Credential{
			Email:    os.Getenv(prefix + "_API_EMAIL"),
			Password: os.Getenv(prefix + "_API_PASSWORD"),
		},
	}
}

func selectedTags(cmd *cobra.Command) []string {
	all, _ := cmd.Flags().GetBool("all")

	var tags []string
	for _, sf := range sourceFlags {
		enabled, _ := cmd.Flags().GetBool(sf.flag)
		if all || enabled {
			tags = append(tags, sf.tag)
		}
	}
	return tags
}

func runRoot(cmd *cobra.Command, args []string) error {
	logger := log.WithComponent("cli")

	runSource, _ := cmd.Flags().GetString("run-source")
	if runSource != "" {
		return runSingleSource(cmd, runSource)
	}

	dsn, _ := cmd.Flags().GetString("dsn")
	if dsn == "" {
		return fmt.Errorf("no store DSN given: pass --dsn or set WILDCATTER_DSN")
	}

	schedule, _ := cmd.Flags().GetBool("schedule")
	tags := selectedTags(cmd)
	doDedup, _ := cmd.Flags().GetBool("dedup")
	dedupDryRun, _ := cmd.Flags().GetBool("dedup-dry-run")
	doLink, _ := cmd.Flags().GetBool("link")

	if schedule {
		return runScheduled(cmd, dsn, tags, doDedup || dedupDryRun, dedupDryRun, doLink)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st, err := store.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to store: %w", err)
	}
	defer st.Close()

	var srcErr error
	if len(tags) > 0 {
		execPath, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to resolve executable path: %w", err)
		}
		outcomes := orchestrator.RunSequence(ctx, execPath, tags, passthroughArgs(cmd))
		for _, o := range outcomes {
			if o.Err != nil {
				logger.Error().Err(o.Err).Str("source_tag", o.Tag).Msg("source run failed")
			}
		}
		srcErr = orchestrator.ErrorFromOutcomes(outcomes)
	}

	broker, stop := newProgressBroker()
	defer stop()

	if doDedup || dedupDryRun {
		cfg := dedup.DefaultConfig()
		cfg.DryRun = dedupDryRun
		if _, err := dedup.Run(ctx, st, cfg, broker); err != nil {
			return errors.Join(srcErr, fmt.Errorf("dedup failed: %w", err))
		}
	}

	if doLink {
		if _, err := linker.Run(ctx, st, broker); err != nil {
			return errors.Join(srcErr, fmt.Errorf("link failed: %w", err))
		}
	}

	return srcErr
}

// runSingleSource is what the re-invoked subprocess actually executes:
// download/parse/map exactly one source and load it, then exit.
func runSingleSource(cmd *cobra.Command, tag string) error {
	dsn, _ := cmd.Flags().GetString("dsn")
	if dsn == "" {
		return fmt.Errorf("no store DSN given: pass --dsn or set WILDCATTER_DSN")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st, err := store.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to store: %w", err)
	}
	defer st.Close()

	reg := buildRegistry()
	cfg := sourceConfig(cmd, tag)

	broker, stop := newProgressBroker()
	defer stop()

	_, err = orchestrator.RunSource(ctx, reg, tag, cfg, st, broker)
	return err
}

// passthroughArgs forwards the persistent flags a re-invoked
// single-source subprocess also needs (dsn, data-dir, download,
// logging), so the child resolves the same store and staging dir.
func passthroughArgs(cmd *cobra.Command) []string {
	dsn, _ := cmd.Flags().GetString("dsn")
	dataDir, _ := cmd.Flags().GetString("data-dir")
	download, _ := cmd.Flags().GetBool("download")
	logLevel, _ := cmd.Flags().GetString("log-level")
	logJSON, _ := cmd.Flags().GetBool("log-json")

	args := []string{
		"--dsn=" + dsn,
		"--data-dir=" + dataDir,
		fmt.Sprintf("--download=%t", download),
		"--log-level=" + logLevel,
	}
	if logJSON {
		args = append(args, "--log-json")
	}
	return args
}

func runScheduled(cmd *cobra.Command, dsn string, tags []string, doDedup, dedupDryRun, doLink bool) error {
	logger := log.WithComponent("cli")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st, err := store.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to store: %w", err)
	}
	defer st.Close()

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to resolve executable path: %w", err)
	}
	extraArgs := passthroughArgs(cmd)

	dispatch := func(ctx context.Context) (map[string]types.SourceRunStatus, error) {
		broker, stop := newProgressBroker()
		defer stop()

		outcomes := orchestrator.RunSequence(ctx, execPath, tags, extraArgs)
		for _, o := range outcomes {
			if o.Err != nil {
				logger.Error().Err(o.Err).Str("source_tag", o.Tag).Msg("scheduled source run failed")
			}
		}
		statuses := orchestrator.StatusesFromOutcomes(outcomes)
		srcErr := orchestrator.ErrorFromOutcomes(outcomes)

		if doDedup {
			cfg := dedup.DefaultConfig()
			cfg.DryRun = dedupDryRun
			if _, err := dedup.Run(ctx, st, cfg, broker); err != nil {
				return statuses, errors.Join(srcErr, fmt.Errorf("dedup failed: %w", err))
			}
		}
		if doLink {
			if _, err := linker.Run(ctx, st, broker); err != nil {
				return statuses, errors.Join(srcErr, fmt.Errorf("link failed: %w", err))
			}
		}
		return statuses, srcErr
	}

	dataDir, _ := cmd.Flags().GetString("data-dir")
	cronExpr, _ := cmd.Flags().GetString("cron")
	state := orchestrator.NewStateFile(dataDir + "/schedule-state.json")

	sched, err := orchestrator.NewScheduler(cronExpr, dispatch, state, tags)
	if err != nil {
		return fmt.Errorf("failed to build scheduler: %w", err)
	}

	logger.Info().Str("cron", cronExpr).Strs("sources", tags).Msg("starting scheduler")
	return sched.Run(ctx)
}
