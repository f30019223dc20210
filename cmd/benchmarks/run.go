package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"digital.vasic.benchmarks/pkg/assertion"
	"digital.vasic.benchmarks/pkg/benchmark"
	"digital.vasic.benchmarks/pkg/env"
	"digital.vasic.benchmarks/pkg/extharness"
	"digital.vasic.benchmarks/pkg/logging"
	"digital.vasic.benchmarks/pkg/metrics"
	"digital.vasic.benchmarks/pkg/monitor"
	"digital.vasic.benchmarks/pkg/plugin"
	"digital.vasic.benchmarks/pkg/registry"
	"digital.vasic.benchmarks/pkg/report"
	"digital.vasic.benchmarks/pkg/runner"
	"digital.vasic.benchmarks/pkg/suite"
)

// plugins holds compile-time extensions. Custom builds append here
// before main runs to register extra benchmarks, conditions, and
// reporters.
var plugins []plugin.Plugin

type runOptions struct {
	suiteFiles  []string
	category    string
	trials      int
	warmup      int
	timeout     time.Duration
	staleAfter  time.Duration
	outputDir   string
	format      string
	serveAddr   string
	metricsAddr string
	webhookURL  string
	envFile     string
	logLevel    string
	logJSON     bool
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [benchmark-id]...",
		Short: "Run benchmarks and evaluate their assertions",
		Long: `Run executes benchmarks sequentially: warmup trials, measured
trials with per-trial counter sets, per-counter aggregation, and
threshold assertion evaluation. With no IDs, every registered
benchmark runs in execution order. Suite files supply declarative
definitions; a definition whose metadata names a harness binary is
run through the external harness adapter.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case "json", "html", "both":
			default:
				return fmt.Errorf(
					"unknown report format %q "+
						"(want json, html, or both)",
					opts.format,
				)
			}
			return runBenchmarks(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&opts.suiteFiles, "suite", nil,
		"Suite file(s) with declarative definitions")
	flags.StringVar(&opts.category, "category", "",
		"Run only benchmarks in this category")
	flags.IntVar(&opts.trials, "trials", 0,
		"Measured trials per benchmark (0 = config default)")
	flags.IntVar(&opts.warmup, "warmup", -1,
		"Warmup trials per benchmark (-1 = config default)")
	flags.DurationVar(&opts.timeout, "timeout", 0,
		"Per-benchmark execution timeout (0 = config default)")
	flags.DurationVar(&opts.staleAfter, "stale-after", 0,
		"Abort a run with no trial progress for this long "+
			"(0 = disabled)")
	flags.StringVar(&opts.outputDir, "output", "results",
		"Base directory for results, logs, and reports")
	flags.StringVar(&opts.format, "format", "json",
		"Report format: json, html, or both")
	flags.StringVar(&opts.serveAddr, "serve", "",
		"Serve the live monitor dashboard on this address")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "",
		"Serve Prometheus metrics on this address")
	flags.StringVar(&opts.webhookURL, "webhook-url", "",
		"Publish results to this webhook endpoint")
	flags.StringVar(&opts.envFile, "env-file", "",
		"Load environment variables from this .env file")
	flags.StringVar(&opts.logLevel, "log-level", "info",
		"Log level: debug or info")
	flags.BoolVar(&opts.logJSON, "log-json", false,
		"Also write JSON Lines logs under the output directory")

	return cmd
}

func runBenchmarks(
	cmd *cobra.Command,
	args []string,
	opts *runOptions,
) error {
	ctx := cmd.Context()

	envLoader := env.NewLoader()
	if opts.envFile != "" {
		if err := envLoader.Load(opts.envFile); err != nil {
			return err
		}
	}

	logger, err := buildLogger(opts)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer logger.Close()

	reg := registry.Default
	engine := assertion.NewEngine()

	if err := initPlugins(reg, engine, logger); err != nil {
		return err
	}

	skipped, err := loadSuites(reg, opts.suiteFiles)
	if err != nil {
		return err
	}

	collector := monitor.NewEventCollector()
	collector.OnEvent(func(e monitor.Event) {
		if e.Type != monitor.EventTrialCompleted {
			return
		}
		logger.LogTrial(logging.TrialRecord{
			Timestamp:  e.Timestamp.Format(time.RFC3339),
			RunID:      e.RunID,
			Benchmark:  string(e.BenchmarkID),
			Trial:      e.Trial,
			Trials:     e.Trials,
			DurationMs: e.Duration.Milliseconds(),
		})
	})

	var sink metrics.Metrics = metrics.NoopMetrics{}
	if opts.metricsAddr != "" {
		pm := metrics.NewPrometheusMetrics()
		sink = pm
		go serveMetrics(
			ctx, opts.metricsAddr, pm.Handler(), logger,
		)
	}

	if opts.serveAddr != "" {
		srv := monitor.NewServer(
			opts.serveAddr, collector,
			monitor.NewDashboardData(uuid.NewString()),
		)
		go func() {
			if err := srv.Start(ctx); err != nil {
				logger.Error("monitor server failed",
					logging.ErrorField(err))
			}
		}()
		logger.Info("monitor dashboard serving",
			logging.StringField("addr", opts.serveAddr))
	}

	r := runner.NewRunner(
		runner.WithRegistry(reg),
		runner.WithEngine(engine),
		runner.WithLogger(logging.ForBenchmark(logger)),
		runner.WithMetrics(sink),
		runner.WithCollector(collector),
		runner.WithResultsDir(opts.outputDir),
		runner.WithStaleThreshold(opts.staleAfter),
	)

	cfg := buildConfig(opts)
	results, runErr := executeSelection(ctx, r, args, opts, cfg)

	for _, def := range skipped {
		res := skippedResult(def)
		collector.Emit(monitor.Event{
			Type:        monitor.EventSkipped,
			RunID:       res.RunID,
			BenchmarkID: res.BenchmarkID,
			Name:        res.BenchmarkName,
			Status:      benchmark.StatusSkipped,
			Message:     res.Error,
		})
		results = append(results, res)
	}

	printResults(cmd, results)

	if len(results) > 0 {
		if err := writeReports(opts, results); err != nil {
			return err
		}
		summary := report.BuildMasterSummary(results)
		if err := report.SaveMasterSummary(
			summary, opts.outputDir,
		); err != nil {
			return err
		}
	}

	if opts.webhookURL != "" {
		publisher := report.NewWebhookPublisher(
			opts.webhookURL, envLoader.GetToken("webhook"),
		)
		if err := publisher.PublishAll(ctx, results); err != nil {
			logger.Error("webhook delivery failed",
				logging.ErrorField(err))
		}
	}

	if runErr != nil {
		return runErr
	}

	failed := 0
	for _, res := range results {
		switch res.Status {
		case benchmark.StatusPassed, benchmark.StatusSkipped:
		default:
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf(
			"%d of %d benchmark(s) failed",
			failed, len(results),
		)
	}
	return nil
}

// buildLogger builds the console logger, wrapping it in a multi
// logger with JSON Lines output when requested.
func buildLogger(opts *runOptions) (logging.Logger, error) {
	verbose := strings.EqualFold(opts.logLevel, "debug")
	console := logging.NewConsoleLogger(verbose)
	if !opts.logJSON {
		return console, nil
	}

	jsonLogger, err := logging.SetupLogging(
		filepath.Join(opts.outputDir, "logs"), verbose,
	)
	if err != nil {
		return nil, err
	}
	return logging.NewMultiLogger(console, jsonLogger), nil
}

// initPlugins runs every compiled-in plugin against a context
// exposing the benchmark registry and assertion engine.
func initPlugins(
	reg registry.Registry,
	engine assertion.Engine,
	logger logging.Logger,
) error {
	if len(plugins) == 0 {
		return nil
	}

	loader := plugin.NewLoader(plugin.NewRegistry())
	pctx := &plugin.Context{
		Benchmarks: reg,
		Engine:     engine,
	}
	if err := loader.LoadAndInit(plugins, pctx); err != nil {
		return fmt.Errorf("init plugins: %w", err)
	}
	logger.Info("plugins initialized",
		logging.IntField("count", len(plugins)))
	return nil
}

// loadSuites loads suite files and materializes their definitions:
// a definition whose ID matches a registered benchmark rides along
// as metadata, one whose metadata names a harness binary becomes an
// external benchmark, and the rest are reported as skipped.
func loadSuites(
	reg registry.Registry,
	paths []string,
) ([]*benchmark.Definition, error) {
	s := suite.New()
	for _, path := range paths {
		if err := s.LoadFile(path); err != nil {
			return nil, err
		}
	}

	var skipped []*benchmark.Definition
	for _, def := range s.All() {
		if _, err := reg.Get(def.ID); err == nil {
			if err := reg.RegisterDefinition(def); err != nil {
				return nil, err
			}
			continue
		}

		harness := def.Metadata["harness"]
		if harness == "" {
			skipped = append(skipped, def)
			continue
		}

		eb, err := harnessBenchmark(def, harness)
		if err != nil {
			return nil, fmt.Errorf(
				"definition %s: %w", def.ID, err,
			)
		}
		if err := reg.Register(eb); err != nil {
			return nil, err
		}
	}
	return skipped, nil
}

// harnessBenchmark builds an external benchmark from a suite
// definition whose metadata names a harness binary.
func harnessBenchmark(
	def *benchmark.Definition,
	harness string,
) (*extharness.ExternalBenchmark, error) {
	var eopts []extharness.ExternalOption
	if cfg := def.Metadata["harness_config"]; cfg != "" {
		eopts = append(
			eopts, extharness.WithConfigPath(cfg),
		)
	}

	eb, err := extharness.NewExternalBenchmark(
		def.ID, def.Name, def.Description, def.Category,
		extharness.NewCLIAdapter(harness),
		def.Counters,
		eopts...,
	)
	if err != nil {
		return nil, err
	}

	specs, err := def.Specs()
	if err != nil {
		return nil, err
	}
	for _, spec := range specs {
		if err := eb.AddAssertion(spec); err != nil {
			return nil, err
		}
	}
	return eb, nil
}

// buildConfig derives the shared run config from flags, leaving
// zero values where the runner's defaults should apply.
func buildConfig(opts *runOptions) *benchmark.Config {
	cfg := benchmark.NewConfig("")
	// The runner derives a timestamped per-run directory when
	// none is set.
	cfg.ResultsDir = ""
	cfg.Verbose = strings.EqualFold(opts.logLevel, "debug")

	if opts.trials > 0 {
		cfg.Trials = opts.trials
	}
	if opts.warmup >= 0 {
		cfg.Warmup = opts.warmup
	}
	if opts.timeout > 0 {
		cfg.Timeout = opts.timeout
	}
	if opts.staleAfter > 0 {
		cfg.StaleThreshold = opts.staleAfter
	}
	return cfg
}

// executeSelection runs the benchmarks selected by args and flags:
// explicit IDs, a category, or everything registered.
func executeSelection(
	ctx context.Context,
	r runner.Runner,
	args []string,
	opts *runOptions,
	cfg *benchmark.Config,
) ([]*benchmark.Result, error) {
	if opts.category != "" {
		return r.RunByCategory(ctx, opts.category, cfg)
	}

	if len(args) == 0 {
		return r.RunAll(ctx, cfg)
	}

	var results []*benchmark.Result
	for _, id := range args {
		c := *cfg
		c.BenchmarkID = benchmark.ID(id)
		res, err := r.Run(ctx, benchmark.ID(id), &c)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// skippedResult builds a terminal result for a suite definition
// with no way to execute it.
func skippedResult(def *benchmark.Definition) *benchmark.Result {
	now := time.Now()
	return &benchmark.Result{
		RunID:         uuid.NewString(),
		BenchmarkID:   def.ID,
		BenchmarkName: def.Name,
		Status:        benchmark.StatusSkipped,
		StartTime:     now,
		EndTime:       now,
		Error: "no registered implementation or " +
			"harness metadata",
	}
}

// printResults writes a compact outcome table to stdout.
func printResults(
	cmd *cobra.Command,
	results []*benchmark.Result,
) {
	w := tabwriter.NewWriter(
		cmd.OutOrStdout(), 0, 4, 2, ' ', 0,
	)
	fmt.Fprintln(w, "ID\tSTATUS\tDURATION\tASSERTIONS")
	for _, res := range results {
		passed := 0
		for _, v := range res.Report.Verdicts {
			if v.Pass {
				passed++
			}
		}
		fmt.Fprintf(
			w, "%s\t%s\t%s\t%d/%d\n",
			res.BenchmarkID, res.Status,
			res.Duration.Round(time.Millisecond),
			passed, res.Report.Len(),
		)
	}
	w.Flush()
}

// writeReports renders per-benchmark reports and the master
// summary in the selected format(s).
func writeReports(
	opts *runOptions,
	results []*benchmark.Result,
) error {
	reportsDir := filepath.Join(opts.outputDir, "reports")
	if err := os.MkdirAll(reportsDir, 0o755); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	reporters := map[string]report.Reporter{}
	if opts.format == "json" || opts.format == "both" {
		reporters["json"] = report.NewJSONReporter(
			reportsDir, true,
		)
	}
	if opts.format == "html" || opts.format == "both" {
		reporters["html"] = report.NewHTMLReporter(reportsDir)
	}

	for ext, rep := range reporters {
		for _, res := range results {
			data, err := rep.GenerateReport(res)
			if err != nil {
				return fmt.Errorf(
					"report %s: %w", res.BenchmarkID, err,
				)
			}
			path := filepath.Join(reportsDir, fmt.Sprintf(
				"%s.%s", res.BenchmarkID, ext,
			))
			if err := os.WriteFile(
				path, data, 0o644,
			); err != nil {
				return fmt.Errorf(
					"write report %s: %w", path, err,
				)
			}
		}

		data, err := rep.GenerateMasterSummary(results)
		if err != nil {
			return fmt.Errorf("master summary: %w", err)
		}
		path := filepath.Join(
			reportsDir, "master_summary."+ext,
		)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf(
				"write master summary %s: %w", path, err,
			)
		}
	}
	return nil
}

// serveMetrics exposes the Prometheus handler until the context is
// cancelled.
func serveMetrics(
	ctx context.Context,
	addr string,
	handler http.Handler,
	logger logging.Logger,
) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil &&
		err != http.ErrServerClosed {
		logger.Error("metrics listener failed",
			logging.ErrorField(err))
	}
}
