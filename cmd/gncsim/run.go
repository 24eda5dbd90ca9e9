package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/san-kum/gncsim/internal/config"
	"github.com/san-kum/gncsim/internal/live"
	"github.com/san-kum/gncsim/internal/logging"
	"github.com/san-kum/gncsim/internal/metrics"
	"github.com/san-kum/gncsim/internal/observability"
	"github.com/san-kum/gncsim/internal/scenario"
	"github.com/san-kum/gncsim/internal/sim"
	"github.com/san-kum/gncsim/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// resolveConfig layers the config file, if any, under the command line:
// file values apply only where the matching flag was not set.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if configFile == "" || flags.Changed("scenario") {
		cfg.Scenario = scenarioName
	}
	if configFile == "" || flags.Changed("scenario-file") {
		cfg.ScenarioFile = scenarioFile
	}
	if configFile == "" || flags.Changed("steps") {
		cfg.Steps = steps
	}
	if configFile == "" || flags.Changed("seed") {
		cfg.Seed = seed
	}
	if configFile == "" || flags.Changed("sensor-noise") {
		cfg.SensorNoise = sensorNoise
	}
	if configFile == "" || flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if configFile == "" || flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if configFile == "" || flags.Changed("trace") {
		cfg.Trace = traceEnabled
	}
	if configFile == "" || flags.Changed("metrics-file") {
		cfg.MetricsFile = metricsFile
	}
	if flags.Lookup("out") != nil && (configFile == "" || flags.Changed("out")) {
		cfg.OutputDir = outDir
	}
	if flags.Lookup("plot") != nil && (configFile == "" || flags.Changed("plot")) {
		cfg.Plot = plotMode
	}
	if flags.Lookup("format") != nil && (configFile == "" || flags.Changed("format")) {
		cfg.ImageFormat = imageFormat
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveScenario prefers a custom scenario file. Unknown preset names fall
// back to the default bundle with a warning.
func resolveScenario(cfg *config.Config, log *zap.Logger) (scenario.Config, error) {
	if cfg.ScenarioFile != "" {
		sc, err := scenario.LoadFile(cfg.ScenarioFile)
		if err != nil {
			return scenario.Config{}, err
		}
		log.Info("loaded custom scenario", zap.String("scenario", sc.Name), zap.String("file", cfg.ScenarioFile))
		return sc, nil
	}

	sc, ok := scenario.Lookup(cfg.Scenario)
	if !ok {
		log.Warn("unknown scenario, using default",
			zap.String("requested", cfg.Scenario),
			zap.String("default", scenario.Default),
		)
		sc = scenario.Select(cfg.Scenario)
	}
	return sc, nil
}

type session struct {
	cfg      *config.Config
	log      *zap.Logger
	scenario scenario.Config
	metrics  *observability.Collector
	shutdown func(context.Context) error
}

// newSession resolves the configuration and sets up logging, tracing and the
// metrics registry. On failure anything already started is torn down.
func newSession(ctx context.Context, cmd *cobra.Command) (*session, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	shutdown, err := observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:     cfg.Trace,
		ServiceName: "gncsim",
	}, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	sess := &session{cfg: cfg, log: log, shutdown: shutdown}
	fail := func(err error) (*session, error) {
		observability.ShutdownWithTimeout(context.Background(), shutdown, log)
		_ = log.Sync()
		return nil, err
	}

	sess.scenario, err = resolveScenario(cfg, log)
	if err != nil {
		return fail(err)
	}
	sess.metrics, err = observability.NewCollector(prometheus.NewRegistry(), sess.scenario.Name)
	if err != nil {
		return fail(err)
	}
	return sess, nil
}

// newSimulator builds the scenario's pipeline and attaches the session's
// collector and a fresh set of summary metrics.
func (s *session) newSimulator(cfg sim.Config, opts ...sim.Option) (*sim.Simulator, error) {
	opts = append([]sim.Option{sim.WithLogger(s.log)}, opts...)
	sm, err := sim.NewFromScenario(s.scenario, cfg, opts...)
	if err != nil {
		return nil, err
	}
	sm.AddObserver(s.metrics)
	for _, m := range metrics.Default() {
		sm.AddMetric(m)
	}
	return sm, nil
}

func (s *session) close(ctx context.Context) error {
	observability.ShutdownWithTimeout(ctx, s.shutdown, s.log)
	var err error
	if s.cfg.MetricsFile != "" {
		err = s.metrics.WriteTextfile(s.cfg.MetricsFile)
		if err == nil {
			s.log.Info("metrics written", zap.String("file", s.cfg.MetricsFile))
		}
	}
	_ = s.log.Sync()
	return err
}

func runSimulation(cmd *cobra.Command, args []string) (err error) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	sess, err := newSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, sess.close(context.Background())) }()
	cfg := sess.cfg

	opts := []sim.Option{sim.WithProgress(cmd.OutOrStdout())}
	var plots viz.Multi
	if cfg.WantsImage() {
		plots = append(plots, viz.NewImagePlotter(cfg.OutputDir, cfg.ImageFormat))
	}
	if cfg.WantsTerminal() {
		plots = append(plots, viz.NewTerminalPlotter(cmd.OutOrStdout()))
	}
	if len(plots) > 0 {
		opts = append(opts, sim.WithVisualizer(plots))
	}

	s, err := sess.newSimulator(cfg.SimConfig(), opts...)
	if err != nil {
		return err
	}

	res, err := s.Run(ctx, cfg.Steps)
	if res != nil {
		printSummary(cmd, res)
	}
	return err
}

func printSummary(cmd *cobra.Command, res *sim.Result) {
	out := cmd.OutOrStdout()
	banner(cmd, fmt.Sprintf("%s  seed %d  %d steps", res.Scenario, res.Seed, res.StepsTaken))
	p := res.FinalPosition
	fmt.Fprintf(out, "final position: (%.3f, %.3f, %.3f)\n", p.X, p.Y, p.Z)
	fmt.Fprintf(out, "actuator commands: %d\n", res.Actuations)

	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(out, "metrics:")
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %.6f\n", name, res.Metrics[name])
	}
}

func runLive(cmd *cobra.Command, args []string) (err error) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	sess, err := newSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, sess.close(context.Background())) }()

	// Log lines on stderr would tear the alternate screen.
	s, err := sess.newSimulator(sess.cfg.SimConfig(), sim.WithProgress(io.Discard), sim.WithLogger(zap.NewNop()))
	if err != nil {
		return err
	}
	return live.Run(ctx, s, sess.cfg.Steps)
}
