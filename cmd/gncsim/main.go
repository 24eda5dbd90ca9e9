package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/gncsim/internal/config"
	"github.com/san-kum/gncsim/internal/scenario"
	"github.com/san-kum/gncsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile   string
	scenarioName string
	scenarioFile string
	steps        int
	seed         int64
	sensorNoise  float64
	outDir       string
	plotMode     string
	imageFormat  string
	metricsFile  string
	traceEnabled bool
	logLevel     string
	logFormat    string
	numRuns      int
)

var bannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("86")).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 2)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Without a subcommand the default
// scenario runs for the default number of steps.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "gncsim",
		Short:        "non-functional guidance, navigation and control pipeline",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runSimulation,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&scenarioName, "scenario", config.DefaultScenario, "scenario name (see 'gncsim scenarios')")
	pf.StringVar(&scenarioFile, "scenario-file", "", "custom scenario file (yaml), overrides --scenario")
	pf.IntVar(&steps, "steps", config.DefaultSteps, "pipeline steps per run")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.Float64Var(&sensorNoise, "sensor-noise", config.DefaultConfig().SensorNoise, "sensor noise standard deviation")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", config.DefaultLogFormat, "log format (console, json)")
	pf.BoolVar(&traceEnabled, "trace", false, "export OpenTelemetry spans to stderr")
	pf.StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run one scenario and plot the trajectory",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&outDir, "out", config.DefaultOutputDir, "directory for plot images")
	runCmd.Flags().StringVar(&plotMode, "plot", config.PlotPNG, "plot backend (png, term, both, none)")
	runCmd.Flags().StringVar(&imageFormat, "format", viz.FormatPNG, "image file format (png, svg)")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list available scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSENSOR\tACTUATOR\tENV\tNAV\tDESCRIPTION")
			for _, name := range scenario.Names() {
				sc := scenario.Select(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					name, sc.SensorFault, sc.ActuatorFault, sc.Env, sc.Nav, scenario.Describe(name))
			}
			return w.Flush()
		},
	}

	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "run a scenario across consecutive seeds and summarise the metrics",
		Args:  cobra.NoArgs,
		RunE:  runBatch,
	}
	batchCmd.Flags().IntVar(&numRuns, "runs", 10, "number of seeds to run")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "step the pipeline in an interactive terminal view",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}

	rootCmd.AddCommand(runCmd, scenariosCmd, batchCmd, liveCmd)
	return rootCmd
}

func banner(cmd *cobra.Command, text string) {
	fmt.Fprintln(cmd.OutOrStdout(), bannerStyle.Render(text))
}
