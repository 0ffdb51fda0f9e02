package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/linhnt2803/simple-web-ui-tester/pkg/actions"
	"github.com/linhnt2803/simple-web-ui-tester/pkg/browser"
	"github.com/linhnt2803/simple-web-ui-tester/pkg/config"
	"github.com/linhnt2803/simple-web-ui-tester/pkg/logging"
	"github.com/linhnt2803/simple-web-ui-tester/pkg/metrics"
	"github.com/linhnt2803/simple-web-ui-tester/pkg/report"
	"github.com/linhnt2803/simple-web-ui-tester/pkg/scenario"
)

var errScenarioFailed = errors.New("scenario failed")

var debugLog *logging.Logger

func init() {
	var err error
	debugLog, err = logging.NewLogger("cli")
	if err != nil {
		debugLog.Warnf("Failed to initialize cli logger, using stderr fallback: %v", err)
	}
}

func buildRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "webuitest",
		Short:         "Run browser test scenarios",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		buildRunCmd(),
		buildCheckCmd(),
		buildVersionCmd(),
	)
	return root
}

type runOptions struct {
	configPath  string
	headless    bool
	outputDir   string
	metricsFile string
	timeout     time.Duration
}

func buildRunCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "Run a scenario in the browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRunConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runScenario(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to YAML configuration file")
	cmd.Flags().BoolVar(&opts.headless, "headless", true, "Run the browser without a window")
	cmd.Flags().StringVarP(&opts.outputDir, "output", "o", "", "Artifact directory (enables artifacts)")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Abort the run after this long (0 disables)")
	return cmd
}

func buildCheckCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "check [scenario]",
		Short: "Validate a scenario and print its commands in template form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return checkScenario(cmd.OutOrStdout(), cfg, args[0])
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to YAML configuration file")
	return cmd
}

func buildVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "webuitest %s (%s)\n", version, commit)
		},
	}
}

// loadRunConfig loads the configuration file and applies flag overrides.
func loadRunConfig(cmd *cobra.Command, opts runOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("headless") {
		cfg.Browser.Headless = opts.headless
	}
	if opts.outputDir != "" {
		cfg.Artifacts.Enabled = true
		cfg.Artifacts.OutputDir = opts.outputDir
	}
	return cfg, nil
}

func newRegistry(cfg *config.Config) (*actions.Registry, error) {
	guard, err := actions.NewPathGuard(cfg.Screenshots.AllowedPatterns, cfg.Screenshots.DeniedPatterns)
	if err != nil {
		return nil, fmt.Errorf("invalid screenshot patterns: %w", err)
	}
	return actions.NewRegistry(actions.WithPathGuard(guard)), nil
}

// loadScenario reads path and formats its commands.
func loadScenario(cfg *config.Config, path string) (*scenario.Scenario, *actions.Registry, []actions.Instance, error) {
	sc, err := scenario.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}
	reg, err := newRegistry(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	cmds, err := actions.NewFormatter(reg).FormatActions(sc.Actions)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, reg, cmds, nil
}

//nolint:gocyclo
func runScenario(ctx context.Context, out io.Writer, cfg *config.Config, path string, opts runOptions) error {
	logging.SetLevel(logging.ParseLevel(cfg.Logging.Verbosity))
	console := report.NewConsole(out, report.ParseLevel(cfg.Logging.Verbosity))

	sc, reg, cmds, err := loadScenario(cfg, path)
	if err != nil {
		return err
	}

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	promReg := prometheus.NewRegistry()
	m := metrics.New(promReg)

	driver := browser.NewPlaywrightDriver()
	defer func() {
		if stopErr := driver.Stop(); stopErr != nil {
			debugLog.Warnf("Failed to stop playwright: %v", stopErr)
		}
	}()

	pool := browser.NewPool(driver, browser.NewPoolConfig(cfg.Browser), browser.WithMetrics(m))
	defer pool.Shutdown()

	engine := actions.NewEngine(reg,
		actions.WithDefaults(actions.DefaultsFrom(cfg)),
		actions.WithMetrics(m),
	)
	runner := actions.NewRunner(engine, pool,
		actions.WithCloseAfterRun(cfg.Browser.CloseAfterRun),
		actions.WithRunMetrics(m),
	)

	debugLog.Infof("Running scenario %s from %s", sc.Name, path)
	console.RunStarted(sc.Name, len(cmds))

	start := time.Now()
	rep, runErr := runner.RunActions(ctx, cmds)
	summary := report.NewRunSummary(sc.Name, start, time.Now(), rep, runErr)
	summary.Source = sc.Path

	if cfg.Artifacts.Enabled {
		if dir, artErr := writeArtifacts(cfg.Artifacts, summary); artErr != nil {
			console.Warningf("%v", artErr)
		} else {
			console.Infof("Artifacts written to %s", dir)
		}
	}

	if opts.metricsFile != "" {
		if mErr := prometheus.WriteToTextfile(opts.metricsFile, promReg); mErr != nil {
			console.Warningf("failed to write metrics: %v", mErr)
		}
	}

	console.RunFinished(summary)
	if runErr != nil {
		debugLog.Errorf("Scenario %s failed: %v", sc.Name, runErr)
		return errScenarioFailed
	}
	return nil
}

func writeArtifacts(cfg config.ArtifactConfig, summary *report.RunSummary) (string, error) {
	w := report.NewArtifactWriter(cfg.OutputDir, report.WithFormats(cfg.JSON, cfg.Markdown))
	return w.Dir(), w.WriteAll(summary)
}

func checkScenario(out io.Writer, cfg *config.Config, path string) error {
	sc, reg, cmds, err := loadScenario(cfg, path)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: %d command(s)\n", sc.Name, len(cmds))
	for _, line := range canonicalLines(reg, cmds, 1) {
		fmt.Fprintln(out, line)
	}
	return nil
}

// canonicalLines renders formatted commands in template form. Groups, which
// have no template, are listed by name with their commands indented below.
func canonicalLines(reg *actions.Registry, cmds []actions.Instance, depth int) []string {
	indent := strings.Repeat("  ", depth)
	var lines []string
	for _, inst := range cmds {
		cmd, ok := reg.Lookup(inst.Name)
		if !ok {
			continue
		}
		if g := cmd.Grammar(); g != nil {
			lines = append(lines, indent+g.Format(inst.Meta))
			continue
		}

		lines = append(lines, fmt.Sprintf("%s%s '%s'", indent, inst.Name, inst.Meta.String("groupName")))
		if nested, ok := inst.Meta["actions"].([]actions.Instance); ok {
			lines = append(lines, canonicalLines(reg, nested, depth+1)...)
		}
	}
	return lines
}
