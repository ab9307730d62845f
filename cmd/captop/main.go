package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/captop/captop/pkg/captop"
	"github.com/captop/captop/pkg/config"
	"github.com/captop/captop/pkg/render"
	"github.com/captop/captop/pkg/system/cgroup"
	"github.com/captop/captop/pkg/system/util"
	"github.com/captop/captop/pkg/types"
)

// errSetup marks failures already reported on stdout via printSetupFailure.
var errSetup = errors.New("environment not usable")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errSetup) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

type opts struct {
	cfgPath  string
	summary  bool
	verbose  bool
	noColor  bool
	statPath string
}

func newRootCmd() *cobra.Command {
	var o opts

	root := &cobra.Command{
		Use:   "captop",
		Short: "One-shot resource report for cgroup memory-limited environments",
		Long: `captop reports the memory and CPU utilization of every visible process
relative to the cgroup v1 memory ceiling rather than host totals, which is
what matters inside containers where host-wide figures mislead.

It takes two samples half a second apart, prints one report, and exits.

Examples:
  captop
  captop --summary
  captop --memory-stat /mnt/cgroup/memory/memory.stat --no-color`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, o)
		},
	}

	root.Flags().StringVar(&o.cfgPath, "config", "", "YAML config file; explicit flags win over it")
	root.Flags().BoolVar(&o.summary, "summary", false, "print only the aggregate memory/CPU figures")
	root.Flags().BoolVar(&o.verbose, "verbose", false, "log sampling diagnostics to stderr")
	root.Flags().BoolVar(&o.noColor, "no-color", false, "disable the inverse-video table header")
	root.Flags().StringVar(&o.statPath, "memory-stat", "", "cgroup v1 memory.stat path (default "+cgroup.DefaultStatPath+")")

	return root
}

func run(cmd *cobra.Command, o opts) error {
	cfg, err := mergeConfig(cmd, o)
	if err != nil {
		printSetupFailure(err.Error())
		return errSetup
	}

	logger := newLogger(cfg.Verbose)

	env, fails := captop.ValidateEnv(captop.EnvConfig{MemoryStatPath: cfg.MemoryStatPath})
	if len(fails) > 0 {
		lines := make([]string, 0, len(fails))
		for _, f := range fails {
			lines = append(lines, f.String())
		}
		printSetupFailure(lines...)
		return errSetup
	}

	host := util.Host()
	logger.Debug().
		Str("host", host.Hostname).
		Str("kernel", host.Kernel).
		Int("cpus", host.CPUs).
		Str("host_mem", host.Memory.SI()).
		Msg("host")
	logger.Debug().
		Str("mem_limit", types.Bytes(env.Limits.MemoryLimitBytes).SI()).
		Str("buff_cache", types.Bytes(env.Limits.BuffCacheBytes).SI()).
		Str("cgroup", env.CgroupDetail).
		Msg("environment")

	st, err := captop.New(env.Limits, env.Source, captop.Options{Logger: &logger})
	if err != nil {
		printSetupFailure(err.Error())
		return errSetup
	}

	mode := render.ModeDetailed
	if cfg.Summary {
		mode = render.ModeSummary
	}
	styled := !cfg.NoColor && term.IsTerminal(int(os.Stdout.Fd()))

	return render.Report(os.Stdout, st, render.Options{Mode: mode, Styled: styled})
}

// mergeConfig resolves the effective configuration: defaults, then the
// config file when one is named, then any flag the user set explicitly.
func mergeConfig(cmd *cobra.Command, o opts) (config.Config, error) {
	cfg := config.Default()
	if o.cfgPath != "" {
		loaded, err := config.Load(o.cfgPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("summary") {
		cfg.Summary = o.summary
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = o.verbose
	}
	if cmd.Flags().Changed("no-color") {
		cfg.NoColor = o.noColor
	}
	if cmd.Flags().Changed("memory-stat") {
		cfg.MemoryStatPath = o.statPath
	}
	return cfg, nil
}

// printSetupFailure reports fatal startup problems on stdout, where the
// report would otherwise have gone.
func printSetupFailure(lines ...string) {
	fmt.Println("ERROR!")
	for _, l := range lines {
		fmt.Println(l)
	}
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
