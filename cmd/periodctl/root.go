package main

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jsamuelsen11/period-service/internal/app"
	"github.com/jsamuelsen11/period-service/internal/domain/period"
	"github.com/jsamuelsen11/period-service/internal/platform/config"
	"github.com/jsamuelsen11/period-service/internal/platform/logging"
	"github.com/jsamuelsen11/period-service/internal/ports"
)

const defaultMaxSteps = 10000

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	timezone   string
	to         string
	from       string
	format     string
	limitStart string
	limitEnd   string
	logLevel   string
	maxSteps   int
}

func (g *globalFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&g.timezone, "timezone", period.DefaultTimezone, "timezone label stored on the period")
	fs.StringVar(&g.to, "to", "", "reinterpret wall clocks into this timezone")
	fs.StringVar(&g.from, "from", "", "timezone the wall clocks are read in (default UTC when --to is set)")
	fs.StringVar(&g.format, "format", period.DefaultOutputFormat, "Go time layout used for output")
	fs.StringVar(&g.limitStart, "limit-start", "", "clamp the start to no earlier than this date")
	fs.StringVar(&g.limitEnd, "limit-end", "", "clamp the end to no later than this date")
	fs.StringVar(&g.logLevel, "log-level", "warn", "log level written to stderr (debug, info, warn, error)")
	fs.IntVar(&g.maxSteps, "max-steps", defaultMaxSteps, "largest number of points steps may print")
}

// options turns the flags into service options.
func (g *globalFlags) options() (ports.PeriodOptions, error) {
	opts := ports.PeriodOptions{
		Timezone:     g.timezone,
		OutputFormat: g.format,
		ToTimezone:   g.to,
		FromTimezone: g.from,
	}
	if g.limitStart != "" {
		t, err := period.ParseInstant("limit-start", g.limitStart)
		if err != nil {
			return opts, err
		}
		opts.LimitStart = &t
	}
	if g.limitEnd != "" {
		t, err := period.ParseInstant("limit-end", g.limitEnd)
		if err != nil {
			return opts, err
		}
		opts.LimitEnd = &t
	}
	return opts, nil
}

// service builds the application service for one command run.
func (g *globalFlags) service(cmd *cobra.Command, clk ports.Clock) *app.PeriodService {
	logger := logging.New(g.logLevel, "text", cmd.ErrOrStderr())
	return app.NewPeriodService(clk, config.PeriodConfig{
		Timezone:     g.timezone,
		OutputFormat: g.format,
		MaxSteps:     g.maxSteps,
	}, nil, logger)
}

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func newRootCmd(clk ports.Clock) *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "periodctl",
		Short:         "Build, inspect and subdivide date ranges",
		Version:       fmt.Sprintf("%s %s/%s", version(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	g.register(root.PersistentFlags())

	root.AddCommand(
		newRelativeCmd(g, clk),
		newCreateCmd(g, clk),
		newStepsCmd(g, clk),
	)
	return root
}

func newRelativeCmd(g *globalFlags, clk ports.Clock) *cobra.Command {
	return &cobra.Command{
		Use:   "relative <unit> <start-offset> [end-offset]",
		Short: "Period from start-offset units before now to end-offset units after now",
		Example: `  periodctl relative days 7
  periodctl relative hours 2 1 --timezone Europe/Paris`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := intArg("start-offset", args[1])
			if err != nil {
				return err
			}
			end := 0
			if len(args) == 3 {
				if end, err = intArg("end-offset", args[2]); err != nil {
					return err
				}
			}
			opts, err := g.options()
			if err != nil {
				return err
			}

			p, err := g.service(cmd, clk).Relative(cmd.Context(), ports.RelativeRequest{
				Unit:        args[0],
				StartOffset: start,
				EndOffset:   end,
				Options:     opts,
			})
			if err != nil {
				return err
			}
			return printPeriod(cmd.OutOrStdout(), p)
		},
	}
}

func newCreateCmd(g *globalFlags, clk ports.Clock) *cobra.Command {
	return &cobra.Command{
		Use:   "create <start> [end]",
		Short: "Period between two dates; end defaults to now",
		Example: `  periodctl create 2026-01-01
  periodctl create "2026-01-01 08:00" "2026-01-01 17:30"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options()
			if err != nil {
				return err
			}
			req := ports.CreateRequest{Start: args[0], Options: opts}
			if len(args) == 2 {
				req.End = args[1]
			}

			p, err := g.service(cmd, clk).Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printPeriod(cmd.OutOrStdout(), p)
		},
	}
}

func newStepsCmd(g *globalFlags, clk ports.Clock) *cobra.Command {
	var (
		steps    int
		interval int
		scale    string
	)

	cmd := &cobra.Command{
		Use:   "steps <start> <end>",
		Short: "Print the points that subdivide a period, one per line",
		Example: `  periodctl steps 2026-01-01 2026-01-02 --steps 4
  periodctl steps 2026-01-01 2026-03-01 --interval 2 --scale weeks`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options()
			if err != nil {
				return err
			}

			res, err := g.service(cmd, clk).Steps(cmd.Context(), ports.StepsRequest{
				CreateRequest: ports.CreateRequest{Start: args[0], End: args[1], Options: opts},
				Steps:         steps,
				Interval:      interval,
				Scale:         scale,
			})
			if err != nil {
				return err
			}
			return printPoints(cmd.OutOrStdout(), res.Points, res.Period.OutputFormat())
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 0, "number of equal steps")
	cmd.Flags().IntVar(&interval, "interval", 0, "step size in --scale units")
	cmd.Flags().StringVar(&scale, "scale", "", "step unit: seconds, minutes, hours, days, weeks, months or years")
	cmd.MarkFlagsMutuallyExclusive("steps", "interval")
	cmd.MarkFlagsMutuallyExclusive("steps", "scale")
	cmd.MarkFlagsRequiredTogether("interval", "scale")
	cmd.MarkFlagsOneRequired("steps", "interval")
	return cmd
}

func intArg(name, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, v)
	}
	return n, nil
}

func printPeriod(w io.Writer, p *period.Period) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", p, p.DiffAsString())
	return err
}

func printPoints(w io.Writer, points []time.Time, layout string) error {
	for _, t := range points {
		if _, err := fmt.Fprintln(w, t.Format(layout)); err != nil {
			return err
		}
	}
	return nil
}
