package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/meenmo/qfmath/cmd/internal/cli"
	"github.com/meenmo/qfmath/dist"
)

// result is one evaluated point. Output is nil when the value is NaN or
// infinite; Note then names it ("NaN", "+Inf", "-Inf").
type result struct {
	Func   string   `json:"func"`
	Input  float64  `json:"input"`
	Output *float64 `json:"output"`
	Note   string   `json:"note,omitempty"`
}

func newResult(name string, x, y float64) result {
	r := result{Func: name, Input: x}
	switch {
	case math.IsNaN(y):
		r.Note = "NaN"
	case math.IsInf(y, 1):
		r.Note = "+Inf"
	case math.IsInf(y, -1):
		r.Note = "-Inf"
	default:
		r.Output = &y
	}
	return r
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "normdist:", err)
		os.Exit(1)
	}
}

// evalArgs are the values and flags given to an evaluation command.
type evalArgs struct {
	xs        []float64
	logLevel  string
	unchecked bool
	help      bool
}

// parseEvalArgs reads the arguments of pdf, cdf and inv. Cobra's flag
// parsing is off for these commands so that "-1.5" is read as a number.
func parseEvalArgs(name string, args []string, withUnchecked bool) (evalArgs, error) {
	out := evalArgs{logLevel: "warn"}
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
		case a == "-h" || a == "--help":
			out.help = true
		case withUnchecked && a == "--unchecked":
			out.unchecked = true
		case a == "--log-level":
			if i+1 >= len(args) {
				return out, errors.Errorf("%s: --log-level needs a value", name)
			}
			i++
			out.logLevel = args[i]
		case strings.HasPrefix(a, "--log-level="):
			out.logLevel = strings.TrimPrefix(a, "--log-level=")
		default:
			x, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return out, errors.Wrapf(err, "%s: parse %q", name, a)
			}
			out.xs = append(out.xs, x)
		}
	}
	if !out.help && len(out.xs) == 0 {
		return out, errors.Errorf("%s: need at least one value", name)
	}
	return out, nil
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "normdist",
		Short:         "Evaluate standard normal density, cumulative and inverse cumulative",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Declared so "normdist --log-level debug cdf 1" resolves the
	// subcommand; the subcommands read the value themselves.
	root.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")

	n := dist.StandardNormal()

	eval := func(name string, withUnchecked bool, f func(x float64, unchecked bool) (float64, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			in, err := parseEvalArgs(name, args, withUnchecked)
			if err != nil {
				return err
			}
			if in.help {
				return cmd.Help()
			}
			log := cli.NewLogger(stderr, in.logLevel)
			enc := json.NewEncoder(stdout)
			for _, x := range in.xs {
				y, err := f(x, in.unchecked)
				if err != nil {
					return errors.Wrap(err, name)
				}
				log.WithField("func", name).WithField("x", x).Debug(y)
				if err := enc.Encode(newResult(name, x, y)); err != nil {
					return err
				}
			}
			return nil
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:                "pdf X...",
			Short:              "Probability density",
			DisableFlagParsing: true,
			RunE: eval("pdf", false, func(x float64, _ bool) (float64, error) {
				return n.Density(x), nil
			}),
		},
		&cobra.Command{
			Use:                "cdf X...",
			Short:              "Cumulative probability P(X <= x)",
			DisableFlagParsing: true,
			RunE: eval("cdf", false, func(x float64, _ bool) (float64, error) {
				return n.Cumulative(x), nil
			}),
		},
		&cobra.Command{
			Use:   "inv [--unchecked] P...",
			Short: "Inverse cumulative; P must lie in (0,1) unless --unchecked",
			Long: `inv evaluates the inverse cumulative at each P. Without --unchecked a P
outside (0,1) is an error. With --unchecked the approximation is evaluated
anyway; results that are NaN or infinite are reported with a null output
and a note.`,
			DisableFlagParsing: true,
			RunE: eval("inv", true, func(p float64, unchecked bool) (float64, error) {
				if unchecked {
					return n.InverseCumulative(p), nil
				}
				return n.InverseCumulativeChecked(p)
			}),
		},
	)
	return root
}
