package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/meenmo/qfmath/cmd/internal/cli"
	"github.com/meenmo/qfmath/cmd/paramint/internal/job"
	"github.com/meenmo/qfmath/config"
)

var errHadFailures = errors.New("one or more inputs failed")

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var (
		inputPath   string
		configPath  string
		logLevel    string
		moneyPlaces int32
	)

	cmd := &cobra.Command{
		Use:   "paramint",
		Short: "Integrate time-varying parameters described in JSON",
		Long: `paramint reads one JSON object or an array of them (from -input or stdin),
builds a parameter with an analytic, numeric or discrete integration strategy,
and prints its integral and mean over the requested interval.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cli.NewLogger(stderr, logLevel)

			cfg := config.GetConfig()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					log.WithError(err).Error("load config")
					return err
				}
				cfg = loaded
				log.WithFields(logrus.Fields{
					"formula":   cfg.Formula,
					"intervals": cfg.Intervals,
				}).Debug("quadrature config loaded")
			}

			path := strings.TrimSpace(inputPath)
			raw, err := readInput(path, stdin)
			if err != nil {
				return writeFatal(stdout, errors.Wrap(err, "read input"))
			}
			inputs, isArray, err := job.Parse(raw)
			if err != nil {
				return writeFatal(stdout, errors.Wrap(err, "parse JSON"))
			}

			opts := job.Options{Config: cfg, MoneyPlaces: moneyPlaces}
			hadError := false
			outputs := make([]job.Output, 0, len(inputs))
			for _, in := range inputs {
				out, err := job.Process(in, opts)
				if err != nil {
					hadError = true
					log.WithError(err).WithField("task_id", in.TaskID).Warn("input failed")
					outputs = append(outputs, job.Output{TaskID: in.TaskID, Error: err.Error()})
					continue
				}
				log.WithFields(logrus.Fields{
					"task_id":  out.TaskID,
					"kind":     out.Kind,
					"integral": out.Integral,
				}).Debug("integrated")
				outputs = append(outputs, *out)
			}

			var v any = outputs
			if !isArray {
				v = outputs[0]
			}
			if err := writeJSON(stdout, v); err != nil {
				return err
			}
			if hadError {
				return errHadFailures
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "JSON input path (reads stdin if omitted)")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML quadrature config (formula, intervals)")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	cmd.Flags().Int32Var(&moneyPlaces, "money-places", 2, "decimal places for notional amounts")
	return cmd
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	if f, ok := stdin.(*os.File); ok && f == os.Stdin && cli.StdinIsTerminal() {
		return nil, errors.New("no input: pass -input or pipe JSON on stdin")
	}
	return io.ReadAll(stdin)
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func writeFatal(w io.Writer, err error) error {
	_ = writeJSON(w, job.Output{Error: err.Error()})
	return err
}
