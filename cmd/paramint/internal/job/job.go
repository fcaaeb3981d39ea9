// Package job decodes parameter integration requests and evaluates them.
package job

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/meenmo/qfmath/config"
	"github.com/meenmo/qfmath/parameter"
	"github.com/meenmo/qfmath/quadrature"
	"github.com/meenmo/qfmath/types"
	"github.com/meenmo/qfmath/utils"
)

// Strategy kinds accepted in Input.Kind.
const (
	KindAnalytic = "analytic"
	KindNumeric  = "numeric"
	KindDiscrete = "discrete"
)

// Input describes one parameter and the interval to integrate it over.
//
// The integrand is the polynomial sum(Coeffs[i] * t^i). Analytic
// integration uses its exact antiderivative, numeric integration applies
// quadrature to it. Discrete integration uses Samples (or DatedSamples,
// ordered by date) instead.
//
// The interval is either [T1, T2] in years, or StartDate/EndDate placed on
// a time axis anchored at AnchorDate with DayCount.
type Input struct {
	TaskID string  `json:"task_id,omitempty"`
	Kind   string  `json:"kind"`
	Value  float64 `json:"value"`

	Coeffs       []float64     `json:"coeffs,omitempty"`
	Samples      []float64     `json:"samples,omitempty"`
	DatedSamples []DatedSample `json:"dated_samples,omitempty"`

	Formula   string `json:"formula,omitempty"`
	Intervals int    `json:"intervals,omitempty"`

	T1         *float64 `json:"t1,omitempty"`
	T2         *float64 `json:"t2,omitempty"`
	AnchorDate string   `json:"anchor_date,omitempty"`
	StartDate  string   `json:"start_date,omitempty"`
	EndDate    string   `json:"end_date,omitempty"`
	DayCount   string   `json:"day_count,omitempty"`

	Notional float64 `json:"notional,omitempty"`
}

// DatedSample is an observation of the parameter on a calendar date.
type DatedSample struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Output is the evaluation result for one Input.
type Output struct {
	TaskID    string       `json:"task_id,omitempty"`
	Kind      string       `json:"kind,omitempty"`
	T1        float64      `json:"t1"`
	T2        float64      `json:"t2"`
	Integral  float64      `json:"integral"`
	Mean      *float64     `json:"mean,omitempty"`
	MeanError string       `json:"mean_error,omitempty"` // why Mean is absent
	Amount    *types.Money `json:"amount,omitempty"`
	Error     string       `json:"error,omitempty"`
}

// Options control evaluation defaults.
type Options struct {
	// Config is used by numeric jobs that set neither formula nor intervals.
	Config config.Config
	// MoneyPlaces is the rounding applied to Amount.
	MoneyPlaces int32
}

// Parse decodes a single JSON object or a non-empty array of them.
// isArray reports which form was given.
func Parse(raw []byte) (inputs []Input, isArray bool, err error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, errors.New("empty input")
	}
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, errors.Wrap(err, "decode input array")
		}
		if len(inputs) == 0 {
			return nil, true, errors.New("empty input array")
		}
		return inputs, true, nil
	}
	var in Input
	if err := json.Unmarshal(trimmed, &in); err != nil {
		return nil, false, errors.Wrap(err, "decode input")
	}
	return []Input{in}, false, nil
}

// ErrNonFinite is returned when a result is NaN or infinite and so has no
// JSON or Money representation.
var ErrNonFinite = errors.New("non-finite result")

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Process builds the parameter described by in and integrates it.
// A NaN or infinite integral, mean or amount is reported as ErrNonFinite.
func Process(in Input, opts Options) (*Output, error) {
	t1, t2, err := interval(in)
	if err != nil {
		return nil, err
	}
	strategy, err := buildStrategy(in, opts.Config)
	if err != nil {
		return nil, err
	}

	p := parameter.New(in.Value, strategy)
	out := &Output{
		TaskID:   in.TaskID,
		Kind:     in.Kind,
		T1:       t1,
		T2:       t2,
		Integral: p.Integrate(t1, t2),
	}
	if !finite(out.Integral) {
		return nil, errors.Wrapf(ErrNonFinite, "integral over [%v, %v] is %v", t1, t2, out.Integral)
	}

	m, err := p.Mean(t1, t2)
	switch {
	case err != nil:
		out.MeanError = err.Error()
	case !finite(m):
		return nil, errors.Wrapf(ErrNonFinite, "mean over [%v, %v] is %v", t1, t2, m)
	default:
		out.Mean = &m
	}

	if in.Notional != 0 {
		raw := in.Notional * out.Integral
		if !finite(raw) {
			return nil, errors.Wrapf(ErrNonFinite, "amount %v x %v", in.Notional, out.Integral)
		}
		amt := types.MoneyFromFloat(raw, opts.MoneyPlaces)
		out.Amount = &amt
	}
	return out, nil
}

func interval(in Input) (types.Time, types.Time, error) {
	if in.T1 != nil && in.T2 != nil {
		return *in.T1, *in.T2, nil
	}
	if in.StartDate == "" || in.EndDate == "" {
		return 0, 0, errors.New("need t1/t2 or start_date/end_date")
	}
	start, err := utils.ParseDate(in.StartDate)
	if err != nil {
		return 0, 0, err
	}
	end, err := utils.ParseDate(in.EndDate)
	if err != nil {
		return 0, 0, err
	}
	anchor := start
	if in.AnchorDate != "" {
		if anchor, err = utils.ParseDate(in.AnchorDate); err != nil {
			return 0, 0, err
		}
	}
	axis := utils.TimeAxis{Anchor: anchor, DayCount: in.DayCount}
	if axis.DayCount == "" {
		axis.DayCount = utils.Act365F
	}
	return axis.At(start), axis.At(end), nil
}

func buildStrategy(in Input, base config.Config) (parameter.IntegrationStrategy[float64], error) {
	switch in.Kind {
	case KindAnalytic:
		if len(in.Coeffs) == 0 {
			return nil, errors.New("analytic: coeffs required")
		}
		return parameter.NewAnalytic(antiderivative(in.Coeffs)), nil

	case KindNumeric:
		if len(in.Coeffs) == 0 {
			return nil, errors.New("numeric: coeffs required")
		}
		cfg := base
		if in.Formula != "" {
			f, err := quadrature.ParseFormula(in.Formula)
			if err != nil {
				return nil, errors.Wrap(err, "numeric")
			}
			cfg.Formula = f
		}
		if in.Intervals != 0 {
			cfg.Intervals = in.Intervals
		}
		s, err := parameter.NewNumericWithConfig(polynomial(in.Coeffs), cfg)
		if err != nil {
			return nil, errors.Wrap(err, "numeric")
		}
		return s, nil

	case KindDiscrete:
		samples, err := sampleValues(in)
		if err != nil {
			return nil, err
		}
		s, err := parameter.NewDiscreteData(samples)
		if err != nil {
			return nil, errors.Wrap(err, "discrete")
		}
		return s, nil

	default:
		return nil, errors.Errorf("unknown kind %q (want analytic, numeric or discrete)", in.Kind)
	}
}

func sampleValues(in Input) ([]float64, error) {
	if len(in.DatedSamples) == 0 {
		return in.Samples, nil
	}
	byDate := make(map[time.Time]float64, len(in.DatedSamples))
	dates := make([]time.Time, 0, len(in.DatedSamples))
	for _, s := range in.DatedSamples {
		d, err := utils.ParseDate(s.Date)
		if err != nil {
			return nil, errors.Wrap(err, "dated_samples")
		}
		if _, dup := byDate[d]; dup {
			return nil, errors.Errorf("dated_samples: duplicate date %s", s.Date)
		}
		byDate[d] = s.Value
		dates = append(dates, d)
	}
	utils.SortDates(dates)
	values := make([]float64, len(dates))
	for i, d := range dates {
		values[i] = byDate[d]
	}
	return values, nil
}

// polynomial returns t -> sum(c[i] * t^i).
func polynomial(c []float64) func(types.Time) float64 {
	return func(t types.Time) float64 {
		var acc float64
		for i := len(c) - 1; i >= 0; i-- {
			acc = acc*t + c[i]
		}
		return acc
	}
}

// antiderivative returns the antiderivative of polynomial(c) vanishing at 0.
func antiderivative(c []float64) func(types.Time) float64 {
	lifted := make([]float64, len(c)+1)
	for i, ci := range c {
		lifted[i+1] = ci / float64(i+1)
	}
	return polynomial(lifted)
}
