package dist

import (
	"math"

	"github.com/pkg/errors"
)

// Normal is the standard normal law (mean 0, variance 1).
// It has no state; the zero value is ready to use.
type Normal struct{}

var standardNormal = Normal{}

var _ DistributionFunction = Normal{}

// StandardNormal returns the shared standard normal distribution.
func StandardNormal() Normal {
	return standardNormal
}

// invSqrt2Pi = 1/sqrt(2*pi)
const invSqrt2Pi = 1 / (math.Sqrt2 * math.SqrtPi)

// Abramowitz-Stegun 26.2.17 coefficients for the cumulative.
var cumA = [5]float64{
	0.319381530,
	-0.356563782,
	1.781477937,
	-1.821255978,
	1.330274429,
}

const (
	cumP         = 0.2316419
	tailCutoff   = 7.0
	centralBound = 0.42
)

// Beasley-Springer central region.
var (
	invA = [4]float64{
		2.50662823884,
		-18.61500062529,
		41.39119773534,
		-25.44106049637,
	}
	invB = [4]float64{
		-8.47351093090,
		23.08336743743,
		-21.06224101826,
		3.13082909833,
	}
)

// Moro tail coefficients.
var invC = [9]float64{
	0.3374754822726147,
	0.9761690190917186,
	0.1607979714918209,
	0.0276438810333863,
	0.0038405729373609,
	0.0003951896511919,
	0.0000321767881768,
	0.0000002888167364,
	0.0000003960315187,
}

// Density returns exp(-x^2/2)/sqrt(2*pi).
func (Normal) Density(x float64) float64 {
	return invSqrt2Pi * math.Exp(-x*x/2)
}

// Cumulative returns P(X <= x) using the five-coefficient rational
// approximation (absolute error below 7.5e-8). Beyond |x| > 7 the
// asymptotic tail density(x)/sqrt(1+x^2) is used.
func (n Normal) Cumulative(x float64) float64 {
	if x < -tailCutoff {
		return n.Density(x) / math.Sqrt(1+x*x)
	}
	if x > tailCutoff {
		return 1 - n.Cumulative(-x)
	}

	t := 1 / (1 + cumP*math.Abs(x))
	poly := t * (cumA[0] + t*(cumA[1]+t*(cumA[2]+t*(cumA[3]+t*cumA[4]))))
	result := 1 - n.Density(x)*poly
	if x <= 0 {
		result = 1 - result
	}
	return result
}

// InverseCumulative returns x with Cumulative(x) ~= p, using Beasley-Springer
// for |p-0.5| < 0.42 and Moro's expansion in the tails.
//
// There is no domain check. For p outside (0,1) the polynomials are
// evaluated anyway: p <= 0 or p >= 1 gives NaN or an infinity from the
// logarithms and the result carries no meaning. Use InverseCumulativeChecked
// when the input is not known to be a probability.
func (Normal) InverseCumulative(p float64) float64 {
	x := p - 0.5

	if math.Abs(x) < centralBound {
		y := x * x
		num := x * (((invA[3]*y+invA[2])*y+invA[1])*y + invA[0])
		den := (((invB[3]*y+invB[2])*y+invB[1])*y+invB[0])*y + 1
		return num / den
	}

	r := p
	if x > 0 {
		r = 1 - p
	}
	r = math.Log(-math.Log(r))

	c := invC
	r = c[0] + r*(c[1]+r*(c[2]+r*(c[3]+r*(c[4]+r*(c[5]+r*(c[6]+r*(c[7]+r*c[8])))))))
	if x < 0 {
		r = -r
	}
	return r
}

// InverseCumulativeChecked is InverseCumulative with p restricted to (0,1).
func (n Normal) InverseCumulativeChecked(p float64) (float64, error) {
	if math.IsNaN(p) || p <= 0 || p >= 1 {
		return math.NaN(), errors.Wrapf(ErrProbabilityOutOfRange, "p=%v", p)
	}
	return n.InverseCumulative(p), nil
}
