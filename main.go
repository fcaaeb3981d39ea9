package main

import (
	"fmt"
	"math"

	"github.com/meenmo/qfmath/dist"
	"github.com/meenmo/qfmath/parameter"
	"github.com/meenmo/qfmath/types"
)

func main() {
	n := dist.StandardNormal()
	fmt.Printf("N(1.96)     = %.8f\n", n.Cumulative(1.96))
	fmt.Printf("N^-1(0.975) = %.8f\n", n.InverseCumulative(0.975))

	// sigma(t) = 0.2 + 0.05 sin(t); integrate sigma^2 for a term variance
	variance, err := parameter.NewNumeric(func(t types.Time) float64 {
		s := 0.2 + 0.05*math.Sin(t)
		return s * s
	})
	if err != nil {
		panic(err)
	}
	vol := parameter.New[float64](0.2, variance)

	meanVar, err := vol.Mean(0, 2)
	if err != nil {
		panic(err)
	}
	fmt.Printf("integral sigma^2 [0,2] = %.8f\n", vol.Integrate(0, 2))
	fmt.Printf("term vol [0,2]         = %.8f\n", math.Sqrt(meanVar))
}
