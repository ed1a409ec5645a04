package affinity_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/crw/affinity"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleStochMat
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	Two nodes at time t, two at time t+1, embeddings already unit-normalized.
//	The affinity matrix holds their pairwise dot products; StochMat turns it
//	into a per-node probability distribution over destinations.
//
// Options:
//   - Temperature = 0.5 (softer than the 0.07 default, for readable output)
//
// Use case:
//
//	One step of a random walk through time.
//
// ExampleStochMat demonstrates affinity → transition-matrix conversion.
func ExampleStochMat() {
	a := mat.NewDense(2, 2, []float64{1.0, -1.0, -1.0, 1.0})
	opts := affinity.DefaultOptions()
	opts.Temperature = 0.5

	p, err := affinity.StochMat(a, false, false, false, &opts)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("P(0→0)=%.4f P(0→1)=%.4f\n", p.At(0, 0), p.At(0, 1))
	fmt.Printf("P(1→0)=%.4f P(1→1)=%.4f\n", p.At(1, 0), p.At(1, 1))
	// Output:
	// P(0→0)=0.9820 P(0→1)=0.0180
	// P(1→0)=0.0180 P(1→1)=0.9820
}

// //////////////////////////////////////////////////////////////////////////////
// ExampleSinkhornKnopp
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	Normalize a positive matrix until rows and columns both sum to 1,
//	yielding an approximately doubly-stochastic transition.
//
// ExampleSinkhornKnopp demonstrates alternating row/column rescaling.
func ExampleSinkhornKnopp() {
	k := mat.NewDense(2, 2, []float64{4, 1, 1, 4})

	p, err := affinity.SinkhornKnopp(k, 0.001, 100)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	row := p.At(0, 0) + p.At(0, 1)
	col := p.At(0, 0) + p.At(1, 0)
	fmt.Printf("row sum %.3f, column sum %.3f\n", row, col)
	// Output:
	// row sum 1.000, column sum 1.000
}
