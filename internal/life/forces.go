package life

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// ForcesTable holds the affinity of every color toward every other color.
// table[a][b] is what particles of color a feel from color b; it is not
// symmetric. The zero value has every affinity at 0.
type ForcesTable [NumColors][NumColors]float32

// Get never fails; entries that were never set read as 0.
func (t ForcesTable) Get(from, to Color) float32 {
	return t[from][to]
}

// Set updates the table in place and returns it for chaining.
func (t *ForcesTable) Set(from, to Color, value float32) *ForcesTable {
	t[from][to] = value
	return t
}

// With returns a copy of the table with one entry replaced.
func (t ForcesTable) With(from, to Color, value float32) ForcesTable {
	t[from][to] = value
	return t
}

// RandomForces fills every cell with a uniform value in [min, |max|].
func RandomForces(rng *rand.Rand, min, max float32) ForcesTable {
	if max < 0 {
		max = -max
	}
	var t ForcesTable
	for from := range t {
		for to := range t[from] {
			t[from][to] = min + rng.Float32()*(max-min)
		}
	}
	return t
}

// Flatten lays the table out row-major: index from*NumColors+to.
func (t ForcesTable) Flatten() []float32 {
	out := make([]float32, 0, NumColors*NumColors)
	for from := range t {
		out = append(out, t[from][:]...)
	}
	return out
}

func (t ForcesTable) String() string {
	var b strings.Builder
	b.WriteString("from\\to")
	for _, c := range Colors() {
		fmt.Fprintf(&b, "%8s", c)
	}
	for _, from := range Colors() {
		fmt.Fprintf(&b, "\n%-7s", from)
		for _, to := range Colors() {
			fmt.Fprintf(&b, "%8.3f", t[from][to])
		}
	}
	return b.String()
}
