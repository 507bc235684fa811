package metrics

import (
	"math"

	"github.com/san-kum/pendlab/internal/dynamo"
)

// Excursion records the largest absolute angle reached by either link.
// Angles are unbounded, so values past π indicate full rotations.
type Excursion struct {
	name string
	max  dynamo.Real
}

func NewExcursion() *Excursion {
	return &Excursion{name: "max_angle"}
}

func (m *Excursion) Name() string { return m.name }

func (m *Excursion) Observe(x dynamo.State, t dynamo.Real) {
	for i := 0; i < 2 && i < len(x); i++ {
		if a := math.Abs(x[i]); a > m.max {
			m.max = a
		}
	}
}

func (m *Excursion) Value() dynamo.Real { return m.max }

func (m *Excursion) Reset() { m.max = 0 }
