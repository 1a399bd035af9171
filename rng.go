package montepi

// Generator constants. The update is a 32-bit LCG; the output is scrambled
// with a state-dependent xorshift and a multiply before it is turned into a
// float.
const (
	lcgMultiplier   uint32 = 747796405
	lcgIncrement    uint32 = 2891336453
	scrambleMul     uint32 = 277803737
	maxUint32AsReal        = 4294967295.0
)

// NextFloat advances state and returns a float in [0, 1].
//
// The division is done in float32, so a result close to the top of the
// 32-bit range rounds to exactly 1.0. Callers mapping the value to an index
// must clamp.
func NextFloat(state *uint32) float32 {
	*state = *state*lcgMultiplier + lcgIncrement
	s := *state
	result := ((s >> ((s >> 28) + 4)) ^ s) * scrambleMul
	result = (result >> 22) ^ result
	return float32(result) / maxUint32AsReal
}

// Generator is a reproducible source of floats for sampling.
// It is not safe for concurrent use and is not statistically strong.
type Generator struct {
	state uint32
}

// NewGenerator returns a generator starting at seed.
func NewGenerator(seed uint32) *Generator {
	return &Generator{state: seed}
}

// Float32 returns the next float in [0, 1].
func (g *Generator) Float32() float32 {
	return NextFloat(&g.state)
}

// State returns the current internal state.
func (g *Generator) State() uint32 {
	return g.state
}

// Seed restarts the sequence from seed.
func (g *Generator) Seed(seed uint32) {
	g.state = seed
}
