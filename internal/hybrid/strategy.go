package hybrid

// Strategy selects the weight scheme applied to the three sub-model scores.
type Strategy int

const (
	StrategyColdStart Strategy = iota
	StrategyActive
	StrategyTrending
)

func (s Strategy) String() string {
	switch s {
	case StrategyColdStart:
		return "cold_start"
	case StrategyActive:
		return "active"
	case StrategyTrending:
		return "trending"
	}
	return "unknown"
}

// ParseStrategy maps an override string to a Strategy. Unrecognized values
// report false and fall back to automatic selection.
func ParseStrategy(s string) (Strategy, bool) {
	switch s {
	case "cold_start":
		return StrategyColdStart, true
	case "active":
		return StrategyActive, true
	case "trending":
		return StrategyTrending, true
	}
	return 0, false
}

// WeightScheme applies (Alpha, Beta, Gamma) to (KnowledgeScore, GraphScore,
// TrendScore). Each default triple sums to 1.
type WeightScheme struct {
	Alpha float64
	Beta  float64
	Gamma float64
}

// DefaultWeights returns a fresh copy of the default scheme table, so a
// caller-configured ranker never shares state with another.
func DefaultWeights() map[Strategy]WeightScheme {
	return map[Strategy]WeightScheme{
		StrategyColdStart: {Alpha: 0.5, Beta: 0.2, Gamma: 0.3},
		StrategyActive:    {Alpha: 0.2, Beta: 0.5, Gamma: 0.3},
		StrategyTrending:  {Alpha: 0.3, Beta: 0.3, Gamma: 0.4},
	}
}

// DefaultInteractionThreshold is the attendance-row count below which a user
// is treated as cold-start.
const DefaultInteractionThreshold = 5
