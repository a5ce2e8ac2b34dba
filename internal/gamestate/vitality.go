package gamestate

// VitalityModel names one of the two mutually exclusive health mechanics.
type VitalityModel string

const (
	VitalityHearts VitalityModel = "hearts"
	VitalityStress VitalityModel = "stress"
)

// Vitality is the player's capacity to absorb distraction hits.
// A product picks exactly one implementation.
type Vitality interface {
	// ApplyPenalty records a hit of the given size.
	ApplyPenalty(amount int)
	// IsDepleted reports whether the run must end.
	IsDepleted() bool
	// Reset restores the starting value.
	Reset()
	Model() VitalityModel
	// Level is hearts left, or stress accumulated.
	Level() int
	// Capacity is max hearts, or the stress limit.
	Capacity() int
}

// Hearts counts down from a fixed maximum.
type Hearts struct {
	hearts    int
	maxHearts int
}

// NewHearts creates a full set of hearts.
func NewHearts(maxHearts int) *Hearts {
	if maxHearts < 1 {
		maxHearts = 1
	}
	return &Hearts{hearts: maxHearts, maxHearts: maxHearts}
}

func (h *Hearts) ApplyPenalty(amount int) {
	if amount <= 0 {
		return
	}
	h.hearts = max(h.hearts-amount, 0)
}

func (h *Hearts) IsDepleted() bool { return h.hearts == 0 }
func (h *Hearts) Reset() { h.hearts = h.maxHearts }
func (h *Hearts) Model() VitalityModel { return VitalityHearts }
func (h *Hearts) Level() int { return h.hearts }
func (h *Hearts) Capacity() int { return h.maxHearts }

// StressMeter accumulates stress in [0, limit]. Negative amounts relieve stress.
type StressMeter struct {
	stress int
	limit  int
}

// NewStressMeter creates an empty meter.
func NewStressMeter(limit int) *StressMeter {
	if limit < 1 {
		limit = 100
	}
	return &StressMeter{limit: limit}
}

func (s *StressMeter) ApplyPenalty(amount int) {
	s.stress = min(max(s.stress+amount, 0), s.limit)
}

func (s *StressMeter) IsDepleted() bool { return s.stress >= s.limit }
func (s *StressMeter) Reset() { s.stress = 0 }
func (s *StressMeter) Model() VitalityModel { return VitalityStress }
func (s *StressMeter) Level() int { return s.stress }
func (s *StressMeter) Capacity() int { return s.limit }

func newVitality(r Rules) Vitality {
	if r.Vitality == VitalityStress {
		return NewStressMeter(r.StressLimit)
	}
	return NewHearts(r.MaxHearts)
}
