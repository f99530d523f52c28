package combat_test

// constSource returns v from every Float64 call and int(v*n) from Intn.
type constSource struct{ v float64 }

func (c constSource) Intn(n int) int   { return int(c.v * float64(n)) }
func (c constSource) Float64() float64 { return c.v }

// seqSource replays vals in order, cycling when exhausted.
type seqSource struct {
	vals []float64
	n    int
}

func (s *seqSource) Float64() float64 {
	v := s.vals[s.n%len(s.vals)]
	s.n++
	return v
}

func (s *seqSource) Intn(n int) int { return int(s.Float64() * float64(n)) }
