package metrics

// Series keeps the most recent values of a per-tick measurement.
type Series struct {
	values []float64
	limit  int
}

// NewSeries keeps up to limit values; limit <= 0 keeps everything.
func NewSeries(limit int) *Series {
	return &Series{limit: limit}
}

func (s *Series) Add(v float64) {
	s.values = append(s.values, v)
	if s.limit > 0 && len(s.values) > s.limit {
		s.values = s.values[len(s.values)-s.limit:]
	}
}

func (s *Series) Values() []float64 { return s.values }

func (s *Series) Len() int { return len(s.values) }

func (s *Series) Last() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return s.values[len(s.values)-1]
}

func (s *Series) Reset() { s.values = s.values[:0] }
