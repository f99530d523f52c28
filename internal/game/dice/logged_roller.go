package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger so that every draw leaves an audit trail.
// All draws are logged at debug level.
//
// Roller itself satisfies Source and can be handed to the combat engine in
// place of the wrapped source.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that draws from src and logs each draw to logger.
//
// Precondition: src must be non-nil. A nil logger is replaced by a no-op logger.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if src == nil {
		panic("dice: NewLoggedRoller precondition violated: src must be non-nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Intn draws from the wrapped source and logs the result.
//
// Precondition: n > 0.
// Postcondition: result in [0, n); draw logged.
func (r *Roller) Intn(n int) int {
	v := r.src.Intn(n)
	r.logger.Debug("dice draw",
		zap.String("kind", "intn"),
		zap.Int("n", n),
		zap.Int("value", v),
	)
	return v
}

// Float64 draws from the wrapped source and logs the result.
//
// Postcondition: result in [0, 1); draw logged.
func (r *Roller) Float64() float64 {
	v := r.src.Float64()
	r.logger.Debug("dice draw",
		zap.String("kind", "float64"),
		zap.Float64("value", v),
	)
	return v
}
