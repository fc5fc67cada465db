package cuberobot

import "io"

// Option configures Compile.
type Option func(*config)

type config struct {
	start State
	trace io.Writer
}

func defaultConfig() *config {
	return &config{
		start: Initial,
	}
}

// WithStartState compiles from s instead of Initial. Use it to continue a
// program from where an earlier one left the robot.
func WithStartState(s State) Option {
	return func(c *config) {
		c.start = s
	}
}

// WithTrace writes a JSONL trace of every primitive to w.
func WithTrace(w io.Writer) Option {
	return func(c *config) {
		c.trace = w
	}
}
