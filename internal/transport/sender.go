package transport

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Sender writes command groups to a port, one group per line.
type Sender struct {
	w     io.Writer
	delay time.Duration

	// OnGroup, when set, is called after each group is written.
	OnGroup func(index int, group string)
}

// NewSender creates a sender that pauses for delay between groups.
func NewSender(w io.Writer, delay time.Duration) *Sender {
	return &Sender{w: w, delay: delay}
}

// Send writes every group in order. It stops between groups when ctx is
// done and reports how many groups were written.
func (s *Sender) Send(ctx context.Context, groups []string) (int, error) {
	for i, g := range groups {
		if err := ctx.Err(); err != nil {
			return i, err
		}

		if _, err := s.w.Write([]byte(g + "\n")); err != nil {
			return i, fmt.Errorf("failed to send group %d (%s): %w", i, g, err)
		}
		if s.OnGroup != nil {
			s.OnGroup(i, g)
		}

		if s.delay > 0 && i < len(groups)-1 {
			t := time.NewTimer(s.delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return i + 1, ctx.Err()
			case <-t.C:
			}
		}
	}
	return len(groups), nil
}
