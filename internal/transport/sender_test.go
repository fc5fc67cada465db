package transport

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
)

// memPort is an in-memory Port.
type memPort struct {
	bytes.Buffer
	closed bool
	failAt int
	writes int
}

func (p *memPort) Write(b []byte) (int, error) {
	p.writes++
	if p.failAt > 0 && p.writes == p.failAt {
		return 0, errors.New("line dropped")
	}
	return p.Buffer.Write(b)
}

func (p *memPort) Close() error {
	p.closed = true
	return nil
}

var _ Port = (*memPort)(nil)

func TestSendWritesOneGroupPerLine(t *testing.T) {
	port := &memPort{}
	s := NewSender(port, 0)

	var seen []string
	s.OnGroup = func(i int, g string) { seen = append(seen, g) }

	n, err := s.Send(context.Background(), []string{"cro", "hfofofocro"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("sent %d groups", n)
	}
	if got := port.String(); got != "cro\nhfofofocro\n" {
		t.Errorf("wire = %q", got)
	}
	if len(seen) != 2 || seen[1] != "hfofofocro" {
		t.Errorf("OnGroup saw %v", seen)
	}
}

func TestSendStopsOnCancel(t *testing.T) {
	port := &memPort{}
	s := NewSender(port, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	s.OnGroup = func(i int, g string) { cancel() }

	n, err := s.Send(ctx, []string{"cro", "clo", "lcro"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if n != 1 {
		t.Errorf("sent %d groups, want 1", n)
	}
	if port.String() != "cro\n" {
		t.Errorf("wire = %q", port.String())
	}
}

func TestSendReportsWriteError(t *testing.T) {
	port := &memPort{failAt: 2}
	n, err := NewSender(port, 0).Send(context.Background(), []string{"cro", "clo"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if n != 1 {
		t.Errorf("sent %d groups, want 1", n)
	}
}

func TestSendEmpty(t *testing.T) {
	n, err := NewSender(&memPort{}, time.Second).Send(context.Background(), nil)
	if err != nil || n != 0 {
		t.Errorf("Send(nil) = %d, %v", n, err)
	}
}

func TestOpenRequiresDevice(t *testing.T) {
	if _, err := Open(nil); err == nil {
		t.Error("Open(nil) succeeded")
	}
	if _, err := Open(DefaultConfig("")); err == nil {
		t.Error("Open with no device succeeded")
	}
}
