package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func quietStatus(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := statusOut
	statusOut = &buf
	t.Cleanup(func() { statusOut = old })
	return &buf
}

func TestSpinnerDrawsFrames(t *testing.T) {
	buf := quietStatus(t)
	s := newSpinnerWithContext(context.Background(), "Converting...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Converting...") {
		t.Errorf("spinner output = %q", buf.String())
	}
}

func TestSpinnerWithContext(t *testing.T) {
	quietStatus(t)
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Testing with context...")
	s.Start()
	cancel()
	s.Stop()

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	quietStatus(t)
	s := newSpinnerWithContext(context.Background(), "Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithMessage(t *testing.T) {
	buf := quietStatus(t)
	s := newSpinnerWithContext(context.Background(), "Rendering...")
	s.Start()
	s.StopWithError("graphviz failed")

	out := buf.String()
	if !strings.Contains(out, iconError+" graphviz failed") {
		t.Errorf("status output = %q", out)
	}
}
