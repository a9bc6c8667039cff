package infra

import (
	"context"
	"testing"
	"time"
)

func TestNewChanPool_NonPositiveMeansUnlimited(t *testing.T) {
	if p := NewChanPool(0); p != nil {
		t.Fatalf("expected nil pool for max=0")
	}
}

func TestChanPool_BlocksUntilRelease(t *testing.T) {
	p := NewChanPool(1)

	release, ok := p.Acquire(context.Background())
	if !ok {
		t.Fatalf("expected first acquire to succeed")
	}
	if got := p.(*chanPool).InUse(); got != 1 {
		t.Fatalf("expected 1 slot in use, got %d", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, ok := p.Acquire(ctx); ok {
		t.Fatalf("expected second acquire to time out")
	}

	release()
	release2, ok := p.Acquire(context.Background())
	if !ok {
		t.Fatalf("expected acquire after release to succeed")
	}
	release2()
}
