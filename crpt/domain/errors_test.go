package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{name: "nil", err: nil, want: KindNone},
		{name: "encoding", err: &EncodingError{Err: io.ErrUnexpectedEOF}, want: KindEncoding},
		{name: "transport", err: &TransportError{Err: io.EOF}, want: KindTransport},
		{name: "transport wrapping ctx", err: &TransportError{Err: context.Canceled}, want: KindTransport},
		{name: "http status", err: &HTTPStatusError{StatusCode: 500}, want: KindHTTPStatus},
		{name: "admission", err: fmt.Errorf("%w: %w", ErrAdmission, context.Canceled), want: KindAdmission},
		{name: "bare deadline", err: context.DeadlineExceeded, want: KindAdmission},
		{name: "unknown", err: errors.New("boom"), want: KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTransportError_UnwrapsCause(t *testing.T) {
	err := &TransportError{Err: io.ErrClosedPipe}
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("expected cause to be reachable through errors.Is")
	}
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport sentinel")
	}
}

func TestResult_OK(t *testing.T) {
	if !(Result{StatusCode: StatusOK}).OK() {
		t.Fatalf("expected 200 without error to be OK")
	}
	if (Result{StatusCode: 500, Err: &HTTPStatusError{StatusCode: 500}}).OK() {
		t.Fatalf("expected 500 to fail")
	}
	if (Result{}).OK() {
		t.Fatalf("expected zero result to fail")
	}
}
