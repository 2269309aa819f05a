package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"syscall"
	"testing"
)

func TestClassifyProbeError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ProbeErrorKind
	}{
		{"nil", nil, ProbeErrorUnknown},
		{"deadline", context.DeadlineExceeded, ProbeErrorTimeout},
		{"wrapped deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), ProbeErrorTimeout},
		{"canceled", context.Canceled, ProbeErrorCanceled},
		{"dns", &net.DNSError{Err: "no such host", Name: "mcp.invalid"}, ProbeErrorDNS},
		{"dns timeout", &net.DNSError{Err: "timeout", Name: "mcp.invalid", IsTimeout: true}, ProbeErrorTimeout},
		{
			"refused",
			&net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)},
			ProbeErrorRefused,
		},
		{"reset", &net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET}, ProbeErrorConn},
		{"eof", io.EOF, ProbeErrorConn},
		{"unknown", errors.New("boom"), ProbeErrorUnknown},
	}

	for _, c := range cases {
		if got := ClassifyProbeError(c.err); got != c.want {
			t.Errorf("%s: expected %s, got %s", c.name, c.want, got)
		}
	}
}

func TestClassifyProbeError_URLWraps(t *testing.T) {
	inner := &net.DNSError{Err: "no such host", Name: "x.invalid"}
	err := &url.Error{Op: "Get", URL: "http://x.invalid/health", Err: inner}

	if got := ClassifyProbeError(err); got != ProbeErrorDNS {
		t.Fatalf("expected dns, got=%s", got)
	}
}

func TestNewProbeError(t *testing.T) {
	if NewProbeError(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}

	pe := NewProbeError(context.DeadlineExceeded)
	if pe.Kind != ProbeErrorTimeout || pe.Message == "" {
		t.Fatalf("unexpected probe error: %+v", pe)
	}
}

func TestHTTPStatusError(t *testing.T) {
	pe := HTTPStatusError(503)
	if pe.Kind != ProbeErrorHTTP {
		t.Fatalf("expected http kind, got %s", pe.Kind)
	}
	if pe.Message != "HTTP 503 Service Unavailable" {
		t.Fatalf("unexpected message %q", pe.Message)
	}
}

func TestProbeResultFailed(t *testing.T) {
	if (ProbeResult{}).Failed() {
		t.Errorf("empty result should not be failed")
	}
	if !(ProbeResult{Error: &ProbeError{Kind: ProbeErrorConn}}).Failed() {
		t.Errorf("result with error should be failed")
	}
	if !(ProbeResult{Assertions: []AssertionResult{{Passed: true}, {Passed: false}}}).Failed() {
		t.Errorf("result with a failed assertion should be failed")
	}
	if (ProbeResult{Assertions: []AssertionResult{{Passed: true}}}).Failed() {
		t.Errorf("all-pass result should not be failed")
	}
}
