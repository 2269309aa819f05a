package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"
)

// ProbeErrorKind is a high-level classification of probe failures.
type ProbeErrorKind string

const (
	ProbeErrorUnknown  ProbeErrorKind = "unknown"
	ProbeErrorTimeout  ProbeErrorKind = "timeout"
	ProbeErrorCanceled ProbeErrorKind = "canceled"
	ProbeErrorDNS      ProbeErrorKind = "dns"
	ProbeErrorRefused  ProbeErrorKind = "connection_refused"
	ProbeErrorConn     ProbeErrorKind = "connection"
	ProbeErrorHTTP     ProbeErrorKind = "http"
)

// ProbeError is a structured failure produced by a prober. It is part of the
// result, not a Go error: an unreachable endpoint is a valid probe outcome.
type ProbeError struct {
	Kind    ProbeErrorKind `json:"kind"`
	Message string         `json:"message"`
}

// NewProbeError classifies err into a ProbeError.
func NewProbeError(err error) *ProbeError {
	if err == nil {
		return nil
	}
	return &ProbeError{
		Kind:    ClassifyProbeError(err),
		Message: err.Error(),
	}
}

// HTTPStatusError reports a response whose status signals failure.
func HTTPStatusError(code int) *ProbeError {
	return &ProbeError{
		Kind:    ProbeErrorHTTP,
		Message: fmt.Sprintf("HTTP %d %s", code, http.StatusText(code)),
	}
}

// ClassifyProbeError maps transport errors onto ProbeErrorKind.
func ClassifyProbeError(err error) ProbeErrorKind {
	if err == nil {
		return ProbeErrorUnknown
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ProbeErrorTimeout
	}
	if errors.Is(err, context.Canceled) {
		return ProbeErrorCanceled
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return ProbeErrorTimeout
		}
		return ProbeErrorDNS
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return ProbeErrorRefused
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ProbeErrorTimeout
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.EOF) {
		return ProbeErrorConn
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ProbeErrorConn
	}

	return ProbeErrorUnknown
}

// AssertionResult is the output of a single expectation check.
type AssertionResult struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// ResponseSnapshot stores a bounded view of the response.
type ResponseSnapshot struct {
	Headers   map[string][]string `json:"headers"`
	Body      []byte              `json:"-"`
	Truncated bool                `json:"truncated"`
}

// ProbeResult is the outcome of one health probe against an endpoint.
type ProbeResult struct {
	EndpointName string     `json:"endpoint"`
	Method       HTTPMethod `json:"method"`
	URL          string     `json:"url"`

	StatusCode int    `json:"status"`
	StatusText string `json:"status_text"`
	LatencyMS  int64  `json:"latency_ms"`

	Assertions []AssertionResult `json:"assertions"`
	Response   ResponseSnapshot  `json:"response"`
	Error      *ProbeError       `json:"error,omitempty"`
}

// Failed reports whether the probe errored or any expectation failed.
func (r ProbeResult) Failed() bool {
	if r.Error != nil {
		return true
	}
	for _, a := range r.Assertions {
		if !a.Passed {
			return true
		}
	}
	return false
}

// ProbeArtifact is a persisted probe, kept for later inspection.
type ProbeArtifact struct {
	ID         string `json:"id"`
	ConfigPath string `json:"config_path"`

	Endpoint Endpoint    `json:"endpoint"`
	Result   ProbeResult `json:"result"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
