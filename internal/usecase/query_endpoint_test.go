package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
	"github.com/TeddyJubu/unified-mcp/internal/infra/httpclient"
	"github.com/TeddyJubu/unified-mcp/internal/infra/httpprober"
)

func intPtr(i int) *int { return &i }

func TestQueryEndpoint_NoEndpointIsNotAnError(t *testing.T) {
	p := &stubProber{}
	uc := NewQueryEndpoint(fakeSource{}, p)

	out, err := uc.Execute(context.Background(), QueryInput{ConfigPath: "cfg.json"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Selected() {
		t.Fatalf("expected no selection")
	}
	if p.calls != 0 {
		t.Fatalf("expected no probe")
	}
}

func TestQueryEndpoint_ConfigErrorPropagates(t *testing.T) {
	loadErr := &domain.OpError{Op: "mcpconfig.load", Kind: domain.KindNotFound, Err: domain.ErrNotFound}
	uc := NewQueryEndpoint(fakeSource{err: loadErr}, &stubProber{})

	_, err := uc.Execute(context.Background(), QueryInput{ConfigPath: "missing.json"})
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestQueryEndpoint_ProbesMostRecentAndSaves(t *testing.T) {
	p := &stubProber{result: domain.ProbeResult{StatusCode: 200, LatencyMS: 5, Response: domain.ResponseSnapshot{Body: []byte(`{}`)}}}
	store := &fakeStore{}
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	uc := NewQueryEndpoint(fakeSource{cat: threeEndpoints()}, p,
		WithStore(store),
		WithVars(fakeVars{vars: domain.Vars{"TOKEN": "t"}}),
		WithClock(func() time.Time { return fixed }),
	)

	out, err := uc.Execute(context.Background(), QueryInput{ConfigPath: "cfg.json", HealthPath: "/status"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if out.Endpoint.Name != "mcp2" {
		t.Fatalf("expected mcp2, got %s", out.Endpoint.Name)
	}
	if p.gotEP.HealthPath != "/status" {
		t.Fatalf("expected health path override, got %q", p.gotEP.HealthPath)
	}
	if p.gotV["TOKEN"] != "t" {
		t.Fatalf("expected vars passed to prober")
	}
	if out.Result.Failed() {
		t.Fatalf("expected healthy result, got %+v", out.Result)
	}
	if len(out.Result.Assertions) != 1 || out.Result.Assertions[0].Name != "status" {
		t.Fatalf("expected default status check, got %+v", out.Result.Assertions)
	}

	if out.ArtifactID != "probe-1" || len(store.saved) != 1 {
		t.Fatalf("expected artifact saved, got id=%q saved=%d", out.ArtifactID, len(store.saved))
	}
	a := store.saved[0]
	if a.ConfigPath != "cfg.json" || !a.StartedAt.Equal(fixed) {
		t.Fatalf("unexpected artifact: %+v", a)
	}
}

func TestQueryEndpoint_TransportErrorSkipsAssertions(t *testing.T) {
	p := &stubProber{result: domain.ProbeResult{Error: &domain.ProbeError{Kind: domain.ProbeErrorRefused, Message: "refused"}}}
	uc := NewQueryEndpoint(fakeSource{cat: threeEndpoints()}, p)

	out, err := uc.Execute(context.Background(), QueryInput{Name: "mcp1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Result.Assertions) != 0 {
		t.Fatalf("expected no assertions, got %+v", out.Result.Assertions)
	}
	if !out.Result.Failed() {
		t.Fatalf("expected failed result")
	}
}

func TestQueryEndpoint_ExplicitStatusOverridesHTTPError(t *testing.T) {
	cat := domain.Catalog{Endpoints: []domain.Endpoint{
		{Name: "maint", URL: "http://m", Expect: domain.ExpectSpec{Status: intPtr(503)}},
	}}
	p := &stubProber{result: domain.ProbeResult{StatusCode: 503, Error: domain.HTTPStatusError(503)}}
	uc := NewQueryEndpoint(fakeSource{cat: cat}, p)

	out, err := uc.Execute(context.Background(), QueryInput{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if out.Result.Failed() {
		t.Fatalf("expected 503 to satisfy explicit expectation, got %+v", out.Result)
	}
}

func TestQueryEndpoint_SaveErrorIsReportedNotReturned(t *testing.T) {
	p := &stubProber{result: domain.ProbeResult{StatusCode: 200}}
	saveErr := errors.New("disk full")
	uc := NewQueryEndpoint(fakeSource{cat: threeEndpoints()}, p, WithStore(&fakeStore{err: saveErr}))

	out, err := uc.Execute(context.Background(), QueryInput{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !errors.Is(out.SaveErr, saveErr) {
		t.Fatalf("expected SaveErr, got %v", out.SaveErr)
	}
}

func TestQueryEndpoint_UnknownName(t *testing.T) {
	uc := NewQueryEndpoint(fakeSource{cat: threeEndpoints()}, &stubProber{})

	_, err := uc.Execute(context.Background(), QueryInput{Name: "ghost"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestQueryEndpoint_CanceledContext(t *testing.T) {
	p := &stubProber{}
	uc := NewQueryEndpoint(fakeSource{cat: threeEndpoints()}, p)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.Execute(ctx, QueryInput{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if p.calls != 0 {
		t.Fatalf("expected no probe after cancel")
	}
}

func TestQueryEndpoint_Integration_JSONPathExpectation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	ok := "ok"
	cat := domain.Catalog{Endpoints: []domain.Endpoint{{
		Name:        "local",
		URL:         srv.URL,
		Headers:     domain.Headers{"Authorization": "Bearer {{MCP_TOKEN}}"},
		LastUpdated: "2024-01-02T10:00:00Z",
		Expect: domain.ExpectSpec{
			JSONPath: map[string]domain.JSONPathAssertion{"$.status": {Eq: &ok}},
		},
	}}}

	prober := httpprober.New(httpclient.NewExecutor(httpclient.WithClient(httpclient.New(httpclient.DefaultConfig()))))
	uc := NewQueryEndpoint(fakeSource{cat: cat}, prober, WithVars(fakeVars{vars: domain.Vars{"MCP_TOKEN": "secret"}}))

	out, err := uc.Execute(context.Background(), QueryInput{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if out.Result.Failed() {
		t.Fatalf("expected healthy probe, got %+v", out.Result)
	}
	if len(out.Result.Assertions) != 2 {
		t.Fatalf("expected status + jsonpath checks, got %+v", out.Result.Assertions)
	}
}
