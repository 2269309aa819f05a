package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
)

func TestValidateConfig_OK(t *testing.T) {
	cat := domain.Catalog{Endpoints: []domain.Endpoint{
		{Name: "a", URL: "{{BASE}}", Headers: domain.Headers{"X-Req": "{{$uuid}}"}, LastUpdated: "2024-01-01T00:00:00Z"},
		{Name: "b", URL: "https://b.example"},
	}}
	uc := NewValidateConfig(fakeSource{cat: cat}, WithValidateVars(fakeVars{vars: domain.Vars{"BASE": "http://localhost:3000"}}))

	rep, err := uc.Execute(context.Background(), "cfg.json")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !rep.OK() {
		t.Fatalf("expected no problems, got %+v", rep.Problems)
	}
	if len(rep.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", rep.Warnings)
	}
	if rep.Latest == nil || rep.Latest.Name != "a" {
		t.Fatalf("expected a as latest, got %+v", rep.Latest)
	}
}

func TestValidateConfig_MissingVarAndBadURL(t *testing.T) {
	cat := domain.Catalog{Endpoints: []domain.Endpoint{
		{Name: "missing", URL: "{{NOPE}}/x"},
		{Name: "relative", URL: "{{HOST}}"},
		{Name: "fine", URL: "http://ok"},
	}}
	uc := NewValidateConfig(fakeSource{cat: cat}, WithValidateVars(fakeVars{vars: domain.Vars{"HOST": "localhost:3000"}}))

	rep, err := uc.Execute(context.Background(), "cfg.json")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(rep.Problems) != 2 {
		t.Fatalf("expected 2 problems, got %+v", rep.Problems)
	}
	if rep.Problems[0].Endpoint != "missing" || !errors.Is(rep.Problems[0].Err, domain.ErrMissingVar) {
		t.Fatalf("expected missing var problem, got %+v", rep.Problems[0])
	}
	if rep.Problems[1].Endpoint != "relative" || !errors.Is(rep.Problems[1].Err, domain.ErrInvalidEndpoint) {
		t.Fatalf("expected invalid endpoint problem, got %+v", rep.Problems[1])
	}
}

func TestValidateConfig_WarnsOnUnparseableMarker(t *testing.T) {
	cat := domain.Catalog{Endpoints: []domain.Endpoint{
		{Name: "mcp1", URL: "http://one", LastUpdated: "yesterday"},
		{Name: "mcp2", URL: "http://two"},
	}}
	uc := NewValidateConfig(fakeSource{cat: cat})

	rep, err := uc.Execute(context.Background(), "cfg.json")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !rep.OK() {
		t.Fatalf("markers must not fail validation: %+v", rep.Problems)
	}
	if len(rep.Warnings) != 1 || !strings.Contains(rep.Warnings[0], `"yesterday"`) {
		t.Fatalf("expected marker warning, got %v", rep.Warnings)
	}
}

func TestValidateConfig_VarsErrorPropagates(t *testing.T) {
	varsErr := &domain.OpError{Op: "envvars.load", Kind: domain.KindInvalidConfig, Err: domain.ErrInvalidConfig}
	uc := NewValidateConfig(fakeSource{cat: threeEndpoints()}, WithValidateVars(fakeVars{err: varsErr}))

	if _, err := uc.Execute(context.Background(), "cfg.json"); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}
