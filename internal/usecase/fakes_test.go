package usecase

import (
	"context"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
)

type fakeSource struct {
	cat domain.Catalog
	err error
}

func (f fakeSource) LoadCatalog(path string) (domain.Catalog, error) {
	if f.err != nil {
		return domain.Catalog{}, f.err
	}
	cat := f.cat
	cat.Source = path
	return cat, nil
}

type fakeVars struct {
	vars domain.Vars
	err  error
}

func (f fakeVars) LoadVars() (domain.Vars, error) { return f.vars, f.err }

type stubProber struct {
	result domain.ProbeResult
	err    error

	calls int
	gotEP domain.Endpoint
	gotV  domain.Vars
}

func (s *stubProber) Probe(_ context.Context, ep domain.Endpoint, vars domain.Vars) (domain.ProbeResult, error) {
	s.calls++
	s.gotEP = ep
	s.gotV = vars
	res := s.result
	res.EndpointName = ep.Name
	return res, s.err
}

type fakeStore struct {
	saved []domain.ProbeArtifact
	err   error
}

func (s *fakeStore) SaveProbe(a domain.ProbeArtifact) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved = append(s.saved, a)
	return "probe-1", nil
}

func threeEndpoints() domain.Catalog {
	return domain.Catalog{Endpoints: []domain.Endpoint{
		{Name: "mcp1", URL: "http://one", LastUpdated: "2024-01-01T10:00:00Z"},
		{Name: "mcp2", URL: "http://two", LastUpdated: "2024-01-02T10:00:00Z"},
		{Name: "mcp3", URL: "http://three", LastUpdated: "2024-01-01T15:00:00Z"},
	}}
}
