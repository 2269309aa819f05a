package usecase

import (
	"context"
	"time"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
	"github.com/TeddyJubu/unified-mcp/internal/ports"
	ucassert "github.com/TeddyJubu/unified-mcp/internal/usecase/assert"
)

type QueryEndpoint struct {
	source ports.EndpointSource
	vars   ports.VarsSource
	prober ports.Prober
	store  ports.ProbeStore
	now    func() time.Time
}

type QueryOption func(*QueryEndpoint)

// WithStore enables persistence of probe artifacts.
func WithStore(s ports.ProbeStore) QueryOption {
	return func(uc *QueryEndpoint) { uc.store = s }
}

// WithVars sets where {{var}} values come from. Without it templates only
// see builtins.
func WithVars(v ports.VarsSource) QueryOption {
	return func(uc *QueryEndpoint) { uc.vars = v }
}

func WithClock(now func() time.Time) QueryOption {
	return func(uc *QueryEndpoint) { uc.now = now }
}

func NewQueryEndpoint(source ports.EndpointSource, prober ports.Prober, opts ...QueryOption) *QueryEndpoint {
	uc := &QueryEndpoint{
		source: source,
		prober: prober,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type QueryInput struct {
	ConfigPath string
	// Name selects an endpoint explicitly; empty means most recent.
	Name string
	// HealthPath overrides the endpoint's probe path when set.
	HealthPath string
}

type QueryOutcome struct {
	// Endpoint is nil when the config holds no endpoint to query.
	Endpoint   *domain.Endpoint
	Result     domain.ProbeResult
	ArtifactID string
	// SaveErr is set when the probe succeeded but could not be persisted.
	SaveErr error
}

// Selected reports whether an endpoint was chosen.
func (o QueryOutcome) Selected() bool { return o.Endpoint != nil }

func (uc *QueryEndpoint) Execute(ctx context.Context, in QueryInput) (QueryOutcome, error) {
	cat, err := uc.source.LoadCatalog(in.ConfigPath)
	if err != nil {
		return QueryOutcome{}, err
	}

	picked, err := SelectEndpoint(cat, in.Name)
	if err != nil {
		return QueryOutcome{}, err
	}
	if picked == nil {
		return QueryOutcome{}, nil
	}

	ep := *picked
	if in.HealthPath != "" {
		ep.HealthPath = in.HealthPath
	}

	vars := domain.Vars{}
	if uc.vars != nil {
		if vars, err = uc.vars.LoadVars(); err != nil {
			return QueryOutcome{}, err
		}
	}

	if err := ctx.Err(); err != nil {
		return QueryOutcome{}, err
	}

	started := uc.now()
	res, err := uc.prober.Probe(ctx, ep, vars)
	if err != nil {
		return QueryOutcome{Endpoint: &ep}, err
	}
	finished := uc.now()

	// Expectations need a response; a transport failure already says enough.
	if res.StatusCode != 0 {
		res.Assertions = ucassert.Evaluate(ep.Expect, res.StatusCode, res.LatencyMS, res.Response.Body)
		// An explicitly expected status takes over from the default >= 400 rule.
		if ep.Expect.Status != nil && res.Error != nil && res.Error.Kind == domain.ProbeErrorHTTP {
			res.Error = nil
		}
	}

	out := QueryOutcome{Endpoint: &ep, Result: res}

	if uc.store != nil {
		id, saveErr := uc.store.SaveProbe(domain.ProbeArtifact{
			ConfigPath: cat.Source,
			Endpoint:   ep,
			Result:     res,
			StartedAt:  started,
			FinishedAt: finished,
		})
		out.ArtifactID = id
		out.SaveErr = saveErr
	}

	return out, nil
}
