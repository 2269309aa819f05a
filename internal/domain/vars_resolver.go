package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// VarResolver resolves {{var}} placeholders in endpoint URLs and header values.
// It supports built-ins: {{$timestamp}} and {{$uuid}}.
type VarResolver struct {
	now    func() time.Time
	uuidV4 func() (string, error)
}

// VarResolverOption configures VarResolver.
type VarResolverOption func(*VarResolver)

// WithNow overrides the clock (useful for tests).
func WithNow(now func() time.Time) VarResolverOption {
	return func(r *VarResolver) { r.now = now }
}

// WithUUID overrides UUID generation (useful for tests).
func WithUUID(gen func() (string, error)) VarResolverOption {
	return func(r *VarResolver) { r.uuidV4 = gen }
}

func NewVarResolver(opts ...VarResolverOption) *VarResolver {
	r := &VarResolver{
		now:    time.Now,
		uuidV4: newUUID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RuntimeResolver caches built-ins for one resolution session (one probe) so
// repeated {{$uuid}} across fields stays consistent.
type RuntimeResolver struct {
	base     Vars
	builtins Vars
}

func (r *VarResolver) NewRuntime(vars Vars) (*RuntimeResolver, error) {
	u, err := r.uuidV4()
	if err != nil {
		return nil, &OpError{
			Op:   "vars.builtins.uuid",
			Kind: KindExecution,
			Err:  err,
		}
	}

	return &RuntimeResolver{
		base: Merge(nil, vars),
		builtins: Vars{
			"$timestamp": strconv.FormatInt(r.now().Unix(), 10),
			"$uuid":      u,
		},
	}, nil
}

// ResolveString resolves placeholders in a string.
func (rr *RuntimeResolver) ResolveString(s string) (string, error) {
	return resolveString(rr.base, rr.builtins, s)
}

// ResolveHeaders resolves placeholders in header values.
func (rr *RuntimeResolver) ResolveHeaders(h Headers) (Headers, error) {
	out := make(Headers, len(h))
	for k, v := range h {
		rv, err := rr.ResolveString(v)
		if err != nil {
			return nil, wrapField(err, "headers."+k)
		}
		out[k] = rv
	}
	return out, nil
}

// ResolveEndpoint resolves placeholders in URL, health path and headers.
// It returns a copy and never mutates ep.
func (rr *RuntimeResolver) ResolveEndpoint(ep Endpoint) (Endpoint, error) {
	out := ep

	u, err := rr.ResolveString(ep.URL)
	if err != nil {
		return Endpoint{}, wrapField(err, "url")
	}
	out.URL = u

	p, err := rr.ResolveString(ep.HealthPath)
	if err != nil {
		return Endpoint{}, wrapField(err, "health_path")
	}
	out.HealthPath = p

	h, err := rr.ResolveHeaders(ep.Headers)
	if err != nil {
		return Endpoint{}, err
	}
	out.Headers = h

	return out, nil
}

func resolveString(vars Vars, builtins Vars, s string) (string, error) {
	if !strings.Contains(s, "{{") {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s) + 16)

	rest := s
	for {
		start := strings.Index(rest, "{{")
		if start < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		b.WriteString(rest[:start])
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end < 0 {
			return "", &OpError{
				Op:   "vars.resolve",
				Kind: KindInvalidConfig,
				Err:  errors.New("unclosed placeholder"),
			}
		}

		name := strings.TrimSpace(rest[:end])
		if name == "" {
			return "", &OpError{
				Op:   "vars.resolve",
				Kind: KindInvalidConfig,
				Err:  errors.New("empty placeholder"),
			}
		}

		val, ok := builtins[name]
		if !ok {
			val, ok = vars[name]
		}
		if !ok {
			return "", &OpError{
				Op:   "vars.resolve",
				Kind: KindMissingVar,
				Err:  fmt.Errorf("missing variable: %s: %w", name, ErrMissingVar),
			}
		}

		b.WriteString(val)
		rest = rest[end+2:]
	}
}

func wrapField(err error, field string) error {
	return &OpError{
		Op:   "vars.resolve",
		Kind: KindOf(err),
		Err:  fmt.Errorf("%s: %w", field, err),
	}
}

func newUUID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
