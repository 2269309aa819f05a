package assert

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
)

// HealthyBelow is the exclusive upper bound for a healthy status when no
// explicit status is expected.
const HealthyBelow = 400

func pass(name, format string, args ...any) domain.AssertionResult {
	return domain.AssertionResult{Name: name, Passed: true, Message: fmt.Sprintf(format, args...)}
}

func fail(name, format string, args ...any) domain.AssertionResult {
	return domain.AssertionResult{Name: name, Passed: false, Message: fmt.Sprintf(format, args...)}
}

func Status(expected int, got int) domain.AssertionResult {
	if got == expected {
		return pass("status", "status %d", got)
	}
	return fail("status", "expected status %d, got %d", expected, got)
}

// Healthy is the default check: any status below 400.
func Healthy(got int) domain.AssertionResult {
	if got > 0 && got < HealthyBelow {
		return pass("status", "status %d", got)
	}
	return fail("status", "expected status < %d, got %d", HealthyBelow, got)
}

func MaxLatency(maxMs int, latencyMs int64) domain.AssertionResult {
	if latencyMs <= int64(maxMs) {
		return pass("max_ms", "latency %dms <= %dms", latencyMs, maxMs)
	}
	return fail("max_ms", "expected latency <= %dms, got %dms", maxMs, latencyMs)
}

// Evaluate applies spec to the observed response. The body is only parsed
// when JSONPath checks are configured; those run in expression order.
func Evaluate(spec domain.ExpectSpec, status int, latencyMs int64, body []byte) []domain.AssertionResult {
	out := make([]domain.AssertionResult, 0, 2+len(spec.JSONPath))

	if spec.Status != nil {
		out = append(out, Status(*spec.Status, status))
	} else {
		out = append(out, Healthy(status))
	}
	if spec.MaxLatencyMS != nil {
		out = append(out, MaxLatency(*spec.MaxLatencyMS, latencyMs))
	}

	if len(spec.JSONPath) == 0 {
		return out
	}

	exprs := make([]string, 0, len(spec.JSONPath))
	for expr := range spec.JSONPath {
		exprs = append(exprs, expr)
	}
	sort.Strings(exprs)

	var doc any
	parseErr := json.Unmarshal(body, &doc)

	for _, expr := range exprs {
		if parseErr != nil {
			out = append(out, jsonPathChecks(expr, spec.JSONPath[expr], nil,
				fmt.Errorf("response body is not valid JSON"))...)
			continue
		}
		val, getErr := jsonpath.Get(expr, doc)
		out = append(out, jsonPathChecks(expr, spec.JSONPath[expr], val, getErr)...)
	}

	return out
}

func jsonPathChecks(expr string, a domain.JSONPathAssertion, val any, getErr error) []domain.AssertionResult {
	var out []domain.AssertionResult
	if a.Exists {
		out = append(out, checkExists(expr, val, getErr))
	}
	if a.Eq != nil {
		want := *a.Eq
		out = append(out, compare("jsonpath.eq", expr, val, getErr, func(s string) domain.AssertionResult {
			if s == want {
				return pass("jsonpath.eq", "jsonpath %q eq %q", expr, want)
			}
			return fail("jsonpath.eq", "jsonpath %q: expected %q, got %q", expr, want, s)
		}))
	}
	if a.Contains != nil {
		sub := *a.Contains
		out = append(out, compare("jsonpath.contains", expr, val, getErr, func(s string) domain.AssertionResult {
			if strings.Contains(s, sub) {
				return pass("jsonpath.contains", "jsonpath %q contains %q", expr, sub)
			}
			return fail("jsonpath.contains", "jsonpath %q: %q does not contain %q", expr, s, sub)
		}))
	}
	if a.Matches != nil {
		pattern := *a.Matches
		out = append(out, compare("jsonpath.matches", expr, val, getErr, func(s string) domain.AssertionResult {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return fail("jsonpath.matches", "jsonpath %q: invalid regex %q: %v", expr, pattern, err)
			}
			if re.MatchString(s) {
				return pass("jsonpath.matches", "jsonpath %q matches %q", expr, pattern)
			}
			return fail("jsonpath.matches", "jsonpath %q: %q does not match %q", expr, s, pattern)
		}))
	}
	return out
}

func checkExists(expr string, val any, getErr error) domain.AssertionResult {
	if getErr != nil {
		return fail("jsonpath.exists", "jsonpath %q: %v", expr, getErr)
	}
	if isEmptyJSONPathValue(val) {
		return fail("jsonpath.exists", "jsonpath %q: expected value to exist, got empty", expr)
	}
	return pass("jsonpath.exists", "jsonpath %q exists", expr)
}

// compare stringifies the looked-up value and hands it to check.
func compare(name, expr string, val any, getErr error, check func(string) domain.AssertionResult) domain.AssertionResult {
	if getErr != nil {
		return fail(name, "jsonpath %q: %v", expr, getErr)
	}
	s, err := jsonPathToString(val)
	if err != nil {
		return fail(name, "jsonpath %q: %v", expr, err)
	}
	return check(s)
}

func jsonPathToString(val any) (string, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case nil:
		return "", fmt.Errorf("value is null")
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v), nil
		}
		return string(b), nil
	}
}

func isEmptyJSONPathValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}
