package catalog

import (
	"context"
	"fmt"
	"log"

	"github.com/dshills/jqrt/pkg/builtin"
	apperrors "github.com/dshills/jqrt/pkg/errors"
	"github.com/dshills/jqrt/pkg/value"
)

// Outcome is the result of running one case.
type Outcome struct {
	CaseID  string
	Passed  bool
	Output  string // display of the produced value, empty on failure
	Message string // rendered failure, empty on success
	Kind    string // failure kind, empty on success
	Reason  string // why the case did not pass
}

// Result collects the outcomes of one catalog run.
type Result struct {
	Catalog  string
	Outcomes []Outcome
	Passed   int
	Failed   int
}

// OK reports whether every case passed.
func (r *Result) OK() bool {
	return r.Failed == 0
}

// Run evaluates every case of cat in order. Cancellation is checked
// between cases; the partial result is returned with the context error.
func Run(ctx context.Context, cat *Catalog) (*Result, error) {
	res := &Result{Catalog: cat.Name}

	for _, tc := range cat.Cases {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		out := runCase(ctx, cat.Name, tc)
		if out.Passed {
			res.Passed++
		} else {
			res.Failed++
			log.Printf("catalog %s: case %s failed: %s", cat.Name, tc.ID, out.Reason)
		}
		res.Outcomes = append(res.Outcomes, out)
	}

	return res, nil
}

func runCase(ctx context.Context, catalog string, tc Case) Outcome {
	out := Outcome{CaseID: tc.ID}

	args := make([]value.Value, len(tc.Args))
	for i, text := range tc.Args {
		v, err := value.ParseJSON(text)
		if err != nil {
			out.Reason = fmt.Sprintf("argument %d: %v", i, err)
			return out
		}
		args[i] = v
	}

	got, err := builtin.Apply(tc.Builtin, args...)
	if err != nil {
		if !apperrors.IsFailure(err) {
			out.Reason = apperrors.NewOperationalError("applying "+tc.Builtin, catalog, tc.ID, err).Error()
			return out
		}
		out.Message = apperrors.Message(err)
		out.Kind = apperrors.Classify(err)
	} else {
		out.Output = got.String()
	}

	if reason := compare(tc, out, got); reason != "" {
		out.Reason = reason
		return out
	}

	if tc.Check != "" {
		if reason := check(ctx, tc.Check, out, got); reason != "" {
			out.Reason = reason
			return out
		}
	}

	out.Passed = true
	return out
}

func compare(tc Case, out Outcome, got value.Value) string {
	failed := out.Kind != ""

	if !tc.ExpectsFailure() {
		if failed {
			return fmt.Sprintf("expected output %s, got failure: %s", *tc.Output, out.Message)
		}
		want, err := value.ParseJSON(*tc.Output)
		if err != nil {
			return fmt.Sprintf("expected output is not JSON: %v", err)
		}
		if !value.Equal(want, got) {
			return fmt.Sprintf("expected output %s, got %s", want, got)
		}
		return ""
	}

	if !failed {
		return fmt.Sprintf("expected a failure, got output %s", out.Output)
	}
	if tc.Error != nil && *tc.Error != out.Message {
		return fmt.Sprintf("expected message %q, got %q", *tc.Error, out.Message)
	}
	if tc.Kind != "" && tc.Kind != out.Kind {
		return fmt.Sprintf("expected kind %s, got %s", tc.Kind, out.Kind)
	}
	return ""
}

// check evaluates an expr-lang predicate over the outcome and returns why
// it did not hold, or "" when it did.
func check(ctx context.Context, source string, out Outcome, got value.Value) string {
	env := checkEnv{
		Message: out.Message,
		Kind:    out.Kind,
		Failed:  out.Kind != "",
	}
	if !env.Failed {
		env.Output = value.ToGo(got)
	}

	ok, err := checks.Eval(ctx, source, env)
	if err != nil {
		return fmt.Sprintf("check %q: %v", source, err)
	}
	if !ok {
		return fmt.Sprintf("check %q is false", source)
	}
	return ""
}
