package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Sentinel errors for check predicates
var (
	ErrInvalidCheck = errors.New("invalid check")
	ErrCheckTimeout = errors.New("check evaluation timed out")
)

// checkTimeout bounds one predicate evaluation when the context has no
// earlier deadline.
const checkTimeout = 5 * time.Second

// checkEnv is the environment a check predicate sees.
type checkEnv struct {
	Output  interface{} `expr:"output"`  // plain Go data, nil on failure
	Message string      `expr:"message"` // rendered failure
	Kind    string      `expr:"kind"`    // failure kind name
	Failed  bool        `expr:"failed"`
}

// checker compiles check predicates once and evaluates them with a timeout.
type checker struct {
	mu       sync.Mutex
	programs map[string]*vm.Program
}

func newChecker() *checker {
	return &checker{programs: make(map[string]*vm.Program)}
}

var checks = newChecker()

// Compile returns the cached program for source, compiling it on first use.
func (c *checker) Compile(source string) (*vm.Program, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if program, ok := c.programs[source]; ok {
		return program, nil
	}

	program, err := expr.Compile(source, expr.Env(checkEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCheck, err)
	}
	c.programs[source] = program
	return program, nil
}

// Eval runs source against env and reports its boolean result.
func (c *checker) Eval(ctx context.Context, source string, env checkEnv) (bool, error) {
	program, err := c.Compile(source)
	if err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	type result struct {
		ok  bool
		err error
	}
	done := make(chan result, 1)

	go func() {
		out, err := expr.Run(program, env)
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrInvalidCheck, err)}
			return
		}
		ok, isBool := out.(bool)
		if !isBool {
			done <- result{err: fmt.Errorf("%w: result is %T, not bool", ErrInvalidCheck, out)}
			return
		}
		done <- result{ok: ok}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return false, ErrCheckTimeout
		}
		return false, ctx.Err()
	case r := <-done:
		return r.ok, r.err
	}
}
