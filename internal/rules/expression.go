package rules

import (
	"fmt"
	"math"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/opensource-finance/kestrel/internal/domain"
	"github.com/opensource-finance/kestrel/internal/extract"
)

// celEnv declares every supported metric as a double variable.
var celEnv = sync.OnceValues(func() (*cel.Env, error) {
	keys := extract.Keys()
	opts := make([]cel.EnvOption, 0, len(keys)+1)
	opts = append(opts, cel.CrossTypeNumericComparisons(true))
	for _, k := range keys {
		opts = append(opts, cel.Variable(string(k), cel.DoubleType))
	}
	return cel.NewEnv(opts...)
})

// expression is a compiled CEL check.
type expression struct {
	program cel.Program
	inputs  []domain.MetricKey
}

func compileExpression(check *domain.RiskCheck) (*expression, error) {
	env, err := celEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	for _, in := range check.Inputs {
		if !extract.Supported(in) {
			return nil, fmt.Errorf("check %s input %q: %w", check.Name, in, ErrUnknownMetric)
		}
	}

	ast, issues := env.Compile(check.Expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("failed to compile check %s: %w", check.Name, issues.Err())
	}

	outputType := ast.OutputType()
	if outputType != cel.BoolType && outputType != cel.DoubleType && outputType != cel.IntType {
		return nil, fmt.Errorf("check %s: expression must return bool, int, or double, got %s", check.Name, outputType)
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create program for check %s: %w", check.Name, err)
	}

	return &expression{program: program, inputs: check.Inputs}, nil
}

// eval runs the expression over its declared inputs. Any unknown input,
// or an evaluation error such as a reference to an undeclared input,
// makes the result unknown.
func (e *expression) eval(m MetricSource) domain.MetricValue {
	activation := make(map[string]any, len(e.inputs))
	for _, k := range e.inputs {
		v := m.Metric(k)
		if !v.Known {
			return domain.UnknownValue
		}
		activation[string(k)] = v.Value
	}

	out, _, err := e.program.Eval(activation)
	if err != nil {
		return domain.UnknownValue
	}
	return toValue(out)
}

// toValue converts a CEL result to a metric value. NaN and infinite
// doubles, e.g. from dividing by a zero metric, are unknown.
func toValue(val ref.Val) domain.MetricValue {
	switch v := val.(type) {
	case types.Bool:
		if v {
			return domain.KnownValue(1)
		}
		return domain.KnownValue(0)
	case types.Double:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return domain.UnknownValue
		}
		return domain.KnownValue(f)
	case types.Int:
		return domain.KnownValue(float64(v))
	default:
		return domain.UnknownValue
	}
}
