package rule

import (
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/fuzzy/pkg/fuzzy/algebra"
	"github.com/cognicore/fuzzy/pkg/fuzzy/grid"
	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
	"github.com/cognicore/fuzzy/pkg/fuzzy/mf"
)

func rect(t *testing.T, lo, hi float64) mf.MembershipFunction {
	t.Helper()
	r, err := mf.NewRectangular(lo, hi)
	require.NoError(t, err)
	return r
}

func constant(t *testing.T, v float64) mf.MembershipFunction {
	t.Helper()
	c, err := mf.NewConstant(v)
	require.NoError(t, err)
	return c
}

func tri(t *testing.T, a, b, c float64) mf.MembershipFunction {
	t.Helper()
	m, err := mf.NewTriangle(a, b, c)
	require.NoError(t, err)
	return m
}

func baseConfig(antecedents []mf.MembershipFunction, ops []string, consequent mf.MembershipFunction) Config {
	return Config{
		Antecedents: antecedents,
		Operators:   ops,
		Consequent:  consequent,
		DOM:         algebra.Minimum,
		TNorm:       algebra.Minimum,
		TCoNorm:     algebra.Maximum,
		Implication: algebra.Minimum,
	}
}

func TestSingleAntecedentClipsConsequent(t *testing.T) {
	r, err := New(baseConfig([]mf.MembershipFunction{rect(t, 0, 1)}, nil, constant(t, 0.5)))
	require.NoError(t, err)

	res, err := r.Evaluate([]float64{0.5})
	require.NoError(t, err)

	assert.Equal(t, []float64{1}, res.DOM)
	assert.Equal(t, 1.0, res.Strength)
	for _, x := range grid.Linspace(-5, 5, 21) {
		assert.Equal(t, 0.5, res.Consequent.Evaluate(x), "x=%g", x)
	}
}

func TestStrengthUsesDOMOperator(t *testing.T) {
	r, err := New(baseConfig(
		[]mf.MembershipFunction{tri(t, 0, 1, 2), tri(t, 0, 2, 4)},
		[]string{"and"},
		tri(t, 0, 5, 10),
	))
	require.NoError(t, err)

	dom, err := r.Strength([]float64{0.5, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5}, dom)

	res, err := r.Evaluate([]float64{1.5, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5}, res.DOM)
	assert.Equal(t, 0.5, res.Strength)
	// Clipped at 0.5 on the plateau, follows the consequent below it.
	assert.Equal(t, 0.5, res.Consequent.Evaluate(5))
	assert.Equal(t, 0.2, res.Consequent.Evaluate(1))
	assert.Equal(t, 0.5, res.Firing.Evaluate(123))
}

func TestConnectorsFoldLeftWithoutPrecedence(t *testing.T) {
	cfg := baseConfig(
		[]mf.MembershipFunction{rect(t, 0, 1), rect(t, 0, 1), rect(t, 0, 1)},
		[]string{"or", "AND"},
		constant(t, 1),
	)
	r, err := New(cfg)
	require.NoError(t, err)

	// (1 OR 0) AND 0 = 0, where AND-first precedence would give 1.
	res, err := r.Evaluate([]float64{0.5, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0}, res.DOM)
	assert.Equal(t, 0.0, res.Strength)

	// (0 OR 1) AND 1 = 1
	res, err = r.Evaluate([]float64{2, 0.5, 0.5})
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Strength)
}

func TestProductImplicationScales(t *testing.T) {
	cfg := baseConfig([]mf.MembershipFunction{tri(t, 0, 1, 2)}, nil, tri(t, 0, 1, 2))
	cfg.Implication = algebra.AlgebraicProduct
	r, err := New(cfg)
	require.NoError(t, err)

	res, err := r.Evaluate([]float64{0.5})
	require.NoError(t, err)
	assert.Equal(t, 0.5, res.Consequent.Evaluate(1))
	assert.Equal(t, 0.25, res.Consequent.Evaluate(0.5))
}

func TestTConormImplicationAllowed(t *testing.T) {
	cfg := baseConfig([]mf.MembershipFunction{rect(t, 0, 1)}, nil, constant(t, 0.25))
	cfg.Implication = algebra.Maximum
	r, err := New(cfg)
	require.NoError(t, err)

	res, err := r.Evaluate([]float64{5})
	require.NoError(t, err)
	assert.Equal(t, 0.25, res.Consequent.Evaluate(0))
}

func TestValidation(t *testing.T) {
	ante := []mf.MembershipFunction{rect(t, 0, 1), rect(t, 1, 2)}
	cons := constant(t, 1)

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
		msg    string
	}{
		{"no antecedents", func(c *Config) { c.Antecedents = nil; c.Operators = nil }, internalerr.ErrInvalidConfig, "antecedent"},
		{"nil antecedent", func(c *Config) { c.Antecedents = []mf.MembershipFunction{nil, cons} }, internalerr.ErrInvalidConfig, "antecedent 0"},
		{"operator count", func(c *Config) { c.Operators = []string{"and", "or"} }, internalerr.ErrInvalidConfig, "expected 1 operators"},
		{"unknown operator", func(c *Config) { c.Operators = []string{"xor"} }, internalerr.ErrInvalidOperator, "index 0"},
		{"nil consequent", func(c *Config) { c.Consequent = nil }, internalerr.ErrInvalidConfig, "consequent"},
		{"zero dom", func(c *Config) { c.DOM = 0 }, internalerr.ErrInvalidOperator, "dom"},
		{"zero tnorm", func(c *Config) { c.TNorm = 0 }, internalerr.ErrInvalidOperator, "tnorm"},
		{"zero tconorm", func(c *Config) { c.TCoNorm = 0 }, internalerr.ErrInvalidOperator, "tconorm"},
		{"nil implication", func(c *Config) { c.Implication = nil }, internalerr.ErrInvalidOperator, "implication"},
		{"connective implication", func(c *Config) { c.Implication = algebra.And }, internalerr.ErrInvalidOperator, "connective"},
		{"invalid implication tag", func(c *Config) { c.Implication = algebra.TNorm(42) }, internalerr.ErrInvalidOperator, "declared"},
		{"names length", func(c *Config) { c.Names = []string{"a", "b"} }, internalerr.ErrInvalidConfig, "expected 3 names"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig(ante, []string{"and"}, cons)
			tt.mutate(&cfg)

			_, err := New(cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestUnknownOperatorNamesToken(t *testing.T) {
	cfg := baseConfig(
		[]mf.MembershipFunction{rect(t, 0, 1), rect(t, 0, 1), rect(t, 0, 1)},
		[]string{"and", "nand"},
		constant(t, 1),
	)
	_, err := New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 1")
	assert.Contains(t, err.Error(), `"nand"`)
}

func TestInputLengthMismatch(t *testing.T) {
	r, err := New(baseConfig([]mf.MembershipFunction{rect(t, 0, 1)}, nil, constant(t, 1)))
	require.NoError(t, err)

	_, err = r.Evaluate([]float64{0.1, 0.2})
	assert.True(t, errors.Is(err, internalerr.ErrLengthMismatch))

	_, err = r.Strength(nil)
	assert.True(t, errors.Is(err, internalerr.ErrLengthMismatch))
}

func TestConfigIsCopied(t *testing.T) {
	ante := []mf.MembershipFunction{rect(t, 0, 1)}
	cfg := baseConfig(ante, nil, constant(t, 1))
	cfg.Names = []string{"cold", "low"}
	r, err := New(cfg)
	require.NoError(t, err)

	ante[0] = rect(t, 5, 6)
	cfg.Names[0] = "hot"

	res, err := r.Evaluate([]float64{0.5})
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Strength)
	assert.Equal(t, []string{"cold", "low"}, r.Names())
}

func TestNamesAreTakenVerbatim(t *testing.T) {
	cfg := baseConfig(
		[]mf.MembershipFunction{rect(t, 0, 1), rect(t, 1, 2)},
		[]string{"and"},
		constant(t, 1),
	)
	cfg.Names = []string{"cold", "", "heater_on"}
	r, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"cold", "", "heater_on"}, r.Names())
	assert.Equal(t, "IF cold AND  THEN heater_on", r.String())
}

func TestString(t *testing.T) {
	cfg := baseConfig(
		[]mf.MembershipFunction{rect(t, 0, 1), rect(t, 1, 2)},
		[]string{"or"},
		constant(t, 1),
	)
	cfg.Names = []string{"cold", "wet", "heater_on"}
	r, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "IF cold OR wet THEN heater_on", r.String())

	single, err := New(baseConfig([]mf.MembershipFunction{rect(t, 0, 1)}, nil, constant(t, 0.5)))
	require.NoError(t, err)
	assert.Equal(t, "Rule(Rectangular(low=0, high=1), Constant(0.5))", single.String())
}

func TestConcurrentEvaluate(t *testing.T) {
	r, err := New(baseConfig(
		[]mf.MembershipFunction{tri(t, 0, 1, 2), tri(t, 0, 1, 2)},
		[]string{"and"},
		tri(t, 0, 1, 2),
	))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			x := float64(i%4) * 0.25
			res, err := r.Evaluate([]float64{x, x})
			assert.NoError(t, err)
			assert.Equal(t, []float64{x, x}, res.DOM)
		}(i)
	}
	wg.Wait()
}
