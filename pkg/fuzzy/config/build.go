package config

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cognicore/fuzzy/pkg/fuzzy/algebra"
	"github.com/cognicore/fuzzy/pkg/fuzzy/defuzz"
	"github.com/cognicore/fuzzy/pkg/fuzzy/engine"
	"github.com/cognicore/fuzzy/pkg/fuzzy/grid"
	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
	"github.com/cognicore/fuzzy/pkg/fuzzy/mf"
	"github.com/cognicore/fuzzy/pkg/fuzzy/rule"
)

// Validate checks the definition without building an engine.
func (d *Definition) Validate() error {
	_, err := d.rules()
	return err
}

// Build validates the definition and constructs the engine.
func (d *Definition) Build(opts ...engine.Option) (*engine.Mamdani, error) {
	rules, err := d.rules()
	if err != nil {
		return nil, err
	}
	agg, err := algebra.ParseTCoNorm(d.Aggregate)
	if err != nil {
		return nil, errors.Wrap(err, "config: aggregate")
	}
	return engine.New(rules, agg, d.Defuzz, opts...)
}

// Ranges returns the sample sequence of every input, in declaration order.
func (d *Definition) Ranges() [][]float64 {
	out := make([][]float64, len(d.Inputs))
	for i, v := range d.Inputs {
		out[i] = v.Range()
	}
	return out
}

// Universe returns the output sample sequence.
func (d *Definition) Universe() []float64 { return d.Output.Range() }

// Range samples the variable evenly on [Min, Max].
func (v Variable) Range() []float64 { return grid.Linspace(v.Min, v.Max, v.Samples) }

func (v Variable) validate(what string) error {
	if strings.TrimSpace(v.Name) == "" {
		return errors.Wrapf(internalerr.ErrInvalidConfig, "config: %s has no name", what)
	}
	if !(v.Min < v.Max) {
		return errors.Wrapf(internalerr.ErrInvalidConfig, "config: %s %q: min %g must be below max %g", what, v.Name, v.Min, v.Max)
	}
	if v.Samples < 2 {
		return errors.Wrapf(internalerr.ErrInvalidConfig, "config: %s %q: need at least 2 samples, got %d", what, v.Name, v.Samples)
	}
	return nil
}

func (d *Definition) rules() ([]*rule.Rule, error) {
	if len(d.Inputs) == 0 {
		return nil, errors.Wrap(internalerr.ErrInvalidConfig, "config: no inputs")
	}
	seen := make(map[string]bool, len(d.Inputs)+1)
	for i, in := range d.Inputs {
		if err := in.validate("input"); err != nil {
			return nil, errors.Wrapf(err, "input %d", i)
		}
		if seen[in.Name] {
			return nil, errors.Wrapf(internalerr.ErrInvalidConfig, "config: duplicate variable %q", in.Name)
		}
		seen[in.Name] = true
	}
	if err := d.Output.validate("output"); err != nil {
		return nil, err
	}
	if _, err := defuzz.Lookup(d.Defuzz); err != nil {
		return nil, errors.Wrap(err, "config")
	}
	if _, err := algebra.ParseTCoNorm(d.Aggregate); err != nil {
		return nil, errors.Wrap(err, "config: aggregate")
	}

	sets := make(map[string]mf.MembershipFunction, len(d.Sets))
	for name, s := range d.Sets {
		m, err := s.Build()
		if err != nil {
			return nil, errors.Wrapf(err, "config: set %q", name)
		}
		sets[name] = m
	}

	if len(d.Rules) == 0 {
		return nil, errors.Wrap(internalerr.ErrInvalidConfig, "config: no rules")
	}
	out := make([]*rule.Rule, len(d.Rules))
	for i, rd := range d.Rules {
		r, err := rd.build(sets, len(d.Inputs))
		if err != nil {
			return nil, errors.Wrapf(err, "config: rule %d", i)
		}
		out[i] = r
	}
	return out, nil
}

func (rd Rule) build(sets map[string]mf.MembershipFunction, inputs int) (*rule.Rule, error) {
	if len(rd.If) != inputs {
		return nil, errors.Wrapf(internalerr.ErrInvalidConfig,
			"expected %d antecedents (one per input), got %d", inputs, len(rd.If))
	}

	antecedents := make([]mf.MembershipFunction, len(rd.If))
	for i, term := range rd.If {
		m, err := resolveTerm(term, sets)
		if err != nil {
			return nil, errors.Wrapf(err, "antecedent %d", i)
		}
		antecedents[i] = m
	}
	consequent, err := resolveTerm(rd.Then, sets)
	if err != nil {
		return nil, errors.Wrap(err, "consequent")
	}

	dom, err := algebra.ParseTNorm(rd.DOM)
	if err != nil {
		return nil, errors.Wrap(err, "dom")
	}
	tnorm, err := algebra.ParseTNorm(rd.TNorm)
	if err != nil {
		return nil, errors.Wrap(err, "tnorm")
	}
	tconorm, err := algebra.ParseTCoNorm(rd.TCoNorm)
	if err != nil {
		return nil, errors.Wrap(err, "tconorm")
	}
	implication, err := algebra.ParseOperator(rd.Implication)
	if err != nil {
		return nil, errors.Wrap(err, "implication")
	}

	names := make([]string, 0, len(rd.If)+1)
	for _, term := range rd.If {
		names = append(names, strings.Join(strings.Fields(term), " "))
	}
	names = append(names, strings.Join(strings.Fields(rd.Then), " "))

	return rule.New(rule.Config{
		Antecedents: antecedents,
		Operators:   rd.Operators,
		Consequent:  consequent,
		DOM:         dom,
		TNorm:       tnorm,
		TCoNorm:     tconorm,
		Implication: implication,
		Names:       names,
	})
}

// resolveTerm turns "not very cold" into not(con(cold)). Hedges apply from
// the one nearest the set name outwards.
func resolveTerm(term string, sets map[string]mf.MembershipFunction) (mf.MembershipFunction, error) {
	words := strings.Fields(term)
	if len(words) == 0 {
		return nil, errors.Wrap(internalerr.ErrInvalidConfig, "empty term")
	}
	name := words[len(words)-1]
	m, ok := sets[name]
	if !ok {
		return nil, errors.Wrapf(internalerr.ErrNotFound, "set %q", name)
	}
	for i := len(words) - 2; i >= 0; i-- {
		h, err := algebra.ParseHedge(words[i])
		if err != nil {
			return nil, errors.Wrapf(err, "term %q", term)
		}
		m = h.Transform(m)
	}
	return m, nil
}
