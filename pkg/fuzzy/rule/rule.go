// Package rule implements a single Mamdani fuzzy rule:
//
//	IF x1 is A1 AND x2 is A2 OR ... THEN y is B
//
// A rule fuzzifies each crisp input against its antecedent, folds the
// antecedent degrees into a firing strength and clips the consequent with the
// implication operator.
package rule

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cognicore/fuzzy/pkg/fuzzy/algebra"
	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
	"github.com/cognicore/fuzzy/pkg/fuzzy/mf"
)

// Connector joins two adjacent antecedents.
type Connector uint8

const (
	And Connector = iota + 1
	Or
)

// ParseConnector accepts "and" or "or" (any case).
func ParseConnector(token string) (Connector, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "and":
		return And, nil
	case "or":
		return Or, nil
	}
	return 0, errors.Wrapf(internalerr.ErrInvalidOperator, "expected 'and' or 'or', got %q", token)
}

func (c Connector) String() string {
	switch c {
	case And:
		return "and"
	case Or:
		return "or"
	default:
		return "invalid"
	}
}

// Config describes a rule before validation.
type Config struct {
	Antecedents []mf.MembershipFunction
	// Operators joins Antecedents[i] and Antecedents[i+1]; each is "and" or "or".
	Operators  []string
	Consequent mf.MembershipFunction

	// DOM fuzzifies a crisp input against an antecedent.
	DOM algebra.TNorm
	// TNorm and TCoNorm combine antecedent degrees for "and" and "or".
	TNorm   algebra.TNorm
	TCoNorm algebra.TCoNorm
	// Implication clips or scales the consequent by the firing strength.
	// It must be a t-norm or a t-conorm.
	Implication algebra.Operator

	// Names optionally labels each antecedent followed by the consequent.
	Names []string
}

// Rule is an immutable, validated fuzzy rule. It is safe for concurrent use.
type Rule struct {
	antecedents []mf.MembershipFunction
	connectors  []Connector
	consequent  mf.MembershipFunction
	dom         algebra.TNorm
	tnorm       algebra.TNorm
	tconorm     algebra.TCoNorm
	implication algebra.Operator
	names       []string
}

// Result is the outcome of evaluating a rule for one crisp input vector.
type Result struct {
	// Consequent is the clipped consequent membership function.
	Consequent mf.MembershipFunction
	// Firing is the folded antecedent membership function (constant valued).
	Firing mf.MembershipFunction
	// Strength is the scalar firing strength.
	Strength float64
	// DOM holds the degree of membership of each antecedent.
	DOM []float64
}

// New validates cfg and builds a rule.
func New(cfg Config) (*Rule, error) {
	n := len(cfg.Antecedents)
	if n == 0 {
		return nil, errors.Wrap(internalerr.ErrInvalidConfig, "rule: at least one antecedent is required")
	}
	for i, a := range cfg.Antecedents {
		if a == nil {
			return nil, errors.Wrapf(internalerr.ErrInvalidConfig, "rule: antecedent %d is nil", i)
		}
	}

	if len(cfg.Operators) != n-1 {
		return nil, errors.Wrapf(internalerr.ErrInvalidConfig,
			"rule: expected %d operators for %d antecedents, got %d", n-1, n, len(cfg.Operators))
	}
	connectors := make([]Connector, len(cfg.Operators))
	for i, tok := range cfg.Operators {
		c, err := ParseConnector(tok)
		if err != nil {
			return nil, errors.Wrapf(err, "rule: operator at index %d", i)
		}
		connectors[i] = c
	}

	if cfg.Consequent == nil {
		return nil, errors.Wrap(internalerr.ErrInvalidConfig, "rule: consequent is nil")
	}
	if !cfg.DOM.Valid() {
		return nil, errors.Wrapf(internalerr.ErrInvalidOperator, "rule: dom operator %s is not a t-norm", cfg.DOM)
	}
	if !cfg.TNorm.Valid() {
		return nil, errors.Wrapf(internalerr.ErrInvalidOperator, "rule: tnorm %s is not a t-norm", cfg.TNorm)
	}
	if !cfg.TCoNorm.Valid() {
		return nil, errors.Wrapf(internalerr.ErrInvalidOperator, "rule: tconorm %s is not a t-conorm", cfg.TCoNorm)
	}
	if err := validImplication(cfg.Implication); err != nil {
		return nil, err
	}

	var names []string
	if cfg.Names != nil {
		if len(cfg.Names) != n+1 {
			return nil, errors.Wrapf(internalerr.ErrInvalidConfig,
				"rule: expected %d names, got %d", n+1, len(cfg.Names))
		}
		names = append([]string(nil), cfg.Names...)
	}

	return &Rule{
		antecedents: append([]mf.MembershipFunction(nil), cfg.Antecedents...),
		connectors:  connectors,
		consequent:  cfg.Consequent,
		dom:         cfg.DOM,
		tnorm:       cfg.TNorm,
		tconorm:     cfg.TCoNorm,
		implication: cfg.Implication,
		names:       names,
	}, nil
}

func validImplication(op algebra.Operator) error {
	if op == nil {
		return errors.Wrap(internalerr.ErrInvalidOperator, "rule: implication operator is nil")
	}
	switch op.Family() {
	case algebra.FamilyTNorm, algebra.FamilyTCoNorm:
	default:
		return errors.Wrapf(internalerr.ErrInvalidOperator,
			"rule: implication must be a t-norm or t-conorm, got %s %s", op.Family(), op)
	}
	if !op.Valid() {
		return errors.Wrapf(internalerr.ErrInvalidOperator, "rule: implication %s is not a declared variant", op)
	}
	return nil
}

// Arity is the number of antecedents (and crisp inputs) of the rule.
func (r *Rule) Arity() int { return len(r.antecedents) }

// Names returns the display names, or nil when none were given.
func (r *Rule) Names() []string { return append([]string(nil), r.names...) }

// Consequent returns the unclipped consequent.
func (r *Rule) Consequent() mf.MembershipFunction { return r.consequent }

// Strength returns the degree of membership of each crisp input in its
// antecedent. Each input is fuzzified as a singleton and combined with the
// antecedent through the DOM t-norm.
func (r *Rule) Strength(x []float64) ([]float64, error) {
	if len(x) != len(r.antecedents) {
		return nil, errors.Wrapf(internalerr.ErrLengthMismatch,
			"rule: expected %d inputs, got %d", len(r.antecedents), len(x))
	}

	dom := make([]float64, len(x))
	for i, xi := range x {
		fuzzy := mf.NewSingleton(xi)
		dom[i] = r.dom.Combine(fuzzy, r.antecedents[i]).Evaluate(xi)
	}
	return dom, nil
}

// Evaluate fires the rule for the crisp inputs x and returns the clipped
// consequent together with the antecedent degrees.
func (r *Rule) Evaluate(x []float64) (Result, error) {
	dom, err := r.Strength(x)
	if err != nil {
		return Result{}, err
	}

	degrees := make([]mf.MembershipFunction, len(dom))
	for i, d := range dom {
		c, err := mf.NewConstant(d)
		if err != nil {
			return Result{}, errors.Wrapf(err, "rule: antecedent %d", i)
		}
		degrees[i] = c
	}

	firing := r.fire(degrees)
	// The firing function is constant, so any sample yields the strength.
	strength := firing.Evaluate(0)

	return Result{
		Consequent: algebra.Combine(r.implication, firing, r.consequent),
		Firing:     firing,
		Strength:   strength,
		DOM:        dom,
	}, nil
}

// fire folds the antecedent degrees left to right in declaration order.
// There is no precedence between "and" and "or".
func (r *Rule) fire(degrees []mf.MembershipFunction) mf.MembershipFunction {
	acc := degrees[0]
	for i, c := range r.connectors {
		switch c {
		case And:
			acc = r.tnorm.Combine(acc, degrees[i+1])
		case Or:
			acc = r.tconorm.Combine(acc, degrees[i+1])
		}
	}
	return acc
}

// String renders the rule as "IF a AND b THEN c", using names when present.
func (r *Rule) String() string {
	label := func(i int, m mf.MembershipFunction) string {
		if r.names != nil {
			return r.names[i]
		}
		return describe(m)
	}
	last := len(r.antecedents)

	if len(r.antecedents) == 1 {
		return "Rule(" + label(0, r.antecedents[0]) + ", " + label(last, r.consequent) + ")"
	}

	var b strings.Builder
	b.WriteString("IF ")
	for i, a := range r.antecedents {
		b.WriteString(label(i, a))
		b.WriteByte(' ')
		if i < len(r.connectors) {
			b.WriteString(strings.ToUpper(r.connectors[i].String()))
			b.WriteByte(' ')
		}
	}
	b.WriteString("THEN ")
	b.WriteString(label(last, r.consequent))
	return b.String()
}

func describe(m mf.MembershipFunction) string {
	if s, ok := m.(interface{ String() string }); ok {
		return s.String()
	}
	return "MembershipFunction"
}
