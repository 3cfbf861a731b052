package config

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
	"github.com/cognicore/fuzzy/pkg/fuzzy/mf"
)

// shapes maps a set type to its parameter count and constructor.
var shapes = map[string]struct {
	params int
	build  func(p []float64) (mf.MembershipFunction, error)
}{
	"bell":        {3, func(p []float64) (mf.MembershipFunction, error) { return mf.NewBell(p[0], p[1], p[2]) }},
	"gaussian":    {2, func(p []float64) (mf.MembershipFunction, error) { return mf.NewGaussian(p[0], p[1]) }},
	"trapezoid":   {4, func(p []float64) (mf.MembershipFunction, error) { return mf.NewTrapezoid(p[0], p[1], p[2], p[3]) }},
	"triangle":    {3, func(p []float64) (mf.MembershipFunction, error) { return mf.NewTriangle(p[0], p[1], p[2]) }},
	"sigmoid":     {2, func(p []float64) (mf.MembershipFunction, error) { return mf.NewSigmoid(p[0], p[1]), nil }},
	"step":        {1, func(p []float64) (mf.MembershipFunction, error) { return mf.NewStep(p[0]), nil }},
	"linear":      {2, func(p []float64) (mf.MembershipFunction, error) { return mf.NewLinear(p[0], p[1]), nil }},
	"rectangular": {2, func(p []float64) (mf.MembershipFunction, error) { return mf.NewRectangular(p[0], p[1]) }},
	"singleton":   {1, func(p []float64) (mf.MembershipFunction, error) { return mf.NewSingleton(p[0]), nil }},
	"constant":    {1, func(p []float64) (mf.MembershipFunction, error) { return mf.NewConstant(p[0]) }},
}

// Build constructs the membership function.
func (s Set) Build() (mf.MembershipFunction, error) {
	shape, ok := shapes[strings.ToLower(strings.TrimSpace(s.Type))]
	if !ok {
		return nil, errors.Wrapf(internalerr.ErrInvalidConfig, "unknown set type %q", s.Type)
	}
	if len(s.Params) != shape.params {
		return nil, errors.Wrapf(internalerr.ErrInvalidConfig,
			"%s takes %d params, got %d", s.Type, shape.params, len(s.Params))
	}
	return shape.build(s.Params)
}
