// Package fuzzy ties a Mamdani inference engine to its output universe and an
// optional journal of runs.
//
// The building blocks live in subpackages:
//
//	mf        membership functions and closed-form shapes
//	algebra   t-norms, t-conorms, connectives, hedges and expression nodes
//	rule      single IF ... THEN ... rules
//	defuzz    defuzzification strategies
//	engine    rule base composition, inference and surface sweeps
//	config    YAML and TOML system definitions
//	store     run journal (memstore, sqlite)
package fuzzy
