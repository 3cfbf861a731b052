package store

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Store is the journal of inference runs and surfaces
type Store interface {
	Close() error

	// RecordRun stores r. A missing ID or CreatedAt is filled in and the
	// stored run is returned.
	RecordRun(ctx context.Context, r Run) (Run, error)

	// GetRun returns a run by ID, or internalerr.ErrNotFound.
	GetRun(ctx context.Context, id string) (Run, error)

	// ListRuns returns runs newest first.
	ListRuns(ctx context.Context, opts ListOptions) ([]Run, error)
}

// Kind tells what produced a run
type Kind string

const (
	KindInference        Kind = "inference"
	KindControlSurface   Kind = "control_surface"
	KindInferenceSurface Kind = "inference_surface"
)

// Run is one journaled evaluation
type Run struct {
	ID        string
	Kind      Kind
	Source    string    // definition name or file
	Method    string    // defuzzification method
	Inputs    []float64 // crisp inputs (inference only)
	Output    float64   // crisp output (inference only)
	Shape     []int     // surface shape
	Values    []float64 // surface values, row-major
	CreatedAt time.Time
}

// ListOptions filters ListRuns
type ListOptions struct {
	Kind  Kind // empty matches every kind
	Limit int  // <= 0 means 20
}

// DefaultLimit is the ListRuns page size when none is given.
const DefaultLimit = 20

// EffectiveLimit resolves the page size.
func (o ListOptions) EffectiveLimit() int {
	if o.Limit <= 0 {
		return DefaultLimit
	}
	return o.Limit
}

var (
	idMu      sync.Mutex
	idEntropy = ulid.Monotonic(rand.Reader, 0)
)

// NewID returns a ULID. IDs from one process sort in creation order.
func NewID(now time.Time) string {
	idMu.Lock()
	defer idMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(now), idEntropy).String()
}

// Prepare fills in the ID and timestamp of a run about to be stored.
func Prepare(r Run, now time.Time) Run {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now.UTC()
	}
	if r.ID == "" {
		r.ID = NewID(r.CreatedAt)
	}
	return r
}

// Clone deep-copies the slices of r.
func Clone(r Run) Run {
	r.Inputs = append([]float64(nil), r.Inputs...)
	r.Shape = append([]int(nil), r.Shape...)
	r.Values = append([]float64(nil), r.Values...)
	return r
}
