package comps

import (
	"context"
)

// Provider fetches comparable sales from one upstream source.
// Implementations map their provider-specific payload into []Record and must
// treat malformed or non-array responses as zero results rather than errors;
// an error return means the call itself failed and is eligible for retry.
type Provider interface {
	Name() string
	FetchComps(ctx context.Context, query Query) ([]Record, error)
}
