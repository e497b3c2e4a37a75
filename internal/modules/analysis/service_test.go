package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akladas/propscope/internal/comps"
)

type mapSource map[string]float64

func (m mapSource) Get(name string, def float64) float64 {
	if v, ok := m[name]; ok {
		return v
	}
	return def
}

type stubProvider struct {
	name    string
	records []comps.Record
	err     error
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) FetchComps(_ context.Context, _ comps.Query) ([]comps.Record, error) {
	return p.records, p.err
}

func testSource() mapSource {
	return mapSource{
		FieldPurchasePrice:    300000,
		FieldRehabCost:        10000,
		FieldMonthlyRent:      2800,
		FieldMonthlyInsurance: 100,
	}
}

func TestResolveInputs(t *testing.T) {
	in := ResolveInputs(testSource())

	assert.InDelta(t, 300000, in.PurchasePrice, 1e-9)
	assert.InDelta(t, 2800, in.MonthlyRent, 1e-9)

	// Unset fields take the documented defaults
	assert.InDelta(t, 0.20, in.DownPaymentPct, 1e-9)
	assert.InDelta(t, 0.07, in.AnnualRate, 1e-9)
	assert.Equal(t, 30, in.TermYears)
	assert.Equal(t, 6, in.MonthsToFlip)
	assert.InDelta(t, 0.05, in.VacancyRate, 1e-9)
	assert.InDelta(t, 0.08, in.ManagementRate, 1e-9)
}

func TestFallbackARV(t *testing.T) {
	in := Inputs{PurchasePrice: 200000, RehabCost: 30000}
	assert.InDelta(t, 230000, in.FallbackARV(), 1e-9)

	in.ARV = 310000
	assert.InDelta(t, 310000, in.FallbackARV(), 1e-9)
}

func TestRunRentalWithoutResolver(t *testing.T) {
	svc := NewService(nil, zerolog.Nop())
	in := ResolveInputs(testSource())

	res, err := svc.Run(context.Background(), in, Options{Mode: ModeRental})
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, ModeRental, res.Mode)
	assert.InDelta(t, in.FallbackARV(), res.ARV, 1e-9)

	require.NotNil(t, res.RentalMetrics)
	require.NotNil(t, res.Projection)
	require.NotNil(t, res.BreakEven)
	require.NotNil(t, res.IRR)
	assert.Nil(t, res.FlipMetrics)

	assert.Len(t, res.Projection.Years, DefaultProjectionYears)
	assert.Len(t, res.Schedule, 360)
	assert.Len(t, res.Scenarios, 3)
	assert.NotEmpty(t, res.Score.Recommendation)

	// Without comps the market sub-score stays neutral
	assert.InDelta(t, 50, res.Score.Scores["market"], 1e-9)
	assert.Empty(t, res.Comps)
	assert.Nil(t, res.MarketStats)
}

func TestRunFlipMode(t *testing.T) {
	svc := NewService(nil, zerolog.Nop())
	src := testSource()
	src[FieldARV] = 380000
	src[FieldMonthsToFlip] = 5
	in := ResolveInputs(src)

	res, err := svc.Run(context.Background(), in, Options{Mode: ModeFlip})
	require.NoError(t, err)

	require.NotNil(t, res.FlipMetrics)
	assert.Nil(t, res.RentalMetrics)
	assert.Nil(t, res.Projection)
	assert.Nil(t, res.BreakEven)

	assert.InDelta(t, 380000, res.ARV, 1e-9)
	assert.Positive(t, res.FlipMetrics.NetProfit)
	assert.Contains(t, res.Score.Scores, "risk")
}

func TestRunWithComps(t *testing.T) {
	provider := &stubProvider{
		name: "bridge",
		records: []comps.Record{
			{Address: "1 Elm St", Price: 310000},
			{Address: "2 Elm St", Price: 330000},
		},
	}
	resolver := comps.NewResolver([]comps.Provider{provider}, nil, comps.DefaultRetryPolicy, zerolog.Nop())
	svc := NewService(resolver, zerolog.Nop())
	in := ResolveInputs(testSource())

	res, err := svc.Run(context.Background(), in, Options{
		Mode:         ModeRental,
		CompProvider: "bridge",
		CompQuery:    &comps.Query{Address: "3 Elm St", City: "Austin", State: "TX", Zip: "78701"},
	})
	require.NoError(t, err)

	require.Len(t, res.Comps, 2)
	require.NotNil(t, res.MarketStats)
	assert.InDelta(t, 320000, res.MarketStats.AveragePrice, 1e-6)
	assert.InDelta(t, 320000, res.ARV, 1e-6)

	// Comp-derived market context feeds the score: bought below market
	assert.Greater(t, res.Score.Scores["market"], 50.0)
}

func TestRunDegradesOnProviderFailure(t *testing.T) {
	provider := &stubProvider{name: "bridge", err: errors.New("upstream down")}
	resolver := comps.NewResolver([]comps.Provider{provider}, nil, comps.RetryPolicy{Attempts: 1}, zerolog.Nop())
	svc := NewService(resolver, zerolog.Nop())
	in := ResolveInputs(testSource())

	res, err := svc.Run(context.Background(), in, Options{
		Mode:         ModeRental,
		CompProvider: "bridge",
		CompQuery:    &comps.Query{Address: "3 Elm St"},
	})
	require.NoError(t, err)

	assert.Empty(t, res.Comps)
	assert.NotEmpty(t, res.CompsNotice)
	assert.InDelta(t, in.FallbackARV(), res.ARV, 1e-9)
}

func TestRunUnknownProviderIsHardError(t *testing.T) {
	resolver := comps.NewResolver(nil, nil, comps.DefaultRetryPolicy, zerolog.Nop())
	svc := NewService(resolver, zerolog.Nop())

	_, err := svc.Run(context.Background(), ResolveInputs(testSource()), Options{
		CompProvider: "nope",
		CompQuery:    &comps.Query{Address: "3 Elm St"},
	})
	require.Error(t, err)
}

func TestRunAppliesCompFilters(t *testing.T) {
	provider := &stubProvider{
		name: "bridge",
		records: []comps.Record{
			{Address: "1 Elm St", Price: 310000, Beds: 3},
			{Address: "2 Elm St", Price: 150000, Beds: 1},
		},
	}
	resolver := comps.NewResolver([]comps.Provider{provider}, nil, comps.DefaultRetryPolicy, zerolog.Nop())
	svc := NewService(resolver, zerolog.Nop())

	res, err := svc.Run(context.Background(), ResolveInputs(testSource()), Options{
		Mode:         ModeRental,
		CompProvider: "bridge",
		CompQuery:    &comps.Query{Address: "3 Elm St"},
		CompFilters:  &comps.Filters{MinBeds: 2},
	})
	require.NoError(t, err)
	require.Len(t, res.Comps, 1)
	assert.Equal(t, "1 Elm St", res.Comps[0].Address)
}
