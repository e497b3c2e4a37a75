package analysis

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/akladas/propscope/internal/comps"
	"github.com/akladas/propscope/internal/modules/alerts"
	"github.com/akladas/propscope/internal/modules/finance"
	"github.com/akladas/propscope/internal/modules/scoring"
)

// Analysis modes.
const (
	ModeRental = "rental"
	ModeFlip   = "flip"
)

// DefaultProjectionYears is the projection horizon when the caller does
// not pick one.
const DefaultProjectionYears = 10

// Options steer a single analysis run.
type Options struct {
	Mode            string                 `json:"mode"`
	ProjectionYears int                    `json:"projection_years,omitempty"`
	ScheduleMonths  int                    `json:"schedule_months,omitempty"`
	CompProvider    string                 `json:"comp_provider,omitempty"`
	ForceRefresh    bool                   `json:"force_refresh,omitempty"`
	CompQuery       *comps.Query           `json:"comp_query,omitempty"`
	CompFilters     *comps.Filters         `json:"comp_filters,omitempty"`
	Market          *alerts.MarketAverages `json:"-"`
}

// Result is the full output of one analysis run. Mode-specific sections
// are nil when they do not apply.
type Result struct {
	RunID         string                    `json:"run_id"`
	Mode          string                    `json:"mode"`
	Inputs        Inputs                    `json:"inputs"`
	ARV           float64                   `json:"arv"`
	RentalMetrics *finance.PropertyMetrics  `json:"rental_metrics,omitempty"`
	FlipMetrics   *finance.FlipMetrics      `json:"flip_metrics,omitempty"`
	Projection    *finance.Projection       `json:"projection,omitempty"`
	IRR           *float64                  `json:"irr,omitempty"`
	Schedule      []finance.AmortizationRow `json:"schedule,omitempty"`
	Scenarios     []finance.LoanScenario    `json:"scenarios,omitempty"`
	BreakEven     *finance.BreakEven        `json:"break_even,omitempty"`
	Score         scoring.Breakdown         `json:"score"`
	Alerts        []alerts.Alert            `json:"alerts"`
	Comps         []comps.Record            `json:"comps"`
	CompsNotice   string                    `json:"comps_notice,omitempty"`
	MarketStats   *comps.MarketStats        `json:"market_stats,omitempty"`
}

// Service runs the analysis pipeline. The comp resolver is optional;
// without it every run uses the purchase-price-based ARV fallback.
type Service struct {
	resolver *comps.Resolver
	log      zerolog.Logger
}

// NewService creates an analysis service. resolver may be nil.
func NewService(resolver *comps.Resolver, log zerolog.Logger) *Service {
	return &Service{
		resolver: resolver,
		log:      log.With().Str("component", "analysis").Logger(),
	}
}

// Run executes the full pipeline: comp resolution (degrading on failure),
// calculators, scoring, and alerts. The only hard errors are caller
// mistakes such as an unknown comp provider tag.
func (s *Service) Run(ctx context.Context, in Inputs, opts Options) (Result, error) {
	mode := opts.Mode
	if mode == "" {
		mode = ModeRental
	}

	res := Result{
		RunID:  uuid.New().String(),
		Mode:   mode,
		Inputs: in,
		Comps:  []comps.Record{},
	}

	log := s.log.With().Str("run_id", res.RunID).Str("mode", mode).Logger()

	compRecords, notice, err := s.resolveComps(ctx, opts)
	if err != nil {
		return Result{}, err
	}
	res.Comps = compRecords
	res.CompsNotice = notice

	if len(compRecords) > 0 {
		stats := comps.ComputeMarketStats(compRecords)
		res.MarketStats = &stats
	}

	res.ARV = comps.EstimateARV(compRecords, in.FallbackARV())

	terms := in.Rental().Terms()
	res.Scenarios = finance.CompareScenarios(terms.Principal, terms.AnnualRate, terms.TermYears)

	months := opts.ScheduleMonths
	if months <= 0 {
		months = terms.TotalPeriods()
	}
	res.Schedule = finance.Schedule(terms, months)

	switch mode {
	case ModeFlip:
		s.runFlip(&res, in, opts)
	default:
		s.runRental(&res, in, opts)
	}

	log.Info().
		Float64("arv", res.ARV).
		Float64("score", res.Score.Total).
		Int("alerts", len(res.Alerts)).
		Int("comps", len(res.Comps)).
		Msg("Analysis run complete")

	return res, nil
}

// resolveComps fetches and filters comps when the run asks for them.
// Resolution failure is a degraded state, never an abort.
func (s *Service) resolveComps(ctx context.Context, opts Options) ([]comps.Record, string, error) {
	if s.resolver == nil || opts.CompQuery == nil || opts.CompProvider == "" {
		return []comps.Record{}, "", nil
	}

	result, err := s.resolver.Resolve(ctx, *opts.CompQuery, opts.CompProvider, opts.ForceRefresh)
	if err != nil {
		return nil, "", err
	}

	records := result.Comps
	if opts.CompFilters != nil {
		records = comps.Filter(records, *opts.CompFilters)
	}
	return records, result.Notice, nil
}

func (s *Service) runFlip(res *Result, in Inputs, opts Options) {
	metrics := finance.ComputeFlipMetrics(in.Flip(res.ARV))
	res.FlipMetrics = &metrics
	res.Score = scoring.ScoreFlip(metrics)
	res.Alerts = alerts.GenerateFlip(alerts.FlipData{
		Metrics:       metrics,
		PurchasePrice: in.PurchasePrice,
		Market:        opts.Market,
	}, alerts.FlipThresholds{})
}

func (s *Service) runRental(res *Result, in Inputs, opts Options) {
	rental := in.Rental()

	metrics := finance.ComputeRentalMetrics(rental, res.ARV)
	res.RentalMetrics = &metrics

	years := opts.ProjectionYears
	if years <= 0 {
		years = DefaultProjectionYears
	}
	projection := finance.ProjectCashFlows(rental, years)
	res.Projection = &projection
	if rate, ok := finance.IRR(projection.Series, finance.DefaultIRRGuess); ok {
		res.IRR = &rate
	}

	be := finance.ComputeBreakEven(rental)
	res.BreakEven = &be

	var marketData *scoring.MarketData
	if res.MarketStats != nil {
		marketData = &scoring.MarketData{
			AveragePrice:  res.MarketStats.AveragePrice,
			PurchasePrice: in.PurchasePrice,
		}
	}
	res.Score = scoring.ScoreRental(metrics, marketData)

	res.Alerts = alerts.GenerateRental(alerts.RentalData{
		Metrics: metrics,
		Market:  opts.Market,
	}, alerts.RentalThresholds{})
}
