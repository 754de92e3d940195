package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"skylens/verdant/internal/common"
	"skylens/verdant/internal/emissions"
	"skylens/verdant/internal/metrics"
	"skylens/verdant/internal/models/dtos"
	"skylens/verdant/internal/models/entities"
)

const (
	recordCacheTTL = 10 * time.Minute
	resultCacheTTL = 10 * time.Minute
)

// AnalyticsService runs the calculator over stored datasets. The
// calculator itself stays pure; this layer adds record loading, caching
// and metrics around it.
type AnalyticsService struct {
	flights    FlightStore
	cache      common.CacheInterface
	scenarios  *ScenarioConfigService
	metricsReg *metrics.MetricsRegistry
	calcCfg    *emissions.Config
}

func NewAnalyticsService(
	flights FlightStore,
	cache common.CacheInterface,
	scenarios *ScenarioConfigService,
	metricsReg *metrics.MetricsRegistry,
	calcCfg *emissions.Config,
) *AnalyticsService {
	return &AnalyticsService{
		flights:    flights,
		cache:      cache,
		scenarios:  scenarios,
		metricsReg: metricsReg,
		calcCfg:    calcCfg,
	}
}

// Records loads a dataset's flight records, cache-aside.
func (s *AnalyticsService) Records(ctx context.Context, datasetID string) ([]entities.FlightRecord, error) {
	key := common.DatasetCachePrefix(datasetID) + "records"
	if val, found := s.cache.Get(key); found {
		if records, ok := common.TypedValue[[]entities.FlightRecord](val); ok {
			s.bumpCache("records", true)
			return records, nil
		}
	}
	s.bumpCache("records", false)

	records, err := s.flights.FindByDataset(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", datasetID, err)
	}
	if len(records) == 0 {
		return nil, ErrDatasetNotFound
	}
	s.cache.Set(key, records, recordCacheTTL)
	return records, nil
}

// Baseline computes (or re-serves) baseline aggregates for a dataset,
// optionally narrowed by filters. Filtering everything out yields a
// zero-valued result, matching the calculator's contract.
func (s *AnalyticsService) Baseline(ctx context.Context, datasetID string, opts emissions.FilterOptions) (*emissions.Result, error) {
	key := common.DatasetCachePrefix(datasetID) + "baseline:" + opts.Key()
	if val, found := s.cache.Get(key); found {
		if cached, ok := common.TypedValue[emissions.Result](val); ok {
			s.bumpCache("results", true)
			return &cached, nil
		}
	}
	s.bumpCache("results", false)

	records, err := s.Records(ctx, datasetID)
	if err != nil {
		return nil, err
	}

	done := s.observe("baseline")
	res, err := emissions.ComputeBaseline(emissions.Filter(records, opts), s.calcCfg)
	done(err)
	if err != nil {
		// All rows filtered out is a zero result, not a failure.
		if _, empty := err.(*emissions.EmptyDatasetError); empty && !opts.IsZero() {
			res = &emissions.Result{}
		} else {
			return nil, err
		}
	}
	s.cache.Set(key, *res, resultCacheTTL)
	return res, nil
}

// Compare runs one named scenario against a dataset and values the delta.
func (s *AnalyticsService) Compare(ctx context.Context, datasetID, scenarioName string, opts emissions.FilterOptions) (*dtos.ComparisonResponse, error) {
	scenario, ok := s.scenarios.Get(scenarioName)
	if !ok {
		return nil, &emissions.InvalidScenarioError{Scenario: scenarioName, Reason: "not configured"}
	}

	key := common.DatasetCachePrefix(datasetID) + "compare:" + scenarioName + ":" + opts.Key()
	if val, found := s.cache.Get(key); found {
		if cached, ok := common.TypedValue[dtos.ComparisonResponse](val); ok {
			s.bumpCache("results", true)
			return &cached, nil
		}
	}
	s.bumpCache("results", false)

	records, err := s.Records(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	filtered := emissions.Filter(records, opts)
	if len(filtered) == 0 && !opts.IsZero() {
		resp := dtos.ComparisonResponse{Comparison: emissions.Comparison{Scenario: scenarioName}}
		s.cache.Set(key, resp, resultCacheTTL)
		return &resp, nil
	}

	done := s.observe("compare")
	cmp, err := emissions.Compare(filtered, scenario, s.calcCfg)
	done(err)
	if err != nil {
		return nil, err
	}

	resp := dtos.ComparisonResponse{
		Comparison: *cmp,
		Impact:     emissions.ComputeFinancialImpact(cmp.DeltaCO2Kg, s.calcCfg),
	}
	s.cache.Set(key, resp, resultCacheTTL)
	return &resp, nil
}

// CompareAll sweeps every configured scenario concurrently. Scenario
// applications are pure, so the goroutines share the record slice without
// coordination.
func (s *AnalyticsService) CompareAll(ctx context.Context, datasetID string, opts emissions.FilterOptions) (*dtos.ScenarioSweepResponse, error) {
	key := common.DatasetCachePrefix(datasetID) + "sweep:" + opts.Key()
	if val, found := s.cache.Get(key); found {
		if cached, ok := common.TypedValue[dtos.ScenarioSweepResponse](val); ok {
			s.bumpCache("results", true)
			return &cached, nil
		}
	}
	s.bumpCache("results", false)

	records, err := s.Records(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	filtered := emissions.Filter(records, opts)
	if len(filtered) == 0 && !opts.IsZero() {
		resp := dtos.ScenarioSweepResponse{DatasetID: datasetID, Comparisons: []dtos.ComparisonResponse{}}
		s.cache.Set(key, resp, resultCacheTTL)
		return &resp, nil
	}

	scenarios := s.scenarios.All()
	results := make([]dtos.ComparisonResponse, len(scenarios))

	g, _ := errgroup.WithContext(ctx)
	for i, scenario := range scenarios {
		i, scenario := i, scenario
		g.Go(func() error {
			done := s.observe("compare")
			cmp, err := emissions.Compare(filtered, scenario, s.calcCfg)
			done(err)
			if err != nil {
				return err
			}
			results[i] = dtos.ComparisonResponse{
				Comparison: *cmp,
				Impact:     emissions.ComputeFinancialImpact(cmp.DeltaCO2Kg, s.calcCfg),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Biggest saver first; name breaks ties so sweeps are stable.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Comparison.DeltaCO2Kg != results[j].Comparison.DeltaCO2Kg {
			return results[i].Comparison.DeltaCO2Kg > results[j].Comparison.DeltaCO2Kg
		}
		return results[i].Comparison.Scenario < results[j].Comparison.Scenario
	})

	resp := dtos.ScenarioSweepResponse{DatasetID: datasetID, Comparisons: results}
	s.cache.Set(key, resp, resultCacheTTL)
	return &resp, nil
}

// RankRoutes orders a dataset's routes by what the scenario would save on
// them.
func (s *AnalyticsService) RankRoutes(ctx context.Context, datasetID, scenarioName string) ([]emissions.RouteSavings, error) {
	scenario, ok := s.scenarios.Get(scenarioName)
	if !ok {
		return nil, &emissions.InvalidScenarioError{Scenario: scenarioName, Reason: "not configured"}
	}
	records, err := s.Records(ctx, datasetID)
	if err != nil {
		return nil, err
	}

	done := s.observe("rank_routes")
	ranking, err := emissions.RankRoutesBySavings(records, scenario, s.calcCfg)
	done(err)
	return ranking, err
}

// RouteStats summarizes observed per-route efficiency.
func (s *AnalyticsService) RouteStats(ctx context.Context, datasetID string) (*emissions.RouteStatsSummary, error) {
	records, err := s.Records(ctx, datasetID)
	if err != nil {
		return nil, err
	}

	done := s.observe("route_stats")
	summary, err := emissions.RouteStats(records, s.calcCfg)
	done(err)
	return summary, err
}

// FlightLevels reports the most efficient observed cruise altitudes.
func (s *AnalyticsService) FlightLevels(ctx context.Context, datasetID, aircraftType string) ([]emissions.FlightLevelStats, error) {
	records, err := s.Records(ctx, datasetID)
	if err != nil {
		return nil, err
	}

	done := s.observe("flight_levels")
	stats, err := emissions.OptimalFlightLevels(records, aircraftType, s.calcCfg)
	done(err)
	return stats, err
}

// FleetReplacement evaluates aircraft substitutions over a dataset.
func (s *AnalyticsService) FleetReplacement(ctx context.Context, datasetID string, replacements []emissions.FleetReplacement) (*emissions.FleetReplacementResult, error) {
	if len(replacements) == 0 {
		replacements = emissions.DefaultFleetReplacements()
	}
	records, err := s.Records(ctx, datasetID)
	if err != nil {
		return nil, err
	}

	done := s.observe("fleet_replacement")
	result, err := emissions.AnalyzeFleetReplacement(records, replacements, s.calcCfg)
	done(err)
	return result, err
}

// observe starts a computation timer; the returned func records duration
// and outcome.
func (s *AnalyticsService) observe(operation string) func(error) {
	if s.metricsReg == nil {
		return func(error) {}
	}
	start := time.Now()
	return func(err error) {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		s.metricsReg.ComputationsTotal.WithLabelValues(operation, outcome).Inc()
		s.metricsReg.ComputationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

func (s *AnalyticsService) bumpCache(pattern string, hit bool) {
	if s.metricsReg == nil {
		return
	}
	if hit {
		s.metricsReg.CacheHitsTotal.WithLabelValues(pattern).Inc()
	} else {
		s.metricsReg.CacheMissesTotal.WithLabelValues(pattern).Inc()
	}
}
