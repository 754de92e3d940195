package services

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"skylens/verdant/internal/common"
	"skylens/verdant/internal/constants"
	"skylens/verdant/internal/db/repositories"
	"skylens/verdant/internal/emissions"
	"skylens/verdant/internal/ingest"
	"skylens/verdant/internal/logging"
	"skylens/verdant/internal/metrics"
	"skylens/verdant/internal/models/dtos"
	"skylens/verdant/internal/models/entities"
	gormModels "skylens/verdant/internal/models/gorm"
)

// ErrDatasetNotFound is returned for operations against an unknown dataset ID.
var ErrDatasetNotFound = errors.New("dataset not found")

// FlightStore abstracts flight record persistence so services can be
// tested without Postgres.
type FlightStore interface {
	InsertBatch(ctx context.Context, datasetID string, records []entities.FlightRecord) error
	FindByDataset(ctx context.Context, datasetID string) ([]entities.FlightRecord, error)
	DeleteByDataset(ctx context.Context, datasetID string) error
}

// Precomputer receives dataset IDs whose cached aggregates should be
// rebuilt. The worker package provides the running implementation.
type Precomputer interface {
	Enqueue(datasetID string)
}

// DatasetService owns the ingestion boundary: uploads, synthetic
// generation, and dataset lifecycle.
type DatasetService struct {
	datasets   *repositories.DatasetRepository
	flights    FlightStore
	cache      common.CacheInterface
	metricsReg *metrics.MetricsRegistry
	calcCfg    *emissions.Config
	precompute Precomputer
}

func NewDatasetService(
	datasets *repositories.DatasetRepository,
	flights FlightStore,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
	calcCfg *emissions.Config,
) *DatasetService {
	return &DatasetService{
		datasets:   datasets,
		flights:    flights,
		cache:      cache,
		metricsReg: metricsReg,
		calcCfg:    calcCfg,
	}
}

// SetPrecomputer wires the cache-warming worker in after construction;
// the worker needs the analytics service, which needs this service's
// stores, so the cycle is broken here.
func (s *DatasetService) SetPrecomputer(p Precomputer) {
	s.precompute = p
}

// IngestCSV parses, validates and stores an uploaded dataset. Individual
// bad rows become RowErrors in the summary; only a dataset with no data
// rows at all is rejected outright.
func (s *DatasetService) IngestCSV(ctx context.Context, name string, r io.Reader) (*dtos.DatasetSummary, error) {
	parsed, err := ingest.ParseCSV(r, s.calcCfg)
	if err != nil {
		return nil, err
	}
	if len(parsed.Records) == 0 && len(parsed.RowErrors) == 0 {
		return nil, &emissions.EmptyDatasetError{}
	}

	dataset := &gormModels.Dataset{
		ID:           uuid.NewString(),
		Name:         name,
		Source:       string(constants.DatasetSourceUpload),
		RowsAccepted: len(parsed.Records),
		RowsRejected: len(parsed.RowErrors),
	}
	if err := s.store(ctx, dataset, parsed.Records); err != nil {
		return nil, err
	}

	s.bumpIngestMetrics(string(constants.DatasetSourceUpload), len(parsed.Records), len(parsed.RowErrors))
	logging.Info("Dataset ingested",
		"dataset_id", dataset.ID,
		"rows_accepted", dataset.RowsAccepted,
		"rows_rejected", dataset.RowsRejected,
	)

	return s.summarize(dataset, parsed.RowErrors), nil
}

// GenerateSynthetic builds and stores a reproducible synthetic dataset.
func (s *DatasetService) GenerateSynthetic(ctx context.Context, name string, flights int, seed int64) (*dtos.DatasetSummary, error) {
	if flights <= 0 {
		flights = 1000
	}
	records := ingest.Generate(flights, seed, s.calcCfg)

	dataset := &gormModels.Dataset{
		ID:           uuid.NewString(),
		Name:         name,
		Source:       string(constants.DatasetSourceSynthetic),
		RowsAccepted: len(records),
		Seed:         &seed,
	}
	if err := s.store(ctx, dataset, records); err != nil {
		return nil, err
	}

	s.bumpIngestMetrics(string(constants.DatasetSourceSynthetic), len(records), 0)
	logging.Info("Synthetic dataset generated",
		"dataset_id", dataset.ID,
		"flights", len(records),
		"seed", seed,
	)

	return s.summarize(dataset, nil), nil
}

func (s *DatasetService) store(ctx context.Context, dataset *gormModels.Dataset, records []entities.FlightRecord) error {
	if err := s.datasets.Create(ctx, dataset); err != nil {
		return err
	}
	if err := s.flights.InsertBatch(ctx, dataset.ID, records); err != nil {
		// Roll the metadata row back so no half-visible dataset remains.
		_ = s.datasets.Delete(ctx, dataset.ID)
		return err
	}

	if s.precompute != nil {
		s.precompute.Enqueue(dataset.ID)
	}
	return nil
}

// List returns summaries of every stored dataset, newest first.
func (s *DatasetService) List(ctx context.Context) ([]dtos.DatasetSummary, error) {
	rows, err := s.datasets.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dtos.DatasetSummary, 0, len(rows))
	for i := range rows {
		out = append(out, *s.summarize(&rows[i], nil))
	}
	return out, nil
}

// Delete removes a dataset, its records and every cached result for it.
func (s *DatasetService) Delete(ctx context.Context, datasetID string) error {
	dataset, err := s.datasets.GetByID(ctx, datasetID)
	if err != nil {
		return err
	}
	if dataset == nil {
		return ErrDatasetNotFound
	}

	if err := s.flights.DeleteByDataset(ctx, datasetID); err != nil {
		return err
	}
	if err := s.datasets.Delete(ctx, datasetID); err != nil {
		return err
	}
	s.cache.DeletePrefix(common.DatasetCachePrefix(datasetID))
	return nil
}

func (s *DatasetService) summarize(dataset *gormModels.Dataset, rowErrors []ingest.RowError) *dtos.DatasetSummary {
	return &dtos.DatasetSummary{
		ID:           dataset.ID,
		Name:         dataset.Name,
		Source:       dataset.Source,
		RowsAccepted: dataset.RowsAccepted,
		RowsRejected: dataset.RowsRejected,
		RowErrors:    rowErrors,
		CreatedAt:    dataset.CreatedAt,
	}
}

func (s *DatasetService) bumpIngestMetrics(source string, accepted, rejected int) {
	if s.metricsReg == nil {
		return
	}
	s.metricsReg.DatasetsIngestedTotal.WithLabelValues(source).Inc()
	s.metricsReg.RowsAcceptedTotal.Add(float64(accepted))
	s.metricsReg.RowsRejectedTotal.Add(float64(rejected))
}
