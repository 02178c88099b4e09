// Package pipeline chains the processing stages end to end: load the raw
// survey, filter untrusted rows, normalize prices, resolve locations and
// aggregate per canonical city. Each stage reports its drops as rejections;
// only I/O and setup failures abort a run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/riccardo-malabarba/cost-of-living/internal/aggregator"
	"github.com/riccardo-malabarba/cost-of-living/internal/common"
	"github.com/riccardo-malabarba/cost-of-living/internal/config"
	"github.com/riccardo-malabarba/cost-of-living/internal/georesolver"
	"github.com/riccardo-malabarba/cost-of-living/internal/logging"
	"github.com/riccardo-malabarba/cost-of-living/internal/models"
	"github.com/riccardo-malabarba/cost-of-living/internal/normalizer"
	"github.com/riccardo-malabarba/cost-of-living/internal/qualityfilter"
	"github.com/riccardo-malabarba/cost-of-living/internal/rawsurvey"
	"github.com/riccardo-malabarba/cost-of-living/internal/store"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Summary reports what a run did: how many rows came in, how many cities came
// out and every dropped row with its reason.
type Summary struct {
	RawRows    int
	Cities     int
	Rejections []models.Rejection
}

// RejectionsByReason counts the dropped rows per reason.
func (s *Summary) RejectionsByReason() map[models.RejectReason]int {
	return models.CountByReason(s.Rejections)
}

// Pipeline holds the configured stages of one processing run.
type Pipeline struct {
	cfg      *config.Config
	resolver *georesolver.Resolver
	cache    *store.GeoCache
}

// New builds a pipeline from the application configuration. The geocode cache
// file is loaded here; a missing file just means an empty cache.
func New(cfg *config.Config, logger logging.Logger) (*Pipeline, error) {
	cache := store.NewGeoCache(cfg.Geocoder.CacheFile)
	if err := cache.Load(); err != nil {
		return nil, fmt.Errorf("error loading geocode cache: %w", err)
	}

	geo := georesolver.NewNominatim(
		cfg.Geocoder.BaseURL,
		cfg.Geocoder.UserAgent,
		time.Duration(cfg.Geocoder.TimeoutSeconds)*time.Second,
		time.Duration(cfg.Geocoder.MinIntervalMillis)*time.Millisecond,
	)

	resolver := georesolver.NewResolver(
		geo,
		cache,
		logger,
		cfg.Geocoder.Workers,
		time.Duration(cfg.Geocoder.TimeoutSeconds)*time.Second,
	)

	return &Pipeline{cfg: cfg, resolver: resolver, cache: cache}, nil
}

// NewWithResolver builds a pipeline around an existing resolver. Used by tests
// to substitute the network geocoder.
func NewWithResolver(cfg *config.Config, resolver *georesolver.Resolver) *Pipeline {
	return &Pipeline{cfg: cfg, resolver: resolver}
}

// Run processes the raw survey at inputFile and writes the processed dataset
// to outputFile.
func (p *Pipeline) Run(ctx context.Context, inputFile, outputFile string) (*Summary, error) {
	log.WithFields(logrus.Fields{
		logging.FieldInputFile:  inputFile,
		logging.FieldOutputFile: outputFile,
	}).Info("Starting pipeline run")

	records, summary, err := p.Process(ctx, inputFile)
	if err != nil {
		return nil, err
	}

	if err := common.WriteCSVFile(records, outputFile); err != nil {
		return nil, err
	}

	return summary, nil
}

// Process runs every stage on the raw survey at inputFile and returns the
// canonical city records without writing them anywhere.
func (p *Pipeline) Process(ctx context.Context, inputFile string) ([]models.CanonicalCityRecord, *Summary, error) {
	raw, err := rawsurvey.ParseFile(inputFile)
	if err != nil {
		return nil, nil, err
	}

	summary := &Summary{RawRows: len(raw)}

	kept, rejected := qualityfilter.Filter(raw, p.cfg.Pipeline.Countries)
	summary.Rejections = append(summary.Rejections, rejected...)

	rate := decimal.NewFromFloat(p.cfg.Pipeline.USDToEURRate)
	survey, rejected := normalizer.Normalize(kept, rate)
	summary.Rejections = append(summary.Rejections, rejected...)

	resolved, rejected := p.resolver.Resolve(ctx, survey)
	summary.Rejections = append(summary.Rejections, rejected...)

	if p.cache != nil {
		if err := p.cache.Save(); err != nil {
			log.WithError(err).Warn("Failed to save geocode cache")
		}
	}

	records, rejected := aggregator.Aggregate(resolved)
	summary.Rejections = append(summary.Rejections, rejected...)
	summary.Cities = len(records)

	for reason, count := range summary.RejectionsByReason() {
		log.WithFields(logrus.Fields{
			logging.FieldReason: reason,
			logging.FieldCount:  count,
		}).Info("Rows dropped")
	}
	log.WithFields(logrus.Fields{
		logging.FieldCount:   summary.Cities,
		logging.FieldDropped: len(summary.Rejections),
	}).Info("Pipeline run finished")

	return records, summary, nil
}
