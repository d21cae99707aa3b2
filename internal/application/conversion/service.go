// Package conversion turns a SMILES string into a 3D structure, a viewer link
// and the drug-likeness assessment of the molecule.
package conversion

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/turtacn/molforge/internal/domain/druglike"
	"github.com/turtacn/molforge/internal/domain/molecule"
	"github.com/turtacn/molforge/internal/infrastructure/chem/pdb"
	"github.com/turtacn/molforge/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/molforge/pkg/errors"
)

// Conversion outcomes recorded in metrics.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalidInput = "invalid_input"
	OutcomeError        = "error"
)

// StructureCache stores generated structures by content key.
type StructureCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func(ctx context.Context) (interface{}, error)) error
}

// Archive keeps PDB files in object storage.
type Archive interface {
	Put(ctx context.Context, key, smiles string, pdb []byte) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	PresignedURL(ctx context.Context, key string) (string, time.Time, error)
}

// Publisher announces completed conversions.
type Publisher interface {
	PublishConversion(ctx context.Context, e kafka.ConversionEvent) error
}

// Inspector summarises a PDB block.
type Inspector interface {
	Inspect(ctx context.Context, block []byte) (*pdb.Summary, error)
}

// Config tunes the service.
type Config struct {
	MaxSMILESLength int
	ViewerBaseURL   string
	CacheTTL        time.Duration
}

// Option attaches an optional collaborator.
type Option func(*Service)

func WithCache(c StructureCache) Option { return func(s *Service) { s.cache = c } }
func WithArchive(a Archive) Option      { return func(s *Service) { s.archive = a } }
func WithPublisher(p Publisher) Option  { return func(s *Service) { s.publisher = p } }
func WithInspector(i Inspector) Option  { return func(s *Service) { s.inspector = i } }
func WithMetrics(m *prometheus.AppMetrics) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// Service is safe for concurrent use.
type Service struct {
	provider  molecule.StructureProvider
	evaluator *druglike.Evaluator
	cfg       Config

	cache     StructureCache
	archive   Archive
	publisher Publisher
	inspector Inspector
	metrics   *prometheus.AppMetrics

	group  singleflight.Group
	now    func() time.Time
	logger logging.Logger
}

// NewService creates a Service. provider and evaluator are required.
func NewService(provider molecule.StructureProvider, evaluator *druglike.Evaluator, cfg Config, logger logging.Logger, opts ...Option) (*Service, error) {
	if provider == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "structure provider is required")
	}
	if evaluator == nil {
		evaluator = druglike.NewDefaultEvaluator()
	}
	if cfg.MaxSMILESLength <= 0 {
		cfg.MaxSMILESLength = molecule.DefaultMaxSMILESLength
	}
	if cfg.ViewerBaseURL == "" {
		cfg.ViewerBaseURL = DefaultViewerBaseURL
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	s := &Service{
		provider:  provider,
		evaluator: evaluator,
		cfg:       cfg,
		metrics:   prometheus.NewNoopAppMetrics(),
		now:       time.Now,
		logger:    logger.Named("conversion"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Convert runs the full pipeline for one submission. Invalid input returns
// the MOL_001 error before any structure is generated or rule evaluated.
func (s *Service) Convert(ctx context.Context, raw string) (*Report, error) {
	smiles, err := molecule.NormalizeSMILES(raw, s.cfg.MaxSMILESLength)
	if err != nil {
		prometheus.RecordConversion(s.metrics, OutcomeInvalidInput)
		return nil, err
	}

	key := molecule.ContentKey(smiles)
	log := s.logger.With(logging.String("structure_id", key))

	st, cached, err := s.loadStructure(ctx, key, smiles)
	if err != nil {
		if errors.IsInvalidSMILES(err) {
			prometheus.RecordConversion(s.metrics, OutcomeInvalidInput)
			log.Info("engine rejected smiles", logging.String("smiles", smiles))
		} else {
			prometheus.RecordConversion(s.metrics, OutcomeError)
			log.Error("structure generation failed", logging.Err(err))
		}
		return nil, err
	}

	report := &Report{
		ID:          key,
		SMILES:      smiles,
		Descriptors: st.Descriptors,
		Structure: Artifact{
			Filename: molecule.PDBFilename,
			MIMEType: molecule.PDBMIMEType,
			PDB:      string(st.PDB),
		},
		Cached:      cached,
		GeneratedAt: s.now().UTC(),
	}

	if s.inspector != nil {
		if sum, err := s.inspector.Inspect(ctx, st.PDB); err != nil {
			log.Warn("pdb inspection failed", logging.Err(err))
		} else {
			report.Structure.AtomCount = sum.AtomCount
			report.Structure.HeavyAtomCount = sum.HeavyAtomCount
			report.Structure.Formula = sum.Formula
			report.Structure.Elements = sum.Elements
		}
	}

	report.Assessment = s.evaluator.Evaluate(st.Descriptors)
	for _, r := range report.Assessment.Results() {
		prometheus.RecordRuleVerdict(s.metrics, string(r.Rule), r.Passed)
	}

	report.ViewerURL = ViewerURL(s.cfg.ViewerBaseURL, st.PDB)

	s.archiveStructure(ctx, report, log)
	s.publish(ctx, report, log)

	prometheus.RecordConversion(s.metrics, OutcomeSuccess)
	log.Info("conversion completed",
		logging.Bool("cached", cached),
		logging.Int("atoms", report.Structure.AtomCount),
		logging.Bool("all_passed", report.Assessment.AllPassed()))
	return report, nil
}

type loadResult struct {
	structure *molecule.Structure
	cached    bool
}

// loadStructure returns the structure for key and whether it came from the
// cache. Concurrent requests for the same key share one load, which runs
// detached from any single caller so that a caller going away does not fail
// the others. Each caller still returns as soon as its own ctx is done.
func (s *Service) loadStructure(ctx context.Context, key, smiles string) (*molecule.Structure, bool, error) {
	ch := s.group.DoChan(key, func() (interface{}, error) {
		return s.load(context.WithoutCancel(ctx), key, smiles)
	})
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, false, r.Err
		}
		res := r.Val.(loadResult)
		if s.cache != nil {
			prometheus.RecordCacheAccess(s.metrics, res.cached)
		}
		return res.structure, res.cached, nil
	}
}

// load runs once per key for all concurrent callers. The provider bounds the
// generation with its own timeout.
func (s *Service) load(ctx context.Context, key, smiles string) (loadResult, error) {
	if s.cache == nil {
		st, err := s.generate(ctx, smiles)
		if err != nil {
			return loadResult{}, err
		}
		return loadResult{structure: st}, nil
	}

	var (
		st        molecule.Structure
		generated bool
	)
	err := s.cache.GetOrSet(ctx, key, &st, s.cfg.CacheTTL, func(ctx context.Context) (interface{}, error) {
		generated = true
		return s.generate(ctx, smiles)
	})
	if err != nil {
		return loadResult{}, err
	}
	if err := st.Validate(); err != nil {
		return loadResult{}, err
	}
	return loadResult{structure: &st, cached: !generated}, nil
}

func (s *Service) generate(ctx context.Context, smiles string) (*molecule.Structure, error) {
	timer := prometheus.NewTimer(s.metrics.StructureGenerationTime.WithLabelValues(s.provider.Name()))
	st, err := s.provider.Generate(ctx, smiles)
	d := timer.ObserveDuration()
	if err != nil {
		if !errors.IsInvalidSMILES(err) {
			s.metrics.ChemBackendFailuresTotal.WithLabelValues(s.provider.Name(), string(errors.GetCode(err))).Inc()
		}
		return nil, err
	}
	if err := st.Validate(); err != nil {
		return nil, err
	}
	s.logger.Debug("structure generated",
		logging.String("driver", s.provider.Name()),
		logging.Duration("took", d),
		logging.Int("pdb_bytes", len(st.PDB)))
	return st, nil
}

func (s *Service) archiveStructure(ctx context.Context, r *Report, log logging.Logger) {
	if s.archive == nil {
		return
	}
	_, err := s.archive.Put(ctx, r.ID, r.SMILES, r.PDB())
	prometheus.RecordArchive(s.metrics, "put", err)
	if err != nil {
		log.Warn("failed to archive structure", logging.Err(err))
		return
	}
	u, exp, err := s.archive.PresignedURL(ctx, r.ID)
	prometheus.RecordArchive(s.metrics, "presign", err)
	if err != nil {
		log.Warn("failed to presign structure", logging.Err(err))
		return
	}
	r.DownloadURL = u
	r.DownloadExpiresAt = &exp
}

func (s *Service) publish(ctx context.Context, r *Report, log logging.Logger) {
	if s.publisher == nil {
		return
	}
	e := kafka.NewConversionEvent(r.ID, r.SMILES, r.Descriptors, r.Assessment, r.Structure.AtomCount, r.Cached)
	err := s.publisher.PublishConversion(ctx, e)
	prometheus.RecordEventPublish(s.metrics, err)
	if err != nil {
		log.Warn("failed to publish conversion event", logging.String("event_id", e.EventID), logging.Err(err))
	}
}

// Evaluate applies the current thresholds to d without any chemistry.
func (s *Service) Evaluate(d molecule.Descriptors) (druglike.Assessment, error) {
	if err := d.Validate(); err != nil {
		return druglike.Assessment{}, errors.Wrap(err, errors.ErrCodeDescriptorsInvalid, errors.DefaultMessageForCode(errors.ErrCodeDescriptorsInvalid))
	}
	a := s.evaluator.Evaluate(d)
	for _, r := range a.Results() {
		prometheus.RecordRuleVerdict(s.metrics, string(r.Rule), r.Passed)
	}
	return a, nil
}

// Structure returns a previously generated structure, first from the cache
// and then from the archive. Archived structures carry no descriptors.
func (s *Service) Structure(ctx context.Context, key string) (*molecule.Structure, error) {
	if !molecule.IsContentKey(key) {
		return nil, errors.New(errors.ErrCodeStructureNotFound, "structure not found").WithDetail("id=" + key)
	}

	if s.cache != nil {
		var st molecule.Structure
		err := s.cache.Get(ctx, key, &st)
		switch {
		case err == nil && len(st.PDB) > 0:
			prometheus.RecordCacheAccess(s.metrics, true)
			return &st, nil
		case err == nil || errors.IsNotFound(err):
			prometheus.RecordCacheAccess(s.metrics, false)
		default:
			s.logger.Warn("cache read failed", logging.String("structure_id", key), logging.Err(err))
		}
	}

	if s.archive != nil {
		block, err := s.archive.Get(ctx, key)
		prometheus.RecordArchive(s.metrics, "get", err)
		if err == nil {
			return &molecule.Structure{PDB: block}, nil
		}
		if !errors.IsNotFound(err) {
			return nil, err
		}
	}

	return nil, errors.New(errors.ErrCodeStructureNotFound, "structure not found").WithDetail("id=" + key)
}

// Thresholds returns the thresholds in force.
func (s *Service) Thresholds() druglike.Thresholds {
	return s.evaluator.Thresholds()
}

// SetThresholds swaps the thresholds used by later evaluations.
func (s *Service) SetThresholds(t druglike.Thresholds) error {
	if err := s.evaluator.SetThresholds(t); err != nil {
		return err
	}
	s.logger.Info("drug-likeness thresholds updated")
	return nil
}

// ProviderName names the structure provider driver.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

//Personal.AI order the ending
