package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/locgroup/internal/debug"
	"github.com/locgroup/internal/engine"
	"github.com/locgroup/internal/location"
	"github.com/locgroup/internal/profile"
	"github.com/locgroup/internal/store"
)

// Paths names the destination of each artifact
type Paths struct {
	Locations string
	Groups    string
	Valid     string
}

// Pipeline runs grouping jobs and persists their artifacts
type Pipeline struct {
	engine    *engine.Engine
	store     *store.Store
	logger    *zap.Logger
	paths     Paths
	overwrite bool
}

// New creates a pipeline writing to paths. With overwrite false, existing
// artifacts are left untouched.
func New(logger *zap.Logger, paths Paths, overwrite bool) *Pipeline {
	logger = debug.OrNop(logger)
	return &Pipeline{
		engine:    engine.NewEngine(logger),
		store:     store.New(logger),
		logger:    logger,
		paths:     paths,
		overwrite: overwrite,
	}
}

// Report summarises one job
type Report struct {
	Path     string
	Written  bool
	Records  int
	Fallback bool
}

// Locations writes the unique-locations artifact
func (p *Pipeline) Locations(profiles []profile.Profile) ([]location.Descriptor, Report, error) {
	unique := p.engine.Locations(profiles)
	written, err := p.store.Write(unique, p.paths.Locations, p.overwrite)
	if err != nil {
		return nil, Report{}, fmt.Errorf("unique locations: %w", err)
	}
	return unique, Report{Path: p.paths.Locations, Written: written, Records: len(unique)}, nil
}

// Groups writes the plain location-grouping artifact
func (p *Pipeline) Groups(profiles []profile.Profile) (engine.Result, Report, error) {
	return p.group(profiles, p.paths.Groups, engine.Options{})
}

// Valid writes the validity-grouping artifact
func (p *Pipeline) Valid(profiles []profile.Profile, lookupID string) (engine.Result, Report, error) {
	return p.group(profiles, p.paths.Valid, engine.Options{FilterValid: true, LookupID: lookupID})
}

func (p *Pipeline) group(profiles []profile.Profile, path string, opts engine.Options) (engine.Result, Report, error) {
	result := p.engine.Group(profiles, opts)
	written, err := p.store.Write(result.Artifact(), path, p.overwrite)
	if err != nil {
		return engine.Result{}, Report{}, fmt.Errorf("location grouping: %w", err)
	}

	report := Report{Path: path, Written: written, Records: len(result.Records), Fallback: result.Fallback}
	if result.Fallback {
		report.Records = len(result.Profiles)
	}
	return result, report, nil
}

// All runs the three jobs in order and stops at the first failure
func (p *Pipeline) All(profiles []profile.Profile, lookupID string) ([]Report, error) {
	defer debug.Timing(p.logger, "pipeline")()

	_, locReport, err := p.Locations(profiles)
	if err != nil {
		return nil, err
	}
	_, groupReport, err := p.Groups(profiles)
	if err != nil {
		return []Report{locReport}, err
	}
	_, validReport, err := p.Valid(profiles, lookupID)
	if err != nil {
		return []Report{locReport, groupReport}, err
	}
	return []Report{locReport, groupReport, validReport}, nil
}

// LoadAndRun decodes the profiles at inputPath and runs every job. Input
// errors stop the run before anything is written.
func (p *Pipeline) LoadAndRun(inputPath, lookupID string) ([]Report, error) {
	profiles, err := profile.LoadFile(inputPath)
	if err != nil {
		return nil, err
	}
	p.logger.Info("profiles loaded", zap.String("path", inputPath), zap.Int("count", len(profiles)))
	return p.All(profiles, lookupID)
}
