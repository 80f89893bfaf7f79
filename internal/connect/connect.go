package connect

import (
	"fmt"
	"os"

	"github.com/agentx-labs/skilltool/internal/manifest"
	"github.com/agentx-labs/skilltool/internal/platform"
	"github.com/rs/zerolog"
)

// Policy selects what happens when a manifest is missing required fields.
type Policy int

const (
	// PolicyWarn reports each missing field and registers the manifest anyway.
	PolicyWarn Policy = iota
	// PolicyAbort reports each missing field and stops before writing.
	PolicyAbort
)

// ParsePolicy converts a configuration value ("warn" or "abort") to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "warn":
		return PolicyWarn, nil
	case "abort":
		return PolicyAbort, nil
	default:
		return PolicyWarn, fmt.Errorf("unknown validation policy %q", s)
	}
}

func (p Policy) String() string {
	if p == PolicyAbort {
		return "abort"
	}
	return "warn"
}

// Stage is a step of a registration.
type Stage string

const (
	StageStart            Stage = "start"
	StagePathsResolved    Stage = "paths-resolved"
	StageManifestLoaded   Stage = "manifest-loaded"
	StageAggregateLoaded  Stage = "aggregate-loaded"
	StageValidated        Stage = "validated"
	StageDuplicateChecked Stage = "duplicate-checked"
	StageMerged           Stage = "merged"
	StagePersisted        Stage = "persisted"
	StageDone             Stage = "done"
)

// Options configures one registration.
type Options struct {
	// ManifestPath and SkillsPath are the raw command-line values.
	ManifestPath string
	SkillsPath   string

	// WorkDir anchors relative paths. Empty means the process working directory.
	WorkDir string

	Policy Policy

	// DryRun performs every step except writing the skills file.
	DryRun bool
}

// Reporter receives human-readable status lines.
type Reporter interface {
	Warn(msg string)
	Progress(msg string)
	Success(msg string)
}

// Result describes a completed registration.
type Result struct {
	Name         string
	ManifestPath string
	SkillsPath   string
	Warnings     []manifest.MissingFieldWarning
	Count        int    // skills in the collection after the append
	Document     []byte // the skills file contents that were (or would be) written
	Written      bool
}

// Registrar appends skill manifests to an assistant skills file.
type Registrar struct {
	opts   Options
	rep    Reporter
	logger zerolog.Logger
}

// New returns a Registrar for opts.
func New(opts Options, rep Reporter, logger zerolog.Logger) *Registrar {
	return &Registrar{opts: opts, rep: rep, logger: logger}
}

// Connect runs the registration. Nothing is written when it returns an error.
func (r *Registrar) Connect() (*Result, error) {
	r.stage(StageStart).Str("policy", r.opts.Policy.String()).Bool("dry_run", r.opts.DryRun).Msg("registration started")

	workDir := r.opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
		workDir = wd
	}

	manifestPath, skillsPath, err := resolvePaths(workDir, r.opts.ManifestPath, r.opts.SkillsPath)
	if err != nil {
		return nil, err
	}
	r.stage(StagePathsResolved).Str("manifest", manifestPath).Str("skills", skillsPath).Msg("paths resolved")

	m, err := manifest.LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	r.stage(StageManifestLoaded).Str("name", m.Name).Msg("manifest loaded")

	skills, err := manifest.LoadCollection(skillsPath)
	if err != nil {
		return nil, err
	}
	r.stage(StageAggregateLoaded).Int("count", skills.Len()).Msg("assistant skills loaded")

	warnings := manifest.Check(m)
	for _, w := range warnings {
		r.rep.Warn(w.String())
	}
	r.stage(StageValidated).Int("missing", len(warnings)).Msg("manifest checked")
	if len(warnings) > 0 && r.opts.Policy == PolicyAbort {
		return nil, &ValidationError{Path: manifestPath, Missing: warnings}
	}

	if idx := skills.Find(m); idx >= 0 {
		r.stage(StageDuplicateChecked).Int("index", idx).Msg("name already registered")
		return nil, &DuplicateSkillError{Name: m.Name}
	}
	r.stage(StageDuplicateChecked).Msg("name is free")

	r.rep.Progress(fmt.Sprintf("Appending '%s' manifest to your assistant's skills configuration file.", m.Name))
	skills.Append(m)
	r.stage(StageMerged).Int("count", skills.Len()).Msg("manifest appended")

	doc, err := skills.Marshal()
	if err != nil {
		return nil, err
	}

	res := &Result{
		Name:         m.Name,
		ManifestPath: manifestPath,
		SkillsPath:   skillsPath,
		Warnings:     warnings,
		Count:        skills.Len(),
		Document:     doc,
	}

	if r.opts.DryRun {
		r.rep.Success(fmt.Sprintf("Dry run: '%s' manifest was not written to %s.", m.Name, skillsPath))
		r.stage(StageDone).Msg("dry run finished")
		return res, nil
	}

	if err := platform.WriteFileAtomic(skillsPath, doc); err != nil {
		return nil, fmt.Errorf("writing assistant skills: %w", err)
	}
	res.Written = true
	r.stage(StagePersisted).Int("bytes", len(doc)).Msg("assistant skills written")

	r.rep.Success(fmt.Sprintf("Successfully appended '%s' manifest to your assistant's skills configuration file!", m.Name))
	r.stage(StageDone).Msg("registration finished")
	return res, nil
}

func (r *Registrar) stage(s Stage) *zerolog.Event {
	return r.logger.Debug().Str("stage", string(s))
}
