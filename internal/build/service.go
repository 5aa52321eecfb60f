package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/refdoc/internal/config"
	"git.home.luguber.info/inful/refdoc/internal/generator"
	"git.home.luguber.info/inful/refdoc/internal/linkverify"
	"git.home.luguber.info/inful/refdoc/internal/manifest"
)

// BuildService is the canonical interface for executing documentation builds.
type BuildService interface {
	// Run executes a complete build: load doclets → generate → verify → record.
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest contains all inputs required to execute a documentation build.
type BuildRequest struct {
	// Config is the loaded configuration for this build.
	Config *config.Config

	// ConfigPath is hashed into the manifest. Optional.
	ConfigPath string

	// Options provides command-line overrides of the configuration.
	Options BuildOptions
}

// BuildOptions override configuration entries for one run. Zero values keep the config.
type BuildOptions struct {
	// VerifyLinks checks relative links after generation.
	VerifyLinks bool

	// StrictLinks turns broken links into a failed build.
	StrictLinks bool

	// ManifestPath writes a JSON manifest of the run.
	ManifestPath string

	// MetricsFile writes Prometheus metrics in text format after the run.
	MetricsFile string
}

// BuildResult contains the outcome of a build execution.
type BuildResult struct {
	// Status indicates overall build outcome.
	Status BuildStatus

	// Generation is the generator's report. Nil when doclets failed to load.
	Generation *generator.Result

	// Links is the verification report when verification ran.
	Links *linkverify.Report

	// Manifest is the written manifest, if one was requested.
	Manifest *manifest.GenerationManifest

	// Duration is the total build execution time.
	Duration time.Duration

	// StartTime is when the build started.
	StartTime time.Time

	// EndTime is when the build completed.
	EndTime time.Time
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	// BuildStatusSuccess indicates the build completed successfully.
	BuildStatusSuccess BuildStatus = "success"

	// BuildStatusWarning indicates output was written but links are broken.
	BuildStatusWarning BuildStatus = "warning"

	// BuildStatusFailed indicates the build encountered an error.
	BuildStatusFailed BuildStatus = "failed"

	// BuildStatusCancelled indicates the build was cancelled.
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsTerminal returns true if the status represents a final state.
func (s BuildStatus) IsTerminal() bool {
	return s == BuildStatusSuccess || s == BuildStatusWarning ||
		s == BuildStatusFailed || s == BuildStatusCancelled
}

// IsSuccess returns true if the build wrote its output.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess || s == BuildStatusWarning
}
