package config

import (
	"errors"
	"fmt"
	"os"
)

// Validation errors for workload configs.
var (
	// ErrMissingField indicates a required config field is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrUnsupportedVersion indicates an unknown schema version.
	ErrUnsupportedVersion = errors.New("unsupported schema version")

	// ErrAllDisabled indicates every deployment is disabled.
	ErrAllDisabled = errors.New("all deployments are disabled")
)

// ValidateOpts configures workload validation.
type ValidateOpts struct {
	// Streaming indicates output goes to stdout, so output_path is
	// not required.
	Streaming bool

	// CheckFiles also verifies that the chart and the value files of
	// enabled deployments exist on disk. Used by the validate
	// command; rendering surfaces these through helm itself.
	CheckFiles bool

	// RequireEnabledDeployment rejects configs where every
	// deployment is disabled. Rendering treats that as a no-op run
	// instead.
	RequireEnabledDeployment bool
}

// Validate checks the workload against its declared schema and the
// required-field rules. It returns an error naming the offending
// field; the first problem found wins.
func (w *Workload) Validate(opts ValidateOpts) error {
	if !supportedVersion(w.Version) {
		return fmt.Errorf("%w: %q (supported: %v)", ErrUnsupportedVersion, w.Version, SupportedVersions)
	}
	if w.Chart == "" {
		return fmt.Errorf("%w: chart", ErrMissingField)
	}
	if w.ReleaseName == "" {
		return fmt.Errorf("%w: release_name", ErrMissingField)
	}
	if w.OutputPath == "" && !opts.Streaming {
		return fmt.Errorf("%w: output_path", ErrMissingField)
	}
	if len(w.Deployments) == 0 {
		return fmt.Errorf("%w: deployments", ErrMissingField)
	}

	for i, d := range w.Deployments {
		if d.Name == "" {
			return fmt.Errorf("%w: deployments[%d].name", ErrMissingField, i)
		}
	}

	if opts.RequireEnabledDeployment && !w.hasEnabledDeployment() {
		return ErrAllDisabled
	}

	if opts.CheckFiles {
		return w.checkFiles()
	}

	return nil
}

func supportedVersion(version string) bool {
	for _, v := range SupportedVersions {
		if version == v {
			return true
		}
	}
	return false
}

func (w *Workload) hasEnabledDeployment() bool {
	for i := range w.Deployments {
		if w.Deployments[i].IsEnabled() {
			return true
		}
	}
	return false
}

// checkFiles verifies the chart and all referenced value files exist.
// Value files of disabled deployments are skipped.
func (w *Workload) checkFiles() error {
	if _, err := os.Stat(w.Chart); err != nil {
		return fmt.Errorf("chart %q does not exist or is not readable", w.Chart)
	}

	if err := checkValueFiles(w.Values); err != nil {
		return err
	}
	for i := range w.Deployments {
		d := &w.Deployments[i]
		if !d.IsEnabled() {
			continue
		}
		if err := checkValueFiles(d.Values); err != nil {
			return err
		}
	}

	return nil
}

func checkValueFiles(files []string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			return fmt.Errorf("values file %q does not exist or is not readable", f)
		}
	}
	return nil
}
