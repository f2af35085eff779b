// Package config loads and validates helmsman workload configuration
// files (YAML, TOML, or JSON) into a single canonical model.
package config

// Schema version constants for workload configs.
const (
	// VersionV1 is the legacy schema; output paths omit the release
	// name segment.
	VersionV1 = "v1"

	// VersionV2 is the current schema; every deployment renders to a
	// single manifest file under its release name.
	VersionV2 = "v2"
)

// SupportedVersions lists all schema versions that can be loaded.
var SupportedVersions = []string{VersionV1, VersionV2}

// Workload describes one chart rendered for multiple environments.
type Workload struct {
	// Version is the config schema version (e.g., "v2").
	Version string `yaml:"version" toml:"version" json:"version"`

	// HelmVersion is an optional helm version constraint. It is
	// accepted for forward compatibility but not enforced.
	HelmVersion string `yaml:"helm_version,omitempty" toml:"helm_version,omitempty" json:"helm_version,omitempty"`

	// Enabled toggles rendering of all contained deployments.
	// Missing means enabled.
	Enabled *bool `yaml:"enabled,omitempty" toml:"enabled,omitempty" json:"enabled,omitempty"`

	// Chart is the chart path, relative to the config file.
	Chart string `yaml:"chart" toml:"chart" json:"chart"`

	// Namespace is passed via --namespace when non-empty.
	Namespace string `yaml:"namespace,omitempty" toml:"namespace,omitempty" json:"namespace,omitempty"`

	// ReleaseName is the release name passed to helm template,
	// unless a deployment overrides it.
	ReleaseName string `yaml:"release_name" toml:"release_name" json:"release_name"`

	// OutputPath is the root of the rendered manifest tree, relative
	// to the config file. Required unless output goes to stdout.
	OutputPath string `yaml:"output_path,omitempty" toml:"output_path,omitempty" json:"output_path,omitempty"`

	// AdditionalOptions are passed through to helm template verbatim.
	// Contents are not validated against actual helm options.
	AdditionalOptions []string `yaml:"additional_options,omitempty" toml:"additional_options,omitempty" json:"additional_options,omitempty"`

	// Values are value files passed via --values, relative to the
	// config file.
	Values []string `yaml:"values,omitempty" toml:"values,omitempty" json:"values,omitempty"`

	// Deployments lists the environments to render the chart for.
	Deployments []Deployment `yaml:"deployments" toml:"deployments" json:"deployments"`

	// baseDir is the directory of the config file; all relative
	// paths resolve against it. Set by Load.
	baseDir string
}

// Deployment is one named rendering target within a workload.
type Deployment struct {
	// Name identifies the deployment and becomes an output path
	// segment.
	Name string `yaml:"name" toml:"name" json:"name"`

	// Enabled toggles rendering of this specific deployment.
	// Missing means enabled.
	Enabled *bool `yaml:"enabled,omitempty" toml:"enabled,omitempty" json:"enabled,omitempty"`

	// ReleaseName fully replaces the workload release name for this
	// deployment when set.
	ReleaseName string `yaml:"release_name,omitempty" toml:"release_name,omitempty" json:"release_name,omitempty"`

	// AdditionalOptions are appended after the workload options.
	AdditionalOptions []string `yaml:"additional_options,omitempty" toml:"additional_options,omitempty" json:"additional_options,omitempty"`

	// Values are appended after the workload value files, relative
	// to the config file.
	Values []string `yaml:"values,omitempty" toml:"values,omitempty" json:"values,omitempty"`
}

// IsEnabled reports whether the workload should be rendered at all.
func (w *Workload) IsEnabled() bool {
	return w.Enabled == nil || *w.Enabled
}

// IsEnabled reports whether this deployment should be rendered.
func (d *Deployment) IsEnabled() bool {
	return d.Enabled == nil || *d.Enabled
}

// BaseDir returns the directory the config file was loaded from.
func (w *Workload) BaseDir() string {
	return w.baseDir
}
