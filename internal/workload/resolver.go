// Package workload computes the effective per-deployment settings
// from a workload config: enablement, name filtering, and the
// global/override merge.
package workload

import (
	"fmt"
	"regexp"

	"github.com/cameronsjo/helmsman/internal/config"
)

// Effective is the fully merged settings used to render one
// deployment. It is derived per render run and never persisted.
type Effective struct {
	// Name is the deployment name, used verbatim as an output path
	// segment.
	Name string

	// ReleaseName is the workload release name, or the deployment
	// override when one is set.
	ReleaseName string

	// Namespace is empty when no --namespace should be passed.
	Namespace string

	// Chart is the resolved chart path.
	Chart string

	// Values is the workload value files followed by the
	// deployment's, order preserved, no deduplication.
	Values []string

	// Options is the workload options, then any run-scoped extra
	// options, then the deployment's, order preserved.
	Options []string
}

// Options configures deployment resolution for one run.
type Options struct {
	// Filter restricts resolution to deployments whose name matches
	// the pattern as a full string. Empty means no filtering.
	Filter string

	// ExtraOptions are run-scoped options appended after the
	// workload's global options for every deployment.
	ExtraOptions []string
}

// CompileFilter compiles a name filter pattern anchored to a
// full-string match. An empty pattern returns nil.
func CompileFilter(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, fmt.Errorf("invalid --filter pattern: %w", err)
	}
	return re, nil
}

// Resolve yields the effective deployments of the workload in
// declaration order. Disabled deployments (either level) and names
// not matching the filter are skipped; an empty result is not an
// error. A bad filter pattern is, and is reported before anything is
// rendered.
func Resolve(cfg *config.Workload, opts Options) ([]Effective, error) {
	filter, err := CompileFilter(opts.Filter)
	if err != nil {
		return nil, err
	}

	if !cfg.IsEnabled() {
		return nil, nil
	}

	var out []Effective
	for i := range cfg.Deployments {
		d := &cfg.Deployments[i]
		if !d.IsEnabled() {
			continue
		}
		if filter != nil && !filter.MatchString(d.Name) {
			continue
		}
		out = append(out, merge(cfg, d, opts.ExtraOptions))
	}

	return out, nil
}

// merge applies the override policy: a present deployment field fully
// replaces the workload field, an absent one inherits it, and
// list-valued fields concatenate with the workload's entries first.
func merge(cfg *config.Workload, d *config.Deployment, extra []string) Effective {
	release := cfg.ReleaseName
	if d.ReleaseName != "" {
		release = d.ReleaseName
	}

	values := make([]string, 0, len(cfg.Values)+len(d.Values))
	values = append(values, cfg.Values...)
	values = append(values, d.Values...)

	options := make([]string, 0, len(cfg.AdditionalOptions)+len(extra)+len(d.AdditionalOptions))
	options = append(options, cfg.AdditionalOptions...)
	options = append(options, extra...)
	options = append(options, d.AdditionalOptions...)

	return Effective{
		Name:        d.Name,
		ReleaseName: release,
		Namespace:   cfg.Namespace,
		Chart:       cfg.Chart,
		Values:      values,
		Options:     options,
	}
}
