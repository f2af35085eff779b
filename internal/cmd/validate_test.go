package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validFixture writes a config plus the chart dir and values file it
// references, so file checks pass.
func validFixture(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "chart"), 0755))
	writeFile(t, dir, "default.yaml", "{}")
	cfgPath := writeFile(t, dir, "workload.yaml", `---
version: v2
chart: chart
release_name: my-app
output_path: manifests
values:
  - default.yaml
deployments:
  - name: edge
`)
	return dir, cfgPath
}

func TestValidateAcceptsValidConfig(t *testing.T) {
	_, cfgPath := validFixture(t)

	_, err := executeCmd(t, "validate", cfgPath)
	assert.NoError(t, err)
}

func TestValidateRejectsMissingChart(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "workload.yaml", `---
version: v2
chart: does-not-exist
release_name: my-app
output_path: manifests
deployments:
  - name: edge
`)

	_, err := executeCmd(t, "validate", cfgPath)
	assert.Error(t, err)
}

func TestValidateRejectsUnknownVersion(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "workload.yaml", "version: v9\n")

	_, err := executeCmd(t, "validate", cfgPath)
	assert.Error(t, err)
}

func TestValidateSkipDisabledFiles(t *testing.T) {
	dir := t.TempDir()
	// Invalid in every other way, but disabled.
	cfgPath := writeFile(t, dir, "workload.yaml", `---
version: v9
enabled: false
deployments: []
`)

	_, err := executeCmd(t, "validate", "--skip-disabled", cfgPath)
	assert.NoError(t, err)

	// Without the flag it fails.
	_, err = executeCmd(t, "validate", cfgPath)
	assert.Error(t, err)
}

func TestValidateRejectsAllDisabledDeployments(t *testing.T) {
	dir, _ := validFixture(t)
	cfgPath := writeFile(t, dir, "disabled.yaml", `---
version: v2
chart: chart
release_name: my-app
output_path: manifests
deployments:
  - name: edge
    enabled: false
`)

	_, err := executeCmd(t, "validate", cfgPath)
	require.Error(t, err)
}

func TestValidateMultipleFilesAggregates(t *testing.T) {
	_, good := validFixture(t)
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.yaml", "version: v9\n")

	_, err := executeCmd(t, "validate", good, bad)
	assert.Error(t, err)
}

func TestValidateRequiresArgs(t *testing.T) {
	_, err := executeCmd(t, "validate")
	assert.Error(t, err)
}
