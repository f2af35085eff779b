package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// executeCmd executes the root command with the given args and returns the output.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	buf := new(bytes.Buffer)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags clears package-level flag state so it doesn't leak
// between test executions.
func resetFlags() {
	verbosity = 0
	renderAdditionalOptions = nil
	renderFilter = ""
	renderUpdateDeps = false
	renderPipe = nil
	renderStdout = false
	renderHelmBin = ""
	validateSkipDisabled = false
	updateCheckOnly = false
}

// writeFile writes content into dir and returns the full path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// fakeHelm creates an executable stand-in for helm that prints a
// fixed manifest on 'template' and records every invocation in
// <dir>/calls.log.
func fakeHelm(t *testing.T, dir string) string {
	t.Helper()
	script := `#!/bin/sh
echo "$@" >> "` + dir + `/calls.log"
case "$1" in
template) echo "kind: Deployment" ;;
esac
`
	path := filepath.Join(dir, "helm")
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}
