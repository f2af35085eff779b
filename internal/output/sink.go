// Package output persists rendered manifests, either to the
// deterministic on-disk layout or to a stream.
package output

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/cameronsjo/helmsman/internal/config"
	"github.com/cameronsjo/helmsman/internal/fileutil"
	"github.com/cameronsjo/helmsman/internal/workload"
)

// ManifestName is the file every deployment renders to.
const ManifestName = "manifest.yaml"

// Sink materializes the final byte stream of one deployment. Write
// returns the destination path in file mode, or "" for streams.
type Sink interface {
	Write(e workload.Effective, data []byte) (string, error)
}

// FileSink writes manifests under root/<name>[/<release>]/manifest.yaml.
type FileSink struct {
	root string

	// includeRelease adds the release-name path segment. The legacy
	// v1 schema omitted it.
	includeRelease bool
}

// NewFileSink creates a file sink rooted at the workload output path.
// The schema version decides the path layout.
func NewFileSink(root, schemaVersion string) *FileSink {
	return &FileSink{
		root:           root,
		includeRelease: schemaVersion != config.VersionV1,
	}
}

// Path returns the destination for one deployment without writing.
func (s *FileSink) Path(e workload.Effective) string {
	if s.includeRelease {
		return filepath.Join(s.root, e.Name, e.ReleaseName, ManifestName)
	}
	return filepath.Join(s.root, e.Name, ManifestName)
}

// Write materializes the manifest atomically: a failed write never
// leaves a partial file visible under the final name.
func (s *FileSink) Write(e workload.Effective, data []byte) (string, error) {
	path := s.Path(e)
	if err := fileutil.WriteFileAtomic(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// StreamSink writes manifests to a single stream, typically the
// process's standard output. Diagnostics never go here.
type StreamSink struct {
	w io.Writer
}

// NewStreamSink creates a stream sink over w.
func NewStreamSink(w io.Writer) *StreamSink {
	return &StreamSink{w: w}
}

// Write copies the manifest to the stream. No atomicity applies.
func (s *StreamSink) Write(_ workload.Effective, data []byte) (string, error) {
	if _, err := s.w.Write(data); err != nil {
		return "", fmt.Errorf("write stream: %w", err)
	}
	return "", nil
}
