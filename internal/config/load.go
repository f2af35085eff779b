package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads and decodes the given config file. The decoder is picked
// from the file extension; the resulting model is identical across
// formats. All relative paths in the file are resolved against the
// file's own directory, never the process working directory.
// Load does not validate; call Validate separately.
func Load(path string) (*Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Workload
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported config format %q (want .yaml, .toml, or .json)", path, ext)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}
	cfg.ResolvePaths(filepath.Dir(absPath))

	return &cfg, nil
}

// ResolvePaths rewrites every relative path in the workload to be
// rooted at baseDir. Absolute paths are left alone. Load calls this
// with the config file's directory.
func (w *Workload) ResolvePaths(baseDir string) {
	w.baseDir = baseDir

	w.Chart = resolve(baseDir, w.Chart)
	w.OutputPath = resolve(baseDir, w.OutputPath)
	for i, v := range w.Values {
		w.Values[i] = resolve(baseDir, v)
	}
	for di := range w.Deployments {
		for i, v := range w.Deployments[di].Values {
			w.Deployments[di].Values[i] = resolve(baseDir, v)
		}
	}
}

func resolve(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
