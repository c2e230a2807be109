// Package driver resolves Mini script manifests.
//
// A script.yml names the project and maps target names to script entry
// files, so a project directory can be run with `mini run` or
// `mini run <target>` instead of spelling out paths.
package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the file the CLI looks for in a project directory.
const ManifestFileName = "script.yml"

// ErrManifestNotFound reports that no script.yml exists in a directory or
// any of its parents.
var ErrManifestNotFound = errors.New("driver: script.yml not found")

// Target is one runnable entry in a manifest.
type Target struct {
	// OriginalName is the key as written in script.yml.
	OriginalName string
	// Main is the script path, relative to the manifest's directory.
	Main string
}

// Manifest is a parsed, validated script.yml.
type Manifest struct {
	// Path is the absolute path of the manifest file.
	Path        string
	Name        string
	Description string
	Targets     map[string]*Target
	// TargetOrder preserves the declaration order of targets.
	TargetOrder []string
}

// LoadManifest parses script.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("driver: empty manifest path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("driver: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("driver: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("driver: %s is empty", absPath)
		}
		return nil, fmt.Errorf("driver: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// FindManifest walks from dir toward the filesystem root looking for
// script.yml and returns its path, or ErrManifestNotFound.
func FindManifest(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("driver: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(current, ManifestFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("driver: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrManifestNotFound
		}
		current = parent
	}
}

// FindTarget looks a target up by name.
func (m *Manifest) FindTarget(name string) (*Target, bool) {
	target, ok := m.Targets[name]
	return target, ok
}

// DefaultTarget returns the sole target, or the one named "main" when
// several are declared.
func (m *Manifest) DefaultTarget() (*Target, error) {
	switch len(m.TargetOrder) {
	case 0:
		return nil, fmt.Errorf("driver: manifest %s declares no targets", m.Path)
	case 1:
		return m.Targets[m.TargetOrder[0]], nil
	}
	if target, ok := m.Targets["main"]; ok {
		return target, nil
	}
	return nil, fmt.Errorf("driver: manifest %s has %d targets and none named \"main\"", m.Path, len(m.TargetOrder))
}

// ResolveMain returns the target's entry path, absolute, relative to the
// manifest's directory.
func (m *Manifest) ResolveMain(target *Target) (string, error) {
	if target == nil || target.Main == "" {
		return "", fmt.Errorf("driver: target has no entry path")
	}
	if filepath.IsAbs(target.Main) {
		return filepath.Clean(target.Main), nil
	}
	return filepath.Join(filepath.Dir(m.Path), target.Main), nil
}

func (m *Manifest) validate() error {
	if m.Name == "" {
		return fmt.Errorf("driver: manifest %s: name must be provided", m.Path)
	}
	for _, name := range m.TargetOrder {
		target := m.Targets[name]
		if target.Main == "" {
			return fmt.Errorf("driver: manifest %s: target %q requires a main entrypoint", m.Path, target.OriginalName)
		}
	}
	return nil
}

type manifestFile struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Targets     targetMap `yaml:"targets"`
}

type targetYAML struct {
	Main string `yaml:"main"`
}

type targetMap struct {
	items []targetMapEntry
}

type targetMapEntry struct {
	name string
	spec *targetYAML
}

// UnmarshalYAML accepts either the mapping form
//
//	targets:
//	  main:
//	    main: examples/branch.mini
//
// or the scalar shorthand
//
//	targets:
//	  main: examples/branch.mini
func (tm *targetMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 {
		tm.items = nil
		return nil
	}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		tm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("driver: targets must be a mapping")
	}
	items := make([]targetMapEntry, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("driver: targets must not use empty keys")
		}
		entry := new(targetYAML)
		if valueNode.Kind == yaml.ScalarNode && valueNode.Tag == "!!str" {
			entry.Main = strings.TrimSpace(valueNode.Value)
		} else if err := valueNode.Decode(entry); err != nil {
			return fmt.Errorf("driver: target %q: %w", key, err)
		}
		items = append(items, targetMapEntry{name: key, spec: entry})
	}
	tm.items = items
	return nil
}

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path:        path,
		Name:        strings.TrimSpace(mf.Name),
		Description: strings.TrimSpace(mf.Description),
		Targets:     make(map[string]*Target, len(mf.Targets.items)),
		TargetOrder: make([]string, 0, len(mf.Targets.items)),
	}
	for _, entry := range mf.Targets.items {
		target := &Target{
			OriginalName: entry.name,
			Main:         strings.TrimSpace(entry.spec.Main),
		}
		result.Targets[entry.name] = target
		result.TargetOrder = append(result.TargetOrder, entry.name)
	}
	return result
}
