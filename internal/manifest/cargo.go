// Package manifest reads dependencies from Cargo manifests.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/anvlkv/acknowledgements/internal/app"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"
)

const manifestFile = "Cargo.toml"

type cargoManifest struct {
	Dependencies      map[string]interface{}  `toml:"dependencies"`
	DevDependencies   map[string]interface{}  `toml:"dev-dependencies"`
	BuildDependencies map[string]interface{}  `toml:"build-dependencies"`
	Target            map[string]targetTables `toml:"target"`
	Workspace         *struct {
		Members      []string               `toml:"members"`
		Exclude      []string               `toml:"exclude"`
		Dependencies map[string]interface{} `toml:"dependencies"`
	} `toml:"workspace"`
}

// entry is a single dependency, either `name = "1.0"` or `name = { ... }`.
type entry struct {
	name      string
	pkg       string
	git       string
	path      string
	optional  bool
	workspace bool
}

// Load returns dependencies of the manifest at path, following workspace members.
// path may point to the Cargo.toml file or to the directory containing it.
func Load(path string, breadth app.Breadth) ([]app.Dependency, error) {
	r := reader{
		breadth: breadth,
		visited: make(map[string]bool),
	}

	return r.load(path, nil)
}

type reader struct {
	breadth app.Breadth
	visited map[string]bool
}

func (r *reader) load(path string, inherited map[string]entry) ([]app.Dependency, error) {
	file, err := manifestPath(path)
	if err != nil {
		return nil, err
	}
	if r.visited[file] {
		return nil, nil
	}
	r.visited[file] = true

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m cargoManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}

	var workspaceEntries map[string]entry
	if m.Workspace != nil {
		if workspaceEntries, err = parseTable(m.Workspace.Dependencies); err != nil {
			return nil, fmt.Errorf("parsing %s workspace dependencies: %w", file, err)
		}
	} else {
		workspaceEntries = inherited
	}

	tables := []map[string]interface{}{m.Dependencies}
	for _, t := range sortedTargets(m) {
		tables = append(tables, t.Dependencies)
	}
	if r.breadth == app.BreadthBuildAndDev {
		tables = append(tables, m.DevDependencies, m.BuildDependencies)
		for _, t := range sortedTargets(m) {
			tables = append(tables, t.DevDependencies, t.BuildDependencies)
		}
	}

	var deps []app.Dependency
	for _, table := range tables {
		entries, err := parseTable(table)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", file, err)
		}
		for _, name := range sortedNames(entries) {
			s := entries[name]
			if s.workspace {
				if ws, ok := workspaceEntries[name]; ok {
					// Members may only add features and optionality.
					ws.optional = ws.optional || s.optional
					s = ws
				}
			}
			if s.optional && r.breadth == app.BreadthNonOpt {
				continue
			}
			deps = append(deps, s.dependency())
		}
	}

	if m.Workspace == nil {
		return deps, nil
	}

	for _, name := range sortedNames(workspaceEntries) {
		s := workspaceEntries[name]
		if s.optional && r.breadth != app.BreadthBuildAndDev {
			continue
		}
		deps = append(deps, s.dependency())
	}

	members, err := r.members(filepath.Dir(file), m.Workspace.Members, m.Workspace.Exclude)
	if err != nil {
		return nil, err
	}
	for _, member := range members {
		memberDeps, err := r.load(member, workspaceEntries)
		if err != nil {
			return nil, fmt.Errorf("loading workspace member %s: %w", member, err)
		}
		deps = append(deps, memberDeps...)
	}

	return deps, nil
}

// members expands workspace member globs into directories containing a manifest.
func (r *reader) members(root string, patterns []string, exclude []string) ([]string, error) {
	excluded := make(map[string]bool)
	for _, pattern := range exclude {
		matches, err := doublestar.FilepathGlob(filepath.Join(root, pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid workspace exclude %q: %w", pattern, err)
		}
		for _, m := range matches {
			excluded[filepath.Clean(m)] = true
		}
	}

	var dirs []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(filepath.Join(root, pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid workspace member %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("workspace member %q not found", pattern)
		}
		for _, m := range matches {
			m = filepath.Clean(m)
			if excluded[m] {
				continue
			}
			if _, err := os.Stat(filepath.Join(m, manifestFile)); err != nil {
				// Globs may match plain directories, e.g. crates/README.
				continue
			}
			dirs = append(dirs, m)
		}
	}
	sort.Strings(dirs)

	return dirs, nil
}

func manifestPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("finding manifest: %w", err)
	}
	if info.IsDir() {
		path = filepath.Join(path, manifestFile)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving manifest path: %w", err)
	}

	return abs, nil
}

func parseTable(table map[string]interface{}) (map[string]entry, error) {
	entries := make(map[string]entry, len(table))
	for name, raw := range table {
		s := entry{name: name}
		switch v := raw.(type) {
		case string:
			// Plain version requirement.
		case map[string]interface{}:
			s.pkg, _ = v["package"].(string)
			s.git, _ = v["git"].(string)
			s.path, _ = v["path"].(string)
			s.optional, _ = v["optional"].(bool)
			s.workspace, _ = v["workspace"].(bool)
		default:
			return nil, fmt.Errorf("dependency %s: unexpected value %v", name, raw)
		}
		entries[name] = s
	}

	return entries, nil
}

func (s entry) dependency() app.Dependency {
	name := s.name
	if s.pkg != "" {
		name = s.pkg
	}

	return app.Dependency{
		Name:     name,
		Source:   s.git,
		Local:    s.git == "" && s.path != "",
		Optional: s.optional,
	}
}

func sortedNames(entries map[string]entry) []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// targetTables holds platform specific dependencies, e.g. [target.'cfg(unix)'.dependencies].
type targetTables struct {
	Dependencies      map[string]interface{} `toml:"dependencies"`
	DevDependencies   map[string]interface{} `toml:"dev-dependencies"`
	BuildDependencies map[string]interface{} `toml:"build-dependencies"`
}

func sortedTargets(m cargoManifest) []targetTables {
	keys := make([]string, 0, len(m.Target))
	for k := range m.Target {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	targets := make([]targetTables, 0, len(keys))
	for _, k := range keys {
		targets = append(targets, m.Target[k])
	}

	return targets
}
