package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Plan is the set of files a generator intends to write, keyed by path
// relative to the project root. Nothing touches disk until Commit.
type Plan struct {
	root  string
	files map[string]string
}

// NewPlan creates an empty plan rooted at dir.
func NewPlan(root string) *Plan {
	return &Plan{root: root, files: make(map[string]string)}
}

// Add records a file to be written.
func (p *Plan) Add(relPath, content string) {
	p.files[filepath.FromSlash(relPath)] = content
}

// Paths returns the planned relative paths, sorted.
func (p *Plan) Paths() []string {
	paths := make([]string, 0, len(p.files))
	for path := range p.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Check fails if any planned file already exists, unless force is set.
func (p *Plan) Check(force bool) error {
	if force {
		return nil
	}
	for _, rel := range p.Paths() {
		abs := filepath.Join(p.root, rel)
		if _, err := os.Stat(abs); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", rel)
		}
	}
	return nil
}

// Commit writes every planned file, creating parent directories.
func (p *Plan) Commit() error {
	for _, rel := range p.Paths() {
		abs := filepath.Join(p.root, rel)
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", rel, err)
		}
		if err := os.WriteFile(abs, []byte(p.files[rel]), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", rel, err)
		}
	}
	return nil
}
