// Package migrate manages file-based project migrations: declarative
// YAML documents under migrations/ with mkdir/write/append/remove
// operations, applied in ID order and recorded in a SQLite ledger
// under .loom/.
package migrate

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Migration is one declarative migration document.
type Migration struct {
	ID   string      `yaml:"id"`
	Name string      `yaml:"name"`
	Up   []Operation `yaml:"up"`
	Down []Operation `yaml:"down"`

	path string // source file, for error messages
}

// Operation is a single filesystem action.
type Operation struct {
	Action  string `yaml:"action"` // mkdir, write, append, remove
	Path    string `yaml:"path"`
	Content string `yaml:"content,omitempty"`
}

// Validate checks the migration document.
func (m *Migration) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%s: migration has no id", m.path)
	}
	for _, ops := range [][]Operation{m.Up, m.Down} {
		for _, op := range ops {
			if err := op.validate(); err != nil {
				return fmt.Errorf("%s: %w", m.path, err)
			}
		}
	}
	return nil
}

func (op Operation) validate() error {
	switch op.Action {
	case "mkdir", "write", "append", "remove":
	default:
		return fmt.Errorf("unknown action %q", op.Action)
	}
	if op.Path == "" {
		return fmt.Errorf("%s operation has no path", op.Action)
	}
	// Operations must stay inside the project tree.
	if !filepath.IsLocal(op.Path) {
		return fmt.Errorf("%s operation path %q escapes the project", op.Action, op.Path)
	}
	return nil
}

// apply executes the operation under root.
func (op Operation) apply(root string) error {
	target := filepath.Join(root, filepath.FromSlash(op.Path))
	switch op.Action {
	case "mkdir":
		return os.MkdirAll(target, 0o755)
	case "write":
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		return os.WriteFile(target, []byte(op.Content), 0o644)
	case "append":
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		f, err := os.OpenFile(target, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = f.WriteString(op.Content)
		return err
	case "remove":
		return os.RemoveAll(target)
	default:
		return fmt.Errorf("unknown action %q", op.Action)
	}
}

// load reads and validates one migration file.
func load(path string) (*Migration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading migration: %w", err)
	}
	var m Migration
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	m.path = path
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
