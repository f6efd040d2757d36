package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/loomworks/loom/internal/naming"
)

// dir is the migrations directory relative to the project root.
const dir = "migrations"

// Manager discovers and applies a project's migrations.
type Manager struct {
	root string
	log  zerolog.Logger
}

// NewManager creates a Manager for the given project root.
func NewManager(root string, log zerolog.Logger) *Manager {
	return &Manager{root: root, log: log}
}

// idClock is a package-level var to allow test injection of the ID
// timestamp.
var idClock = time.Now

// Make writes a new empty migration file and returns its path. The ID
// is <timestamp>_<snake-cased name>, which keeps discovery order equal
// to creation order.
func (m *Manager) Make(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("migration name is required")
	}
	id := idClock().Format("20060102_150405") + "_" + naming.Snake(name)

	content := fmt.Sprintf(`id: %s
name: %s
up:
  - action: mkdir
    path: %s
down:
  - action: remove
    path: %s
`, id, name, naming.Snake(name), naming.Snake(name))

	if err := os.MkdirAll(filepath.Join(m.root, dir), 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	path := filepath.Join(m.root, dir, id+".yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing migration: %w", err)
	}
	m.log.Info().Str("id", id).Msg("created migration")
	return path, nil
}

// discover loads every migration file, sorted by ID.
func (m *Manager) discover() ([]*Migration, error) {
	entries, err := os.ReadDir(filepath.Join(m.root, dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var migrations []*Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		mig, err := load(filepath.Join(m.root, dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		migrations = append(migrations, mig)
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].ID < migrations[j].ID
	})
	return migrations, nil
}

// Up applies every pending migration in ID order and returns the
// applied IDs.
func (m *Manager) Up() ([]string, error) {
	migrations, err := m.discover()
	if err != nil {
		return nil, err
	}
	ledger, err := OpenLedger(m.root)
	if err != nil {
		return nil, err
	}
	defer ledger.Close()

	applied, err := ledger.Applied()
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(applied))
	for _, id := range applied {
		done[id] = true
	}

	var ran []string
	for _, mig := range migrations {
		if done[mig.ID] {
			continue
		}
		m.log.Info().Str("id", mig.ID).Msg("applying migration")
		for _, op := range mig.Up {
			if err := op.apply(m.root); err != nil {
				return ran, fmt.Errorf("migration %s: %s %s: %w", mig.ID, op.Action, op.Path, err)
			}
		}
		if err := ledger.MarkApplied(mig.ID, mig.Name); err != nil {
			return ran, err
		}
		ran = append(ran, mig.ID)
	}
	return ran, nil
}

// Down rolls back the most recently applied migration and returns its
// ID, or "" when nothing is applied.
func (m *Manager) Down() (string, error) {
	migrations, err := m.discover()
	if err != nil {
		return "", err
	}
	ledger, err := OpenLedger(m.root)
	if err != nil {
		return "", err
	}
	defer ledger.Close()

	applied, err := ledger.Applied()
	if err != nil {
		return "", err
	}
	if len(applied) == 0 {
		return "", nil
	}
	last := applied[len(applied)-1]

	var target *Migration
	for _, mig := range migrations {
		if mig.ID == last {
			target = mig
			break
		}
	}
	if target == nil {
		return "", fmt.Errorf("applied migration %s has no file under %s/", last, dir)
	}

	m.log.Info().Str("id", target.ID).Msg("rolling back migration")
	for _, op := range target.Down {
		if err := op.apply(m.root); err != nil {
			return "", fmt.Errorf("migration %s: %s %s: %w", target.ID, op.Action, op.Path, err)
		}
	}
	if err := ledger.Remove(target.ID); err != nil {
		return "", err
	}
	return target.ID, nil
}

// Status describes which migrations are applied and which are pending.
type Status struct {
	Applied []string
	Pending []string
}

// Status reports the ledger state against the discovered migrations.
func (m *Manager) Status() (*Status, error) {
	migrations, err := m.discover()
	if err != nil {
		return nil, err
	}
	ledger, err := OpenLedger(m.root)
	if err != nil {
		return nil, err
	}
	defer ledger.Close()

	applied, err := ledger.Applied()
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(applied))
	for _, id := range applied {
		done[id] = true
	}

	status := &Status{Applied: applied}
	for _, mig := range migrations {
		if !done[mig.ID] {
			status.Pending = append(status.Pending, mig.ID)
		}
	}
	return status, nil
}
