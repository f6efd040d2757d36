package doctor

import (
	"context"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/semver"

	"github.com/loomworks/loom/internal/config"
)

// loomModule is the runtime dependency every generated project carries.
const loomModule = "github.com/loomworks/loom"

// minLoomVersion is the oldest runtime version the generated code still
// works against.
const minLoomVersion = "v0.1.0"

// expectedDirs is the layout `loom new` scaffolds.
var expectedDirs = []string{"agents", "workflows", "functions", "cmd"}

// sourceDirs are the directories the syntax check scans.
var sourceDirs = []string{"agents", "workflows", "functions", "llm"}

// CheckConfig verifies that loom.toml exists and validates.
func CheckConfig(root string) Result {
	if _, err := os.Stat(filepath.Join(root, config.File)); err != nil {
		return Fail("config", config.File+" not found at project root")
	}
	if _, err := config.Load(root); err != nil {
		return Fail("config", err.Error())
	}
	return Pass("config", config.File+" is valid")
}

// CheckStructure verifies the scaffolded directory layout. Missing
// directories are fixable.
func CheckStructure(root string) Result {
	var missing []string
	for _, dir := range expectedDirs {
		info, err := os.Stat(filepath.Join(root, dir))
		if err != nil || !info.IsDir() {
			missing = append(missing, dir)
		}
	}
	if len(missing) == 0 {
		return Pass("structure", "project layout is complete")
	}

	return FailWithFix("structure",
		fmt.Sprintf("missing directories: %v", missing),
		"create the missing directories",
		func(ctx context.Context) error {
			for _, dir := range missing {
				if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
					return err
				}
			}
			return nil
		})
}

// CheckSyntax parses every Go file in the generated source directories.
func CheckSyntax(root string) Result {
	var bad []string
	fset := token.NewFileSet()

	for _, dir := range sourceDirs {
		base := filepath.Join(root, dir)
		if _, err := os.Stat(base); err != nil {
			continue
		}
		err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || filepath.Ext(path) != ".go" {
				return err
			}
			if _, perr := parser.ParseFile(fset, path, nil, 0); perr != nil {
				rel, _ := filepath.Rel(root, path)
				bad = append(bad, fmt.Sprintf("%s: %v", rel, perr))
			}
			return nil
		})
		if err != nil {
			return Fail("syntax", fmt.Sprintf("scanning %s: %v", dir, err))
		}
	}

	if len(bad) > 0 {
		return Fail("syntax", fmt.Sprintf("%d file(s) do not parse: %v", len(bad), bad))
	}
	return Pass("syntax", "all generated Go files parse")
}

// CheckDependencies parses go.mod and verifies the runtime dependency
// meets the minimum version.
func CheckDependencies(root string) Result {
	path := filepath.Join(root, "go.mod")
	data, err := os.ReadFile(path)
	if err != nil {
		return Fail("dependencies", "go.mod not found at project root")
	}
	mf, err := modfile.Parse(path, data, nil)
	if err != nil {
		return Fail("dependencies", fmt.Sprintf("parsing go.mod: %v", err))
	}

	for _, req := range mf.Require {
		if req.Mod.Path != loomModule {
			continue
		}
		if semver.Compare(req.Mod.Version, minLoomVersion) < 0 {
			return Warn("dependencies",
				fmt.Sprintf("%s %s is older than the supported minimum %s",
					loomModule, req.Mod.Version, minLoomVersion))
		}
		return Pass("dependencies", fmt.Sprintf("%s %s", loomModule, req.Mod.Version))
	}
	return Fail("dependencies", fmt.Sprintf("go.mod does not require %s", loomModule))
}
