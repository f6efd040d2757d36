// Package naming provides case conversion and name validation shared by
// the generators and the operator-expression compiler.
//
// Conventions follow the generated-project layout: project names are
// kebab-case, component names are PascalCase, generated filenames are
// snake_case.
package naming

import (
	"fmt"
	"go/token"
	"regexp"
	"strings"
)

var (
	projectNamePattern   = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
	componentNamePattern = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)

	// Boundary patterns for Snake: "HTTPServer" -> "http_server",
	// "parseURL2" -> "parse_url2".
	firstCapBoundary = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	allCapBoundary   = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// Snake converts a PascalCase or kebab-case name to snake_case.
func Snake(s string) string {
	s = firstCapBoundary.ReplaceAllString(s, "${1}_${2}")
	s = allCapBoundary.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(strings.ReplaceAll(s, "-", "_"))
}

// Pascal converts a snake_case or kebab-case name to PascalCase.
// Names that are already PascalCase pass through unchanged.
func Pascal(s string) string {
	parts := strings.Split(strings.ReplaceAll(s, "-", "_"), "_")
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// Kebab converts a name to kebab-case.
func Kebab(s string) string {
	return strings.ReplaceAll(Snake(s), "_", "-")
}

// ValidateProjectName checks that a project name is kebab-case with no
// edge or consecutive hyphens.
func ValidateProjectName(name string) error {
	if !projectNamePattern.MatchString(name) {
		return fmt.Errorf("project name %q must be kebab-case (lowercase letters, digits, hyphens)", name)
	}
	if strings.Contains(name, "--") || strings.HasSuffix(name, "-") {
		return fmt.Errorf("project name %q cannot contain consecutive or trailing hyphens", name)
	}
	return nil
}

// ValidateComponentName checks that a component name is PascalCase and
// not a Go keyword (component names become identifiers in generated code).
func ValidateComponentName(name string) error {
	if !componentNamePattern.MatchString(name) {
		return fmt.Errorf("component name %q must be PascalCase (e.g. OrderFlow)", name)
	}
	if token.IsKeyword(strings.ToLower(name)) {
		return fmt.Errorf("component name %q collides with a Go keyword", name)
	}
	return nil
}
