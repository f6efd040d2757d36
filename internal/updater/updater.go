// Package updater checks GitHub releases for a newer loom and can
// replace the running binary in place. The version check is best
// effort and never blocks or fails a command; the self-update is an
// atomic download-then-rename.
package updater

import (
	"archive/tar"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	githubRepo = "loomworks/loom"
	releaseURL = "https://api.github.com/repos/" + githubRepo + "/releases/latest"

	checkTimeout = 10 * time.Second
)

// For testing: allow overriding the release endpoint and HTTP client.
var (
	releaseEndpoint = releaseURL
	httpClient      = &http.Client{Timeout: checkTimeout}
)

// Release holds the relevant fields of a GitHub release.
type Release struct {
	TagName string  `json:"tag_name"`
	HTMLURL string  `json:"html_url"`
	Assets  []Asset `json:"assets"`
}

// Asset is one downloadable file in a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// CheckResult is the outcome of a version check.
type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
	ReleaseURL      string
}

// CheckVersion queries GitHub for the latest release. Network failures
// are swallowed: the result simply reports no update.
func CheckVersion(currentVersion string) *CheckResult {
	result := &CheckResult{CurrentVersion: currentVersion}

	release, err := fetchLatest(currentVersion)
	if err != nil {
		return result
	}

	result.LatestVersion = release.TagName
	result.ReleaseURL = release.HTMLURL
	result.UpdateAvailable = isNewer(currentVersion, release.TagName)
	return result
}

// SelfUpdate downloads the release binary for this OS/arch and
// replaces the running executable.
func SelfUpdate(currentVersion string) error {
	release, err := fetchLatest(currentVersion)
	if err != nil {
		return err
	}
	if !isNewer(currentVersion, release.TagName) {
		return fmt.Errorf("already at latest version (%s)", currentVersion)
	}

	assetName := assetName(release.TagName)
	var downloadURL string
	for _, asset := range release.Assets {
		if asset.Name == assetName {
			downloadURL = asset.BrowserDownloadURL
			break
		}
	}
	if downloadURL == "" {
		return fmt.Errorf("no release asset for %s/%s (looked for %s)", runtime.GOOS, runtime.GOARCH, assetName)
	}

	resp, err := httpClient.Get(downloadURL)
	if err != nil {
		return fmt.Errorf("downloading release: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download returned %s", resp.Status)
	}

	binary, err := extractBinary(resp.Body)
	if err != nil {
		return fmt.Errorf("extracting binary: %w", err)
	}

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("finding current executable: %w", err)
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return fmt.Errorf("resolving symlinks: %w", err)
	}

	// Atomic replace: write next to the binary, then rename over it.
	tmpPath := execPath + ".new"
	if err := os.WriteFile(tmpPath, binary, 0o755); err != nil {
		return fmt.Errorf("writing new binary: %w", err)
	}
	if err := os.Rename(tmpPath, execPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing binary: %w", err)
	}
	return nil
}

func fetchLatest(currentVersion string) (*Release, error) {
	req, err := http.NewRequest(http.MethodGet, releaseEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "loom/"+currentVersion)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checking latest release: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned %s", resp.Status)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("parsing release info: %w", err)
	}
	return &release, nil
}

// extractBinary pulls the loom binary out of a .tar.gz release archive.
func extractBinary(reader io.Reader) ([]byte, error) {
	gz, err := gzip.NewReader(reader)
	if err != nil {
		return nil, fmt.Errorf("opening gzip: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading tar: %w", err)
		}
		name := filepath.Base(header.Name)
		if name == "loom" || name == "loom.exe" {
			data, err := io.ReadAll(tr)
			if err != nil {
				return nil, fmt.Errorf("reading binary from tar: %w", err)
			}
			return data, nil
		}
	}
	return nil, fmt.Errorf("loom binary not found in archive")
}

// assetName matches the release name_template: loom_<version>_<os>_<arch>.tar.gz.
func assetName(tag string) string {
	return fmt.Sprintf("loom_%s_%s_%s.tar.gz", strings.TrimPrefix(tag, "v"), runtime.GOOS, runtime.GOARCH)
}

// isNewer reports whether latest is a strictly higher semver than
// current. Dev builds never update.
func isNewer(current, latest string) bool {
	if current == "" || latest == "" || current == "dev" {
		return false
	}
	if !strings.HasPrefix(current, "v") {
		current = "v" + current
	}
	if !strings.HasPrefix(latest, "v") {
		latest = "v" + latest
	}
	if !semver.IsValid(current) || !semver.IsValid(latest) {
		return false
	}
	return semver.Compare(latest, current) > 0
}
