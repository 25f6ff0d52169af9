// Package artifact persists and restores benchmark result files.
//
// Artifacts live under <results>/raw as timestamped JSON files. Loads
// resolve the newest timestamped file, falling back to the legacy flat
// filename from older harness versions.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/huangsam/pmbench/internal/contract"
	"github.com/huangsam/pmbench/schema"
)

// Artifact filename prefixes, one per benchmark stage.
const (
	InstallationPrefix = "installation_benchmark_results"
	ReproPrefix        = "reproducibility_results"
	DXPrefix           = "dx_evaluation_results"
)

const (
	rawDirName     = "raw"
	reportsDirName = "reports"
)

// Store reads and writes benchmark artifacts under a results directory.
type Store struct {
	resultsDir string
}

// NewStore creates a store rooted at resultsDir.
func NewStore(resultsDir string) *Store {
	return &Store{resultsDir: resultsDir}
}

// ResultsDir returns the root results directory.
func (s *Store) ResultsDir() string {
	return s.resultsDir
}

// RawDir returns the directory holding raw stage artifacts.
func (s *Store) RawDir() string {
	return filepath.Join(s.resultsDir, rawDirName)
}

// ReportsDir returns the directory holding report snapshots.
func (s *Store) ReportsDir() string {
	return filepath.Join(s.resultsDir, reportsDirName)
}

// EnsureLayout creates the results directory tree if missing.
func (s *Store) EnsureLayout() error {
	for _, dir := range []string{s.RawDir(), s.ReportsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create results directory %s: %w", dir, err)
		}
	}
	return nil
}

// SaveInstallation persists a speed benchmark artifact and returns its path.
func (s *Store) SaveInstallation(report *schema.InstallationReport, ts time.Time) (string, error) {
	return s.saveJSON(InstallationPrefix, ts, report)
}

// SaveRepro persists a reproducibility artifact and returns its path.
func (s *Store) SaveRepro(report schema.ReproReport, ts time.Time) (string, error) {
	return s.saveJSON(ReproPrefix, ts, report)
}

// SaveDX persists a developer-experience artifact and returns its path.
func (s *Store) SaveDX(report schema.DXReport, ts time.Time) (string, error) {
	return s.saveJSON(DXPrefix, ts, report)
}

// LoadInstallation loads the newest speed benchmark artifact.
// It returns (nil, nil) when no artifact exists.
func (s *Store) LoadInstallation() (*schema.InstallationReport, error) {
	data, err := s.loadLatest(InstallationPrefix)
	if err != nil || data == nil {
		return nil, err
	}
	var report schema.InstallationReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("cannot decode %s artifact: %w", InstallationPrefix, err)
	}
	return &report, nil
}

// LoadRepro loads the newest reproducibility artifact.
// It returns (nil, nil) when no artifact exists.
func (s *Store) LoadRepro() (schema.ReproReport, error) {
	data, err := s.loadLatest(ReproPrefix)
	if err != nil || data == nil {
		return nil, err
	}
	var report schema.ReproReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("cannot decode %s artifact: %w", ReproPrefix, err)
	}
	return report, nil
}

// LoadDX loads the newest developer-experience artifact.
// It returns (nil, nil) when no artifact exists.
func (s *Store) LoadDX() (schema.DXReport, error) {
	data, err := s.loadLatest(DXPrefix)
	if err != nil || data == nil {
		return nil, err
	}
	var report schema.DXReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("cannot decode %s artifact: %w", DXPrefix, err)
	}
	return report, nil
}

// saveJSON writes a timestamped artifact under the raw directory.
func (s *Store) saveJSON(prefix string, ts time.Time, v any) (string, error) {
	if err := s.EnsureLayout(); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s.json", prefix, ts.Format(contract.TimestampLayout))
	path := filepath.Join(s.RawDir(), name)

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("cannot encode %s artifact: %w", prefix, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("cannot write %s artifact: %w", prefix, err)
	}
	return path, nil
}

// loadLatest reads and validates the newest artifact for a prefix.
// It returns (nil, nil) when no artifact exists at all.
func (s *Store) loadLatest(prefix string) ([]byte, error) {
	path, err := s.resolveLatest(prefix)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read artifact %s: %w", path, err)
	}
	if err := validateArtifact(prefix, data); err != nil {
		return nil, fmt.Errorf("artifact %s: %w", path, err)
	}
	return data, nil
}

// resolveLatest finds the newest timestamped artifact for a prefix, with
// the legacy flat filename as fallback. An empty path means not found.
func (s *Store) resolveLatest(prefix string) (string, error) {
	entries, err := os.ReadDir(s.RawDir())
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("cannot list raw artifacts: %w", err)
	}

	var candidates []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(name, prefix+"_") && strings.HasSuffix(name, ".json") {
			candidates = append(candidates, name)
		}
	}

	if len(candidates) > 0 {
		// Timestamps sort lexicographically, newest last.
		sort.Strings(candidates)
		return filepath.Join(s.RawDir(), candidates[len(candidates)-1]), nil
	}

	// Legacy flat filenames from pre-layout harness versions.
	for _, legacy := range []string{
		filepath.Join(s.RawDir(), prefix+".json"),
		filepath.Join(s.resultsDir, prefix+".json"),
	} {
		if _, err := os.Stat(legacy); err == nil {
			return legacy, nil
		}
	}

	return "", nil
}
