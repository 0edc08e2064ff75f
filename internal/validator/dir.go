package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/crema/internal/adapters/file"
	"github.com/aretw0/crema/internal/compiler"
	"github.com/aretw0/crema/pkg/domain"
)

// ErrNoPairs is returned when no source profile has a translated counterpart.
var ErrNoPairs = errors.New("no profile pairs found")

// PairResult is the audit of one source file and its translation.
// Err is set when either file could not be read or decoded.
type PairResult struct {
	Name       string
	Source     string
	Translated string
	Report     *Report
	Err        error
}

// Passed reports whether the pair was audited and passed.
func (p PairResult) Passed() bool { return p.Err == nil && p.Report != nil && p.Report.Passed() }

// DirReport is the audit of every profile pair found in two directories.
// Results follow the sorted order of the source files.
type DirReport struct {
	SourceDir     string
	TranslatedDir string
	Results       []PairResult
	// Skipped holds one warning per source file without a translation.
	Skipped []string
}

// Passed counts the pairs that passed.
func (r *DirReport) Passed() int {
	n := 0
	for _, p := range r.Results {
		if p.Passed() {
			n++
		}
	}
	return n
}

// Failed counts the pairs that failed or could not be audited.
func (r *DirReport) Failed() int { return len(r.Results) - r.Passed() }

// AuditFiles reads a source profile and its translation through store and audits them.
func AuditFiles(store *file.Store, sourcePath, translatedPath string) (*Report, error) {
	srcData, err := store.Read(sourcePath)
	if err != nil {
		return nil, err
	}
	src, _, err := compiler.NewParser().Parse(srcData)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sourcePath, err)
	}

	dstData, err := store.Read(translatedPath)
	if err != nil {
		return nil, err
	}
	var dst domain.TargetProfile
	if err := json.Unmarshal(dstData, &dst); err != nil {
		return nil, fmt.Errorf("%s: invalid translated profile: %w", translatedPath, err)
	}
	return Audit(src, &dst), nil
}

// AuditDir pairs every *.json file in sourceDir with the file of the same name
// in translatedDir and audits each pair. Sources without a translation are
// skipped with a warning; a pair that cannot be audited is recorded with its
// error and never stops the others.
func AuditDir(store *file.Store, sourceDir, translatedDir string) (*DirReport, error) {
	sources, err := file.Discover(sourceDir)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(translatedDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", file.ErrNotFound, translatedDir)
	}

	report := &DirReport{SourceDir: sourceDir, TranslatedDir: translatedDir}
	for _, src := range sources {
		base := filepath.Base(src)
		name := strings.TrimSuffix(base, filepath.Ext(base))
		dst := filepath.Join(translatedDir, base)
		if _, err := os.Stat(dst); errors.Is(err, os.ErrNotExist) {
			report.Skipped = append(report.Skipped, fmt.Sprintf("Skipping %s: translated file not found", name))
			continue
		}

		res := PairResult{Name: name, Source: src, Translated: dst}
		res.Report, res.Err = AuditFiles(store, src, dst)
		report.Results = append(report.Results, res)
	}
	if len(report.Results) == 0 {
		return report, fmt.Errorf("%w: %s vs %s", ErrNoPairs, sourceDir, translatedDir)
	}
	return report, nil
}
