package twconfig

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ScanOptions controls scan target resolution
type ScanOptions struct {
	RespectGitIgnore bool      // Skip files ignored by the .gitignore next to the document
	Verbose          bool      // Print a one-line summary to Log
	Log              io.Writer // Destination for verbose output, nil to discard
}

// TargetMatch holds the files one scan target resolved to
type TargetMatch struct {
	Target ScanTarget
	Glob   string   // Pattern joined with the document directory
	Files  []string // Matches in glob order, deduplicated across targets
	Err    error    // Invalid pattern
}

// ScanStats tracks file resolution statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesMatched    int // Files kept (after filtering)
	FilesSkipped    int // Files skipped by .gitignore
}

// ScanResult is the outcome of resolving every scan target
type ScanResult struct {
	BaseDir string
	Targets []TargetMatch
	Files   []string // Union of all matches, first-seen order
	Stats   ScanStats
}

// loadGitIgnore compiles dir/.gitignore. A missing or unreadable file yields nil.
func loadGitIgnore(dir string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// shouldSkipFile reports whether match is ignored by gi, which holds the rules of baseDir.
// Files outside the directory are never skipped.
func shouldSkipFile(gi *ignore.GitIgnore, baseDir, match string) bool {
	if gi == nil {
		return false
	}
	rel, err := filepath.Rel(baseDir, match)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return gi.MatchesPath(filepath.ToSlash(rel))
}

// ValidatePattern checks glob syntax without touching the filesystem
func ValidatePattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return fmt.Errorf("empty pattern")
	}
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return doublestar.ErrBadPattern
	}
	return nil
}

// targetGlob joins a relative pattern with the document directory
func targetGlob(baseDir, pattern string) string {
	if filepath.IsAbs(pattern) {
		return pattern
	}
	return filepath.Join(baseDir, pattern)
}

// ResolveScanTargets expands every scan target against the document directory.
// Invalid patterns are recorded on their TargetMatch and do not stop resolution.
func ResolveScanTargets(doc *Document, opts ScanOptions) (*ScanResult, error) {
	result := &ScanResult{BaseDir: doc.BaseDir()}
	seen := make(map[string]bool)

	// Compiled per call, never cached across scans
	var gi *ignore.GitIgnore
	if opts.RespectGitIgnore {
		gi = loadGitIgnore(result.BaseDir)
	}

	for _, target := range doc.Purge.Targets {
		match := TargetMatch{Target: target, Glob: targetGlob(result.BaseDir, target.Pattern)}

		if err := ValidatePattern(target.Pattern); err != nil {
			match.Err = err
			result.Targets = append(result.Targets, match)
			continue
		}

		files, err := doublestar.FilepathGlob(match.Glob, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob pattern %q: %w", target.Pattern, err)
		}

		for _, f := range files {
			result.Stats.FilesDiscovered++
			if shouldSkipFile(gi, result.BaseDir, f) {
				result.Stats.FilesSkipped++
				continue
			}
			match.Files = append(match.Files, f)
			if !seen[f] {
				seen[f] = true
				result.Files = append(result.Files, f)
				result.Stats.FilesMatched++
			}
		}
		result.Targets = append(result.Targets, match)
	}

	// Print one-line summary in verbose mode
	if opts.Verbose && opts.Log != nil {
		fmt.Fprintf(opts.Log, "Resolved %d scan targets to %d files (skipped %d ignored files)\n",
			len(result.Targets), result.Stats.FilesMatched, result.Stats.FilesSkipped)
	}

	return result, nil
}

// GetRelativePath returns a path relative to the current working directory
func GetRelativePath(absPath string) string {
	if !filepath.IsAbs(absPath) {
		return absPath
	}
	cwd, err := filepath.Abs(".")
	if err != nil {
		return absPath
	}
	rel, err := filepath.Rel(cwd, absPath)
	if err != nil {
		return absPath
	}
	return rel
}
