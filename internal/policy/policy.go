// Package policy implements the inclusion rules deciding which paths are scanned.
package policy

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

const (
	extensionSeparator   = "."
	listSeparator        = ","
	directoryMatchSuffix = "/"
)

// InclusionPolicy is the immutable rule set applied during one run. It is fully
// constructed before traversal begins and never mutated afterwards.
type InclusionPolicy struct {
	ignoredDirectories map[string]struct{}
	ignoredFiles       map[string]struct{}
	excludedExtensions map[string]struct{}
	includedExtensions map[string]struct{}
	excludeGlobs       []string
	gitIgnoreMatcher   *ignore.GitIgnore
}

// Options carries the caller-supplied additions layered over the built-in tables.
type Options struct {
	// IncludeExtensions, when non-empty, acts as an allow-list applied in addition
	// to the built-in exclusion set; the exclusion set always wins.
	IncludeExtensions []string
	// ExcludeExtensions extends the built-in excluded-extension set.
	ExcludeExtensions []string
	// ExcludeGlobs are matched against forward-slash relative paths; directory
	// candidates are also matched with a trailing slash appended.
	ExcludeGlobs []string
	// ExtraIgnoredFiles extends the built-in ignored-file set, used for the
	// resolved output file name so a run never embeds its own snapshot.
	ExtraIgnoredFiles []string
	// GitIgnoreMatcher, when non-nil, additionally excludes paths matched by the
	// root .gitignore file.
	GitIgnoreMatcher *ignore.GitIgnore
}

// New builds an InclusionPolicy from the built-in tables plus the provided options.
func New(options Options) *InclusionPolicy {
	inclusionPolicy := &InclusionPolicy{
		ignoredDirectories: defaultIgnoredDirectories,
		ignoredFiles:       cloneStringSet(defaultIgnoredFiles),
		excludedExtensions: cloneStringSet(defaultExcludedExtensions),
		includedExtensions: map[string]struct{}{},
		excludeGlobs:       append([]string{}, options.ExcludeGlobs...),
		gitIgnoreMatcher:   options.GitIgnoreMatcher,
	}
	for _, extensionValue := range NormalizeExtensions(options.ExcludeExtensions) {
		inclusionPolicy.excludedExtensions[extensionValue] = struct{}{}
	}
	for _, extensionValue := range NormalizeExtensions(options.IncludeExtensions) {
		inclusionPolicy.includedExtensions[extensionValue] = struct{}{}
	}
	for _, fileName := range options.ExtraIgnoredFiles {
		if fileName != "" {
			inclusionPolicy.ignoredFiles[fileName] = struct{}{}
		}
	}
	return inclusionPolicy
}

// ShouldDescend reports whether traversal may enter the directory with the given
// bare name and forward-slash relative path.
func (inclusionPolicy *InclusionPolicy) ShouldDescend(directoryName string, relativePath string) bool {
	if _, isIgnored := inclusionPolicy.ignoredDirectories[directoryName]; isIgnored {
		return false
	}
	if inclusionPolicy.matchesExcludeGlob(relativePath, true) {
		return false
	}
	if inclusionPolicy.gitIgnoreMatcher != nil && inclusionPolicy.gitIgnoreMatcher.MatchesPath(relativePath+directoryMatchSuffix) {
		return false
	}
	return true
}

// ShouldInclude reports whether the file with the given bare name and forward-slash
// relative path belongs in the candidate list. Symbolic links are never included.
func (inclusionPolicy *InclusionPolicy) ShouldInclude(fileName string, relativePath string, isSymlink bool) bool {
	if isSymlink {
		return false
	}
	if _, isIgnored := inclusionPolicy.ignoredFiles[fileName]; isIgnored {
		return false
	}
	if inclusionPolicy.matchesExcludeGlob(relativePath, false) {
		return false
	}
	if inclusionPolicy.gitIgnoreMatcher != nil && inclusionPolicy.gitIgnoreMatcher.MatchesPath(relativePath) {
		return false
	}
	fileExtension := extensionOf(fileName)
	if _, isExcluded := inclusionPolicy.excludedExtensions[fileExtension]; isExcluded {
		return false
	}
	if len(inclusionPolicy.includedExtensions) > 0 {
		if _, isAllowed := inclusionPolicy.includedExtensions[fileExtension]; !isAllowed {
			return false
		}
	}
	return true
}

// matchesExcludeGlob tests the relative path against every exclude glob. Directory
// candidates are additionally tested with a trailing slash so patterns such as
// "data/**" prune the directory itself.
func (inclusionPolicy *InclusionPolicy) matchesExcludeGlob(relativePath string, isDirectory bool) bool {
	if len(inclusionPolicy.excludeGlobs) == 0 {
		return false
	}
	candidatePaths := []string{relativePath}
	if isDirectory && !strings.HasSuffix(relativePath, directoryMatchSuffix) {
		candidatePaths = append(candidatePaths, relativePath+directoryMatchSuffix)
	}
	for _, globPattern := range inclusionPolicy.excludeGlobs {
		for _, candidatePath := range candidatePaths {
			isMatched, matchError := doublestar.Match(globPattern, candidatePath)
			if matchError == nil && isMatched {
				return true
			}
		}
	}
	return false
}

// ParseCommaList splits a comma-separated flag value into trimmed non-empty entries.
func ParseCommaList(value string) []string {
	if value == "" {
		return nil
	}
	var entries []string
	for _, rawEntry := range strings.Split(value, listSeparator) {
		trimmedEntry := strings.TrimSpace(rawEntry)
		if trimmedEntry != "" {
			entries = append(entries, trimmedEntry)
		}
	}
	return entries
}

// NormalizeExtensions lower-cases each entry and guarantees a leading dot, so
// "PY" and ".py" select the same files.
func NormalizeExtensions(extensions []string) []string {
	var normalized []string
	for _, extensionValue := range extensions {
		trimmedExtension := strings.ToLower(strings.TrimSpace(extensionValue))
		if trimmedExtension == "" {
			continue
		}
		if !strings.HasPrefix(trimmedExtension, extensionSeparator) {
			trimmedExtension = extensionSeparator + trimmedExtension
		}
		normalized = append(normalized, trimmedExtension)
	}
	return normalized
}

// extensionOf returns the lower-cased extension of the bare file name, including
// the leading dot, or the empty string when the name has none.
func extensionOf(fileName string) string {
	dotIndex := strings.LastIndex(fileName, extensionSeparator)
	if dotIndex <= 0 {
		return ""
	}
	return strings.ToLower(fileName[dotIndex:])
}

func cloneStringSet(source map[string]struct{}) map[string]struct{} {
	cloned := make(map[string]struct{}, len(source))
	for key := range source {
		cloned[key] = struct{}{}
	}
	return cloned
}
