// Package commands contains the core collection and generation logic of promptctx.
package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tmorand/promptctx/internal/policy"
	"github.com/tmorand/promptctx/internal/types"
)

const (
	// warningAccessPathFormat is used when a path cannot be accessed during traversal.
	warningAccessPathFormat = "Warning: error accessing path %s: %v\n"
	// errorAbsolutePathFormat is used when the absolute root path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	// errorWalkFormat is used when traversal of the root directory fails.
	errorWalkFormat = "walking %s: %w"
)

// GetCandidateFiles walks the tree under rootPath top-down, applies the inclusion
// policy at each directory and file, and returns the admitted files sorted by
// lower-cased relative path. Pruned directories are skipped without being scanned,
// so excluded subtrees of arbitrary size cost nothing. Symbolic links are never
// followed. Per-entry access errors are reported on stderr and skipped.
func GetCandidateFiles(rootPath string, inclusionPolicy *policy.InclusionPolicy) ([]types.CandidateFile, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootPath, absolutePathError)
	}
	cleanedRootPath := filepath.Clean(absoluteRootPath)

	var candidateFiles []types.CandidateFile

	directoryWalkError := filepath.WalkDir(cleanedRootPath, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		if accessError != nil {
			fmt.Fprintf(os.Stderr, warningAccessPathFormat, walkedPath, accessError)
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if walkedPath == cleanedRootPath {
			return nil
		}

		relativePath, relativeError := filepath.Rel(cleanedRootPath, walkedPath)
		if relativeError != nil {
			fmt.Fprintf(os.Stderr, warningAccessPathFormat, walkedPath, relativeError)
			return nil
		}
		relativePath = filepath.ToSlash(relativePath)

		if directoryEntry.IsDir() {
			if !inclusionPolicy.ShouldDescend(directoryEntry.Name(), relativePath) {
				return filepath.SkipDir
			}
			return nil
		}

		isSymlink := directoryEntry.Type()&fs.ModeSymlink != 0
		if !inclusionPolicy.ShouldInclude(directoryEntry.Name(), relativePath, isSymlink) {
			return nil
		}

		candidateFiles = append(candidateFiles, types.CandidateFile{
			AbsolutePath: walkedPath,
			RelativePath: relativePath,
		})
		return nil
	})
	if directoryWalkError != nil {
		return nil, fmt.Errorf(errorWalkFormat, cleanedRootPath, directoryWalkError)
	}

	sortCandidateFiles(candidateFiles)
	return candidateFiles, nil
}

// sortCandidateFiles orders candidates by lower-cased relative path for
// deterministic, platform-independent output; exact paths break ties.
func sortCandidateFiles(candidateFiles []types.CandidateFile) {
	sort.Slice(candidateFiles, func(firstIndex, secondIndex int) bool {
		firstKey := strings.ToLower(candidateFiles[firstIndex].RelativePath)
		secondKey := strings.ToLower(candidateFiles[secondIndex].RelativePath)
		if firstKey != secondKey {
			return firstKey < secondKey
		}
		return candidateFiles[firstIndex].RelativePath < candidateFiles[secondIndex].RelativePath
	})
}
