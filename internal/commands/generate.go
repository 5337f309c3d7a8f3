package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tmorand/promptctx/internal/output"
	"github.com/tmorand/promptctx/internal/policy"
	"github.com/tmorand/promptctx/internal/services/clipboard"
	"github.com/tmorand/promptctx/internal/tokenizer"
	"github.com/tmorand/promptctx/internal/types"
)

const (
	// errorResolveRootFormat is used when the scan root cannot be resolved.
	errorResolveRootFormat = "resolving root %s: %w"
	// errorRootNotDirectoryFormat is used when the scan root is not a directory.
	errorRootNotDirectoryFormat = "root %s is not a directory"
	// errorLoadGitignoreFormat is used when the root .gitignore cannot be compiled.
	errorLoadGitignoreFormat = "loading .gitignore from %s: %w"
	// errorWriteOutputFormat is used when the output document cannot be written.
	errorWriteOutputFormat = "writing %s: %w"
	// warningClipboardFormat is used when the clipboard copy fails.
	warningClipboardFormat = "Warning: failed to copy document to clipboard: %v\n"
	// warningTokenCountFormat is used when the token estimate fails.
	warningTokenCountFormat = "Warning: failed to count tokens: %v\n"
	// outputFilePermissions is the mode of the written document.
	outputFilePermissions = 0o644
)

// GenerateOptions configures one snapshot generation run.
type GenerateOptions struct {
	RootPath          string
	OutputPath        string
	IncludeExtensions []string
	ExcludeExtensions []string
	ExcludeGlobs      []string
	MaxBytes          int64
	UseGitignore      bool
	TokenCounter      tokenizer.Counter
	TokenModel        string
	ClipboardCopier   clipboard.Copier
	Now               func() time.Time
}

// Generate walks the root, renders the tree and file contents into one Markdown
// document, writes it to the output path, and returns the run summary. Per-file
// problems degrade gracefully: unreadable and binary files are omitted, oversized
// and badly encoded files are annotated. Root resolution and output write failures
// are fatal because the run cannot produce a meaningful result without them.
func Generate(options GenerateOptions) (types.RunSummary, error) {
	absoluteRootPath, rootError := resolveRootDirectory(options.RootPath)
	if rootError != nil {
		return types.RunSummary{}, rootError
	}

	resolvedOutputPath := options.OutputPath
	if !filepath.IsAbs(resolvedOutputPath) {
		resolvedOutputPath = filepath.Join(absoluteRootPath, resolvedOutputPath)
	}

	inclusionPolicy, policyError := buildInclusionPolicy(absoluteRootPath, resolvedOutputPath, options)
	if policyError != nil {
		return types.RunSummary{}, policyError
	}

	candidateFiles, collectError := GetCandidateFiles(absoluteRootPath, inclusionPolicy)
	if collectError != nil {
		return types.RunSummary{}, collectError
	}

	treeLines := output.RenderTreeLines(candidateFiles)
	fileSections := buildFileSections(candidateFiles, options.MaxBytes)

	clock := options.Now
	if clock == nil {
		clock = time.Now
	}
	document := output.BuildDocument(absoluteRootPath, clock(), treeLines, fileSections)

	runSummary := types.RunSummary{
		IncludedFiles: len(candidateFiles),
		OutputPath:    resolvedOutputPath,
	}

	if options.TokenCounter != nil {
		countResult, countError := tokenizer.CountBytes(options.TokenCounter, []byte(document))
		if countError != nil {
			fmt.Fprintf(os.Stderr, warningTokenCountFormat, countError)
		} else if countResult.Counted {
			runSummary.Tokens = countResult.Tokens
			runSummary.TokensCounted = true
			runSummary.Model = options.TokenModel
			document = output.AppendTokenFooter(document, countResult.Tokens, options.TokenModel)
		}
	}

	if writeError := os.WriteFile(resolvedOutputPath, []byte(document), outputFilePermissions); writeError != nil {
		return types.RunSummary{}, fmt.Errorf(errorWriteOutputFormat, resolvedOutputPath, writeError)
	}
	runSummary.DocumentBytes = int64(len(document))

	if options.ClipboardCopier != nil {
		if copyError := options.ClipboardCopier.Copy(document); copyError != nil {
			fmt.Fprintf(os.Stderr, warningClipboardFormat, copyError)
		}
	}

	return runSummary, nil
}

// resolveRootDirectory validates that the configured root exists and is a directory.
func resolveRootDirectory(rootPath string) (string, error) {
	absoluteRootPath, absoluteError := filepath.Abs(rootPath)
	if absoluteError != nil {
		return "", fmt.Errorf(errorResolveRootFormat, rootPath, absoluteError)
	}
	cleanedRootPath := filepath.Clean(absoluteRootPath)
	rootInformation, statError := os.Stat(cleanedRootPath)
	if statError != nil {
		return "", fmt.Errorf(errorResolveRootFormat, rootPath, statError)
	}
	if !rootInformation.IsDir() {
		return "", fmt.Errorf(errorRootNotDirectoryFormat, cleanedRootPath)
	}
	return cleanedRootPath, nil
}

// buildInclusionPolicy assembles the immutable rule set for the run, excluding the
// resolved output file so the snapshot never embeds itself.
func buildInclusionPolicy(absoluteRootPath string, resolvedOutputPath string, options GenerateOptions) (*policy.InclusionPolicy, error) {
	policyOptions := policy.Options{
		IncludeExtensions: options.IncludeExtensions,
		ExcludeExtensions: options.ExcludeExtensions,
		ExcludeGlobs:      options.ExcludeGlobs,
		ExtraIgnoredFiles: []string{filepath.Base(resolvedOutputPath)},
	}
	if options.UseGitignore {
		gitIgnoreMatcher, gitIgnoreError := policy.LoadRootGitIgnore(absoluteRootPath)
		if gitIgnoreError != nil {
			return nil, fmt.Errorf(errorLoadGitignoreFormat, absoluteRootPath, gitIgnoreError)
		}
		policyOptions.GitIgnoreMatcher = gitIgnoreMatcher
	}
	return policy.New(policyOptions), nil
}

// buildFileSections reads every candidate file and prepares the content blocks.
// Files that contribute no content are dropped here, heading and all.
func buildFileSections(candidateFiles []types.CandidateFile, maxBytes int64) []types.FileSection {
	var fileSections []types.FileSection
	for _, candidateFile := range candidateFiles {
		fileText, hasContent := ReadFileText(candidateFile.AbsolutePath, maxBytes)
		if !hasContent {
			continue
		}
		fileSections = append(fileSections, types.FileSection{
			RelativePath: candidateFile.RelativePath,
			Language:     output.FenceLanguage(filepath.Base(candidateFile.RelativePath)),
			Note:         fileText.Note,
			Content:      fileText.Content,
		})
	}
	return fileSections
}
