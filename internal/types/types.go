// Package types defines the cross-package data structures used by the promptctx CLI.
package types

// CandidateFile is a single file admitted by the inclusion policy.
type CandidateFile struct {
	// AbsolutePath locates the file on disk.
	AbsolutePath string
	// RelativePath is the forward-slash path relative to the scan root.
	RelativePath string
}

// FileSection is one rendered content block of the generated document.
type FileSection struct {
	RelativePath string
	Language     string
	Note         string
	Content      string
}

// RunSummary captures aggregate information about one generation run.
type RunSummary struct {
	IncludedFiles int
	DocumentBytes int64
	OutputPath    string
	Tokens        int
	TokensCounted bool
	Model         string
}
