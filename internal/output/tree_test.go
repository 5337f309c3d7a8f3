package output_test

import (
	"reflect"
	"testing"

	"github.com/tmorand/promptctx/internal/output"
	"github.com/tmorand/promptctx/internal/types"
)

// candidatesFromPaths builds a candidate list from relative paths alone;
// absolute paths are irrelevant to rendering.
func candidatesFromPaths(paths []string) []types.CandidateFile {
	var candidateFiles []types.CandidateFile
	for _, relativePath := range paths {
		candidateFiles = append(candidateFiles, types.CandidateFile{RelativePath: relativePath})
	}
	return candidateFiles
}

// TestRenderTreeLinesNestedHierarchy verifies that b/ appears
// because c.py survived, while the excluded d.png contributes no line.
func TestRenderTreeLinesNestedHierarchy(testingInstance *testing.T) {
	candidateFiles := candidatesFromPaths([]string{"a.py", "b/c.py"})
	lines := output.RenderTreeLines(candidateFiles)
	expectedLines := []string{
		".",
		"├── b/",
		"│   └── c.py",
		"└── a.py",
	}
	if !reflect.DeepEqual(lines, expectedLines) {
		testingInstance.Fatalf("unexpected tree:\ngot  %q\nwant %q", lines, expectedLines)
	}
}

// TestRenderTreeLinesDirectoriesBeforeFiles verifies child ordering: directories
// first, then case-insensitive names.
func TestRenderTreeLinesDirectoriesBeforeFiles(testingInstance *testing.T) {
	candidateFiles := candidatesFromPaths([]string{
		"zeta.txt",
		"Alpha.txt",
		"lib/util.go",
		"Docs/readme.md",
	})
	lines := output.RenderTreeLines(candidateFiles)
	expectedLines := []string{
		".",
		"├── Docs/",
		"│   └── readme.md",
		"├── lib/",
		"│   └── util.go",
		"├── Alpha.txt",
		"└── zeta.txt",
	}
	if !reflect.DeepEqual(lines, expectedLines) {
		testingInstance.Fatalf("unexpected tree:\ngot  %q\nwant %q", lines, expectedLines)
	}
}

// TestRenderTreeLinesDeepNesting verifies indentation accumulation under last and
// non-last ancestors.
func TestRenderTreeLinesDeepNesting(testingInstance *testing.T) {
	candidateFiles := candidatesFromPaths([]string{
		"a/b/c.txt",
		"a/d.txt",
		"e.txt",
	})
	lines := output.RenderTreeLines(candidateFiles)
	expectedLines := []string{
		".",
		"├── a/",
		"│   ├── b/",
		"│   │   └── c.txt",
		"│   └── d.txt",
		"└── e.txt",
	}
	if !reflect.DeepEqual(lines, expectedLines) {
		testingInstance.Fatalf("unexpected tree:\ngot  %q\nwant %q", lines, expectedLines)
	}
}

// TestRenderTreeLinesDeterminism verifies identical output across repeated calls.
func TestRenderTreeLinesDeterminism(testingInstance *testing.T) {
	candidateFiles := candidatesFromPaths([]string{"a.py", "b/c.py", "b/sub/d.py", "e/f.py"})
	firstRendering := output.RenderTreeLines(candidateFiles)
	for repetition := 0; repetition < 10; repetition++ {
		if !reflect.DeepEqual(output.RenderTreeLines(candidateFiles), firstRendering) {
			testingInstance.Fatalf("tree rendering is not deterministic")
		}
	}
}

// TestRenderTreeLinesEmptyCandidateList verifies that only the root line appears.
func TestRenderTreeLinesEmptyCandidateList(testingInstance *testing.T) {
	lines := output.RenderTreeLines(nil)
	if !reflect.DeepEqual(lines, []string{"."}) {
		testingInstance.Fatalf("expected only the root line, got %q", lines)
	}
}
