package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestFile creates a file with the specified content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string, content string) {
	testingHandle.Helper()
	if makeDirError := os.MkdirAll(filepath.Dir(filePath), 0o755); makeDirError != nil {
		testingHandle.Fatalf("failed to create directory for %s: %v", filePath, makeDirError)
	}
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// setTestHomeDirectory points home-directory lookups at an empty temporary
// directory so a global configuration file on the host cannot alter test runs.
func setTestHomeDirectory(testingHandle *testing.T) {
	testingHandle.Helper()
	testingHandle.Setenv("HOME", testingHandle.TempDir())
}

// TestRootCommandGeneratesDocument verifies a full run driven through the flag surface.
func TestRootCommandGeneratesDocument(testingHandle *testing.T) {
	setTestHomeDirectory(testingHandle)
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "a.py"), "print('a')\n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "b", "c.py"), "print('c')\n")

	rootCommand := createRootCommand()
	rootCommand.SetArgs([]string{"--root", rootDirectory, "--out", "ctx.md"})
	if executeError := rootCommand.Execute(); executeError != nil {
		testingHandle.Fatalf("command execution failed: %v", executeError)
	}

	documentBytes, readError := os.ReadFile(filepath.Join(rootDirectory, "ctx.md"))
	if readError != nil {
		testingHandle.Fatalf("expected document to be written: %v", readError)
	}
	document := string(documentBytes)
	if !strings.Contains(document, "# Project Context") {
		testingHandle.Fatalf("document missing header")
	}
	if !strings.Contains(document, "### FILE: `b/c.py`") {
		testingHandle.Fatalf("document missing nested file section")
	}
}

// TestRootCommandIncludeExtensionAllowList verifies that --include-ext narrows the
// candidate set without re-admitting default-excluded extensions.
func TestRootCommandIncludeExtensionAllowList(testingHandle *testing.T) {
	setTestHomeDirectory(testingHandle)
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "keep.py"), "pass\n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "drop.md"), "# doc\n")

	rootCommand := createRootCommand()
	rootCommand.SetArgs([]string{"--root", rootDirectory, "--out", "ctx.md", "--include-ext", "py,png"})
	if executeError := rootCommand.Execute(); executeError != nil {
		testingHandle.Fatalf("command execution failed: %v", executeError)
	}

	documentBytes, readError := os.ReadFile(filepath.Join(rootDirectory, "ctx.md"))
	if readError != nil {
		testingHandle.Fatalf("expected document to be written: %v", readError)
	}
	document := string(documentBytes)
	if !strings.Contains(document, "keep.py") {
		testingHandle.Fatalf("allow-listed file missing from document")
	}
	if strings.Contains(document, "drop.md") {
		testingHandle.Fatalf("file outside the allow-list leaked into the document")
	}
}

// TestRootCommandUnknownFlag verifies that malformed input fails before scanning.
func TestRootCommandUnknownFlag(testingHandle *testing.T) {
	rootCommand := createRootCommand()
	rootCommand.SetArgs([]string{"--definitely-not-a-flag"})
	rootCommand.SetErr(&bytes.Buffer{})
	rootCommand.SetOut(&bytes.Buffer{})
	if executeError := rootCommand.Execute(); executeError == nil {
		testingHandle.Fatalf("expected an error for an unknown flag")
	}
}

// TestRootCommandConfigFileDefaults verifies that configuration file values apply
// when the corresponding flags are not set.
func TestRootCommandConfigFileDefaults(testingHandle *testing.T) {
	setTestHomeDirectory(testingHandle)
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "a.py"), "pass\n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "skipme", "b.py"), "pass\n")
	configurationContent := "output: from_config.md\nexclude_glob:\n  - \"skipme/**\"\n"
	writeTestFile(testingHandle, filepath.Join(rootDirectory, ".promptctx.yaml"), configurationContent)

	rootCommand := createRootCommand()
	rootCommand.SetArgs([]string{"--root", rootDirectory})
	if executeError := rootCommand.Execute(); executeError != nil {
		testingHandle.Fatalf("command execution failed: %v", executeError)
	}

	documentBytes, readError := os.ReadFile(filepath.Join(rootDirectory, "from_config.md"))
	if readError != nil {
		testingHandle.Fatalf("expected configured output file: %v", readError)
	}
	if strings.Contains(string(documentBytes), "skipme/b.py") {
		testingHandle.Fatalf("configured exclude glob was not applied")
	}
}
