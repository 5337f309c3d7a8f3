package commands_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tmorand/promptctx/internal/commands"
)

// TestReadFileTextPlain verifies that an ordinary text file is returned without notes.
func TestReadFileTextPlain(testingHandle *testing.T) {
	filePath := filepath.Join(testingHandle.TempDir(), "plain.txt")
	writeTestFile(testingHandle, filePath, "hello world\n")

	fileText, hasContent := commands.ReadFileText(filePath, 0)
	if !hasContent {
		testingHandle.Fatalf("expected content for plain text file")
	}
	if fileText.Content != "hello world\n" {
		testingHandle.Fatalf("unexpected content: %q", fileText.Content)
	}
	if fileText.Note != "" {
		testingHandle.Fatalf("unexpected note: %q", fileText.Note)
	}
}

// TestReadFileTextTruncation verifies that a ten-byte budget on a twenty-byte file
// truncates the content and attaches a truncation note, while the file still
// contributes content.
func TestReadFileTextTruncation(testingHandle *testing.T) {
	filePath := filepath.Join(testingHandle.TempDir(), "long.txt")
	writeTestFile(testingHandle, filePath, "01234567890123456789")

	fileText, hasContent := commands.ReadFileText(filePath, 10)
	if !hasContent {
		testingHandle.Fatalf("expected truncated file to contribute content")
	}
	if fileText.Content != "0123456789" {
		testingHandle.Fatalf("unexpected truncated content: %q", fileText.Content)
	}
	if !strings.Contains(fileText.Note, "TRUNCATED to first 10 bytes") {
		testingHandle.Fatalf("expected truncation note, got %q", fileText.Note)
	}
}

// TestReadFileTextInvalidUTF8 verifies the lossy decode recovery and its note.
func TestReadFileTextInvalidUTF8(testingHandle *testing.T) {
	filePath := filepath.Join(testingHandle.TempDir(), "latin1.txt")
	writeTestFile(testingHandle, filePath, "caf\xe9\n")

	fileText, hasContent := commands.ReadFileText(filePath, 0)
	if !hasContent {
		testingHandle.Fatalf("expected content for latin-1 file")
	}
	if !strings.Contains(fileText.Content, "�") {
		testingHandle.Fatalf("expected replacement character in content: %q", fileText.Content)
	}
	if !strings.Contains(fileText.Note, "invalid utf-8 replaced") {
		testingHandle.Fatalf("expected decode note, got %q", fileText.Note)
	}
}

// TestReadFileTextInvalidUTF8Run verifies that consecutive invalid bytes each
// become their own replacement character instead of collapsing into one.
func TestReadFileTextInvalidUTF8Run(testingHandle *testing.T) {
	filePath := filepath.Join(testingHandle.TempDir(), "latin1-run.txt")
	writeTestFile(testingHandle, filePath, "aaaaaaa\xe9\xe9")

	fileText, hasContent := commands.ReadFileText(filePath, 0)
	if !hasContent {
		testingHandle.Fatalf("expected content for latin-1 file")
	}
	if fileText.Content != "aaaaaaa��" {
		testingHandle.Fatalf("expected one replacement per invalid byte, got %q", fileText.Content)
	}
	if !strings.Contains(fileText.Note, "invalid utf-8 replaced") {
		testingHandle.Fatalf("expected decode note, got %q", fileText.Note)
	}
}

// TestReadFileTextBinary verifies that binary content yields no content and no error.
func TestReadFileTextBinary(testingHandle *testing.T) {
	filePath := filepath.Join(testingHandle.TempDir(), "blob.bin")
	if writeError := os.WriteFile(filePath, []byte{0x00, 0x01, 0x02}, 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write binary file: %v", writeError)
	}

	if _, hasContent := commands.ReadFileText(filePath, 0); hasContent {
		testingHandle.Fatalf("expected binary file to contribute no content")
	}
}

// TestReadFileTextUnreadable verifies that a missing file is skipped silently.
func TestReadFileTextUnreadable(testingHandle *testing.T) {
	missingPath := filepath.Join(testingHandle.TempDir(), "missing.txt")
	if _, hasContent := commands.ReadFileText(missingPath, 0); hasContent {
		testingHandle.Fatalf("expected missing file to contribute no content")
	}
}

// TestReadFileTextTruncationSplittingRune verifies that a budget cutting through a
// multi-byte rune records both the truncation and the decode caveat. The ASCII
// prefix keeps the emoji's bytes below the binary-detection threshold.
func TestReadFileTextTruncationSplittingRune(testingHandle *testing.T) {
	filePath := filepath.Join(testingHandle.TempDir(), "emoji.txt")
	writeTestFile(testingHandle, filePath, "aaaaaaaaaaaa\U0001F600")

	fileText, hasContent := commands.ReadFileText(filePath, 14)
	if !hasContent {
		testingHandle.Fatalf("expected content despite split rune")
	}
	if !strings.Contains(fileText.Note, "TRUNCATED to first 14 bytes") {
		testingHandle.Fatalf("expected truncation note, got %q", fileText.Note)
	}
	if !strings.Contains(fileText.Note, "invalid utf-8 replaced") {
		testingHandle.Fatalf("expected decode note, got %q", fileText.Note)
	}
	if !strings.Contains(fileText.Note, " | ") {
		testingHandle.Fatalf("expected combined note separator, got %q", fileText.Note)
	}
}
