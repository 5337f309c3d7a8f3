package commands

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/tmorand/promptctx/internal/utils"
)

const (
	// truncationNoteFormat annotates content cut down to the byte budget.
	truncationNoteFormat = "TRUNCATED to first %d bytes (use --max-bytes 0 for full content)"
	// decodeCaveatNote annotates content whose invalid UTF-8 sequences were replaced.
	decodeCaveatNote = "invalid utf-8 replaced"
	// noteSeparator joins multiple recovery notes into one line.
	noteSeparator = " | "
)

// FileText holds the decoded content of a file plus an optional recovery note.
type FileText struct {
	Content string
	Note    string
}

// ReadFileText reads the file at filePath and prepares it for embedding. maxBytes
// caps the content length before decoding; zero means unlimited. The second return
// value is false when the file contributes no content: unreadable files and binary
// files are skipped silently rather than escalated. Truncation and lossy decoding
// are recoveries, not errors, and surface only through the note.
func ReadFileText(filePath string, maxBytes int64) (FileText, bool) {
	fileBytes, readError := os.ReadFile(filePath)
	if readError != nil {
		return FileText{}, false
	}
	if utils.IsProbablyBinary(fileBytes) {
		return FileText{}, false
	}

	var recoveryNotes []string
	if maxBytes > 0 && int64(len(fileBytes)) > maxBytes {
		fileBytes = fileBytes[:maxBytes]
		recoveryNotes = append(recoveryNotes, fmt.Sprintf(truncationNoteFormat, maxBytes))
	}

	decodedContent := string(fileBytes)
	if !utf8.Valid(fileBytes) {
		decodedContent = replaceInvalidBytes(fileBytes)
		recoveryNotes = append(recoveryNotes, decodeCaveatNote)
	}

	return FileText{
		Content: decodedContent,
		Note:    strings.Join(recoveryNotes, noteSeparator),
	}, true
}

// replaceInvalidBytes decodes data as UTF-8, substituting one replacement
// character per invalid byte rather than one per invalid run.
func replaceInvalidBytes(data []byte) string {
	var contentBuilder strings.Builder
	contentBuilder.Grow(len(data))
	for byteOffset := 0; byteOffset < len(data); {
		runeValue, runeSize := utf8.DecodeRune(data[byteOffset:])
		if runeValue == utf8.RuneError && runeSize == 1 {
			contentBuilder.WriteRune(utf8.RuneError)
			byteOffset++
			continue
		}
		contentBuilder.WriteRune(runeValue)
		byteOffset += runeSize
	}
	return contentBuilder.String()
}
