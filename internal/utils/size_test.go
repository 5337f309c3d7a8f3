package utils_test

import (
	"testing"

	"github.com/tmorand/promptctx/internal/utils"
)

// TestFormatFileSize verifies the summary size string across unit boundaries.
func TestFormatFileSize(testingInstance *testing.T) {
	testCases := []struct {
		name      string
		byteCount int64
		expected  string
	}{
		{name: "negative clamps to zero", byteCount: -5, expected: "0b"},
		{name: "zero bytes", byteCount: 0, expected: "0b"},
		{name: "below one kilobyte", byteCount: 512, expected: "512b"},
		{name: "exact kilobyte drops trailing zero", byteCount: 1024, expected: "1kb"},
		{name: "small value keeps one decimal", byteCount: 2560, expected: "2.5kb"},
		{name: "large value rounds to whole units", byteCount: 14 * 1024 * 1024, expected: "14mb"},
		{name: "gigabyte range", byteCount: 1536 * 1024 * 1024, expected: "1.5gb"},
	}
	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(testingInstance *testing.T) {
			if formatted := utils.FormatFileSize(testCase.byteCount); formatted != testCase.expected {
				testingInstance.Fatalf("FormatFileSize(%d) = %q, expected %q", testCase.byteCount, formatted, testCase.expected)
			}
		})
	}
}
