package utils

import (
	"fmt"
	"strings"
)

// sizeUnitSuffixes are the lower-case suffixes used in completion summaries.
var sizeUnitSuffixes = []string{"b", "kb", "mb", "gb", "tb", "pb"}

// FormatFileSize renders a document byte count as a short lower-case size
// string for the completion summary, such as "2.5kb" or "14mb".
func FormatFileSize(byteCount int64) string {
	if byteCount < 0 {
		return "0b"
	}
	scaledValue := float64(byteCount)
	suffixIndex := 0
	for scaledValue >= 1024 && suffixIndex < len(sizeUnitSuffixes)-1 {
		scaledValue /= 1024
		suffixIndex++
	}
	if suffixIndex == 0 {
		return fmt.Sprintf("%db", byteCount)
	}
	if scaledValue < 10 {
		formattedValue := strings.TrimSuffix(fmt.Sprintf("%.1f", scaledValue), ".0")
		return formattedValue + sizeUnitSuffixes[suffixIndex]
	}
	return fmt.Sprintf("%.0f%s", scaledValue, sizeUnitSuffixes[suffixIndex])
}
