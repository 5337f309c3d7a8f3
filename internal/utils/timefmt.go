package utils

import (
	"time"
)

// generationTimestampLayout matches the header line of generated documents.
const generationTimestampLayout = "2006-01-02 15:04:05"

// FormatGenerationTimestamp returns the provided time formatted for the document header,
// using the local time zone with second precision.
func FormatGenerationTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.In(time.Local).Format(generationTimestampLayout)
}
