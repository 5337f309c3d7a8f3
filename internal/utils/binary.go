package utils

const (
	// binarySniffLength defines how many leading bytes are sampled when classifying content.
	binarySniffLength = 4096
	// binaryNonTextThreshold is the non-text byte fraction above which a buffer counts as binary.
	binaryNonTextThreshold = 0.30
)

// IsProbablyBinary reports whether the provided byte buffer appears to contain binary data.
// A NUL byte anywhere marks the buffer binary. Otherwise the first binarySniffLength bytes
// are sampled and the buffer is binary when the fraction of bytes outside printable ASCII
// plus tab, newline, and carriage return exceeds binaryNonTextThreshold.
// This is a heuristic; misclassification is acceptable and never treated as an error.
func IsProbablyBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	for _, byteValue := range data {
		if byteValue == 0 {
			return true
		}
	}
	sample := data
	if len(sample) > binarySniffLength {
		sample = sample[:binarySniffLength]
	}
	nonTextCount := 0
	for _, byteValue := range sample {
		if !isTextByte(byteValue) {
			nonTextCount++
		}
	}
	return float64(nonTextCount)/float64(len(sample)) > binaryNonTextThreshold
}

// isTextByte reports whether the byte is printable ASCII or common whitespace.
func isTextByte(byteValue byte) bool {
	if byteValue >= 32 && byteValue <= 126 {
		return true
	}
	return byteValue == '\t' || byteValue == '\n' || byteValue == '\r'
}
