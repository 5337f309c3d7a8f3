package tokenizer

import (
	"errors"

	"github.com/tmorand/promptctx/internal/utils"
)

// CountResult captures the outcome of counting a byte slice.
type CountResult struct {
	Tokens  int
	Counted bool
}

// CountBytes estimates tokens for the provided data using counter. Binary data is
// reported as uncounted rather than as an error.
func CountBytes(counter Counter, data []byte) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errors.New("nil tokenizer counter")
	}
	if utils.IsProbablyBinary(data) {
		return CountResult{Counted: false}, nil
	}
	tokenCount, countError := counter.CountString(string(data))
	if countError != nil {
		return CountResult{}, countError
	}
	return CountResult{Tokens: tokenCount, Counted: true}, nil
}
