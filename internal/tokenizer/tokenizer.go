// Package tokenizer estimates token counts for generated documents.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// Config captures tokenizer selection parameters provided by the CLI.
type Config struct {
	Model string
}

const (
	defaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"
)

// NewCounter returns a Counter for the requested model along with the resolved
// model or encoding name. Unknown models fall back to the default encoding.
func NewCounter(configuration Config) (Counter, string, error) {
	modelName := strings.TrimSpace(configuration.Model)
	if modelName == "" {
		modelName = defaultModel
	}
	lowerModelName := strings.ToLower(modelName)

	encoding, encodingError := tiktoken.EncodingForModel(lowerModelName)
	if encodingError == nil && encoding != nil {
		return encodingCounter{encoding: encoding, name: lowerModelName}, modelName, nil
	}
	fallbackEncoding, fallbackError := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackError != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackError)
	}
	return encodingCounter{encoding: fallbackEncoding, name: defaultEncodingName}, defaultEncodingName, nil
}

type encodingCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter encodingCounter) Name() string {
	return counter.name
}

func (counter encodingCounter) CountString(input string) (int, error) {
	tokenIdentifiers := counter.encoding.Encode(input, nil, nil)
	return len(tokenIdentifiers), nil
}
