package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/tmorand/promptctx/internal/types"
	"github.com/tmorand/promptctx/internal/utils"
)

const (
	documentTitle        = "# Project Context\n\n"
	generatedLineFormat  = "_Generated: %s_\n\n"
	rootLineFormat       = "_Root: `%s`_\n\n"
	sectionSeparator     = "---\n\n"
	treeSectionHeader    = "## 1) Project Tree (included files)\n\n```text\n"
	treeSectionFooter    = "\n```\n\n---\n\n"
	contentSectionHeader = "## 2) File Contents\n\n"
	fileHeadingFormat    = "### FILE: `%s`\n"
	noteLineFormat       = "> NOTE: %s\n"
	fencedBlockFormat    = "\n```%s\n%s\n```\n\n---\n\n"
	tokenFooterFormat    = "_Estimated tokens: %d (%s)_\n"
)

// BuildDocument assembles the final Markdown text from the rendered tree and the
// prepared file sections. Construction is append-only; the result is never
// modified after assembly.
func BuildDocument(rootPath string, generatedAt time.Time, treeLines []string, fileSections []types.FileSection) string {
	var documentBuilder strings.Builder
	documentBuilder.WriteString(documentTitle)
	documentBuilder.WriteString(fmt.Sprintf(generatedLineFormat, utils.FormatGenerationTimestamp(generatedAt)))
	documentBuilder.WriteString(fmt.Sprintf(rootLineFormat, rootPath))
	documentBuilder.WriteString(sectionSeparator)

	documentBuilder.WriteString(treeSectionHeader)
	documentBuilder.WriteString(strings.Join(treeLines, "\n"))
	documentBuilder.WriteString(treeSectionFooter)

	documentBuilder.WriteString(contentSectionHeader)
	for _, fileSection := range fileSections {
		documentBuilder.WriteString(fmt.Sprintf(fileHeadingFormat, fileSection.RelativePath))
		if fileSection.Note != "" {
			documentBuilder.WriteString(fmt.Sprintf(noteLineFormat, fileSection.Note))
		}
		documentBuilder.WriteString(fmt.Sprintf(fencedBlockFormat, fileSection.Language, fileSection.Content))
	}

	return documentBuilder.String()
}

// AppendTokenFooter attaches the token estimate line to an assembled document.
func AppendTokenFooter(document string, tokenCount int, modelName string) string {
	return document + fmt.Sprintf(tokenFooterFormat, tokenCount, modelName)
}
