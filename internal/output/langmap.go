package output

import (
	"path/filepath"
	"strings"
)

// defaultFenceLanguage tags files whose extension has no known language.
const defaultFenceLanguage = "text"

// dockerfileName receives a dedicated fence language despite having no extension.
const dockerfileName = "dockerfile"

// fenceLanguages maps lower-cased file extensions to Markdown fence language tags.
var fenceLanguages = map[string]string{
	".py":    "python",
	".js":    "javascript",
	".ts":    "typescript",
	".tsx":   "tsx",
	".jsx":   "jsx",
	".java":  "java",
	".go":    "go",
	".rs":    "rust",
	".cpp":   "cpp",
	".c":     "c",
	".h":     "c",
	".hpp":   "cpp",
	".cs":    "csharp",
	".php":   "php",
	".rb":    "ruby",
	".kt":    "kotlin",
	".swift": "swift",
	".sh":    "bash",
	".zsh":   "zsh",
	".ps1":   "powershell",
	".sql":   "sql",
	".json":  "json",
	".yaml":  "yaml",
	".yml":   "yaml",
	".toml":  "toml",
	".ini":   "ini",
	".cfg":   "ini",
	".xml":   "xml",
	".html":  "html",
	".css":   "css",
	".md":    "markdown",
	".tex":   "tex",
}

// FenceLanguage returns the Markdown fence language tag for the given file name.
func FenceLanguage(fileName string) string {
	if strings.EqualFold(fileName, dockerfileName) {
		return dockerfileName
	}
	extension := strings.ToLower(filepath.Ext(fileName))
	if language, isKnown := fenceLanguages[extension]; isKnown {
		return language
	}
	return defaultFenceLanguage
}
