package policy

import (
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// gitIgnoreFileName is the name of the Git ignore file looked up in the scan root.
const gitIgnoreFileName = ".gitignore"

// LoadRootGitIgnore compiles the .gitignore file found in the scan root.
// A missing file yields a nil matcher and no error.
func LoadRootGitIgnore(rootPath string) (*ignore.GitIgnore, error) {
	gitIgnorePath := filepath.Join(rootPath, gitIgnoreFileName)
	if _, statError := os.Stat(gitIgnorePath); statError != nil {
		if os.IsNotExist(statError) {
			return nil, nil
		}
		return nil, statError
	}
	return ignore.CompileIgnoreFile(gitIgnorePath)
}
