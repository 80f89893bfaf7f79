package connect

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const jsonExtension = "json"

// Resolve checks a path argument and returns its absolute form. The checks
// run in a fixed order: presence, .json extension, existence. Relative paths
// are joined to workDir; absolute paths are returned unchanged.
func Resolve(workDir, arg, value string) (string, error) {
	if value == "" {
		return "", &MissingArgumentError{Arg: arg}
	}
	if extension(value) != jsonExtension {
		return "", &InvalidExtensionError{Arg: arg, Value: value}
	}

	path := value
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, value)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{Arg: arg, Path: path}
		}
		return "", fmt.Errorf("checking %s: %w", path, err)
	}
	return path, nil
}

// extension returns the text after the last '.', or "" when there is none.
// The match is case-sensitive: "skills.JSON" has extension "JSON".
func extension(value string) string {
	i := strings.LastIndex(value, ".")
	if i < 0 {
		return ""
	}
	return value[i+1:]
}

// resolvePaths resolves the manifest argument completely before looking at
// the assistant skills argument.
func resolvePaths(workDir, manifestArg, skillsArg string) (manifestPath, skillsPath string, err error) {
	manifestPath, err = Resolve(workDir, ArgSkillManifest, manifestArg)
	if err != nil {
		return "", "", err
	}
	skillsPath, err = Resolve(workDir, ArgAssistantSkills, skillsArg)
	if err != nil {
		return "", "", err
	}
	return manifestPath, skillsPath, nil
}
