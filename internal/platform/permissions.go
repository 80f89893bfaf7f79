package platform

import (
	"os"
	"runtime"
)

// Chmod sets file permissions. On Windows this is a no-op.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// FilePerm returns the permission bits of an existing file, or fallback when
// path cannot be stat'ed.
func FilePerm(path string, fallback os.FileMode) os.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return fallback
	}
	return info.Mode().Perm()
}
