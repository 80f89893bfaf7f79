package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultFilePerm is used when the target does not exist yet.
const defaultFilePerm os.FileMode = 0644

// WriteFileAtomic replaces the contents of path with data. The data is written
// to a temp file in the same directory, synced, given the permissions of the
// existing file, and renamed over path. The temp file never outlives a failed
// call, so path holds either the old contents or the new ones. When path is a
// symlink the link is kept and its target is replaced.
func WriteFileAtomic(path string, data []byte) (err error) {
	path, err = resolveTarget(path)
	if err != nil {
		return err
	}
	perm := FilePerm(path, defaultFilePerm)

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("writing temp file %s: %w", tmpPath, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file %s: %w", tmpPath, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file %s: %w", tmpPath, err)
	}
	if err = Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", tmpPath, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// resolveTarget follows symlinks in path. A path that does not exist yet is
// returned unchanged.
func resolveTarget(path string) (string, error) {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		if os.IsNotExist(err) {
			return path, nil
		}
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return target, nil
}
