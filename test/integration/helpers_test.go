//go:build integration

package integration_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir      string // SKILLTOOL_HOME, holds config.yaml
	AssistantDir string // the assistant project with its skills file
	SkillsDir    string // one directory per skill, each with a manifest.json
}

// setupTestEnv creates isolated temp directories and points SKILLTOOL_HOME at
// one of them so no user config leaks into the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:      t.TempDir(),
		AssistantDir: t.TempDir(),
		SkillsDir:    t.TempDir(),
	}
	t.Setenv("SKILLTOOL_HOME", env.HomeDir)
	return env
}

// skillsFile returns the path of the assistant skills file.
func (e *testEnv) skillsFile() string {
	return filepath.Join(e.AssistantDir, "skills.json")
}

// writeSkill creates <SkillsDir>/<dir>/manifest.json and returns its path.
func writeSkill(t *testing.T, env *testEnv, dir, content string) string {
	t.Helper()
	path := filepath.Join(env.SkillsDir, dir, "manifest.json")
	writeFile(t, path, content)
	return path
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// readSkillNames decodes the skills file and returns the names in order.
func readSkillNames(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	var skills []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &skills); err != nil {
		t.Fatalf("decoding %s: %v", path, err)
	}
	names := make([]string, len(skills))
	for i, s := range skills {
		names[i] = s.Name
	}
	return names
}

// assertFileContent fails the test if the file does not hold want.
func assertFileContent(t *testing.T, path, want string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if string(data) != want {
		t.Errorf("%s =\n%s\nwant\n%s", path, data, want)
	}
}

// assertNoTempFiles fails the test if a write left temp files behind.
func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) > 0 {
		t.Errorf("temp files left behind: %v", matches)
	}
}
