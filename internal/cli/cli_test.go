package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentx-labs/skilltool/internal/connect"
	"github.com/spf13/viper"
)

const fooManifest = `{"name":"Foo","id":"1","endpoint":"https://x","authenticationConnections":[],"actions":[{}]}`

type runResult struct {
	stdout string
	stderr string
	err    error
}

// run executes the command tree in-process with an isolated config home.
func run(t *testing.T, args ...string) runResult {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("SKILLTOOL_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	rootCmd := newRootCmd(buildInfo{version: "1.2.3", commit: "abc123", date: "2026-01-01"})
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)

	err := execute(rootCmd, append(args, "--no-color"))
	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func setupFiles(t *testing.T, manifestDoc, skillsDoc string) (manifestPath, skillsPath string) {
	t.Helper()
	dir := t.TempDir()
	manifestPath = filepath.Join(dir, "manifest.json")
	skillsPath = filepath.Join(dir, "skills.json")
	writeFile(t, manifestPath, manifestDoc)
	writeFile(t, skillsPath, skillsDoc)
	return manifestPath, skillsPath
}

func TestConnect_NoFlagsShowsHelp(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("SKILLTOOL_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	rootCmd := newRootCmd(buildInfo{})
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)

	if err := execute(rootCmd, []string{"connect"}); err != nil {
		t.Fatalf("expected help without error, got %v", err)
	}
	if !strings.Contains(stdout.String(), "--skillManifest") {
		t.Errorf("help output missing flags:\n%s", stdout.String())
	}
}

func TestConnect_GlobalFlagsOnlyShowsHelp(t *testing.T) {
	for _, flag := range []string{"--verbose", "--no-color"} {
		t.Run(flag, func(t *testing.T) {
			res := run(t, "connect", flag)
			if res.err != nil {
				t.Fatalf("expected help without error, got %v", res.err)
			}
			if !strings.Contains(res.stdout, "--skillManifest") {
				t.Errorf("help output missing flags:\n%s", res.stdout)
			}
			if res.stderr != "" {
				t.Errorf("stderr = %q, want empty", res.stderr)
			}
		})
	}
}

func TestConnect_Success(t *testing.T) {
	manifestPath, skillsPath := setupFiles(t, fooManifest, "[]")

	res := run(t, "connect", "-m", manifestPath, "-a", skillsPath)
	if res.err != nil {
		t.Fatalf("connect error: %v\nstderr: %s", res.err, res.stderr)
	}
	if !strings.Contains(res.stdout, "Appending 'Foo' manifest") {
		t.Errorf("stdout missing progress line:\n%s", res.stdout)
	}
	if !strings.Contains(res.stdout, "Successfully appended 'Foo' manifest") {
		t.Errorf("stdout missing success line:\n%s", res.stdout)
	}
	if res.stderr != "" {
		t.Errorf("unexpected stderr:\n%s", res.stderr)
	}

	var skills []map[string]interface{}
	if err := json.Unmarshal([]byte(readFile(t, skillsPath)), &skills); err != nil {
		t.Fatalf("skills file is not valid JSON: %v", err)
	}
	if len(skills) != 1 || skills[0]["name"] != "Foo" {
		t.Errorf("skills = %v", skills)
	}
}

func TestConnect_RelativePaths(t *testing.T) {
	manifestPath, skillsPath := setupFiles(t, fooManifest, "[]")
	t.Chdir(filepath.Dir(manifestPath))

	res := run(t, "connect", "--skillManifest", "manifest.json", "--assistantSkills", "./skills.json")
	if res.err != nil {
		t.Fatalf("connect error: %v\nstderr: %s", res.err, res.stderr)
	}
	if !strings.Contains(readFile(t, skillsPath), `"name": "Foo"`) {
		t.Errorf("skills file not updated:\n%s", readFile(t, skillsPath))
	}
}

func TestConnect_Duplicate(t *testing.T) {
	original := "[\n    {\n        \"name\": \"Foo\"\n    }\n]"
	manifestPath, skillsPath := setupFiles(t, fooManifest, original)

	res := run(t, "connect", "-m", manifestPath, "-a", skillsPath)
	var dup *connect.DuplicateSkillError
	if !errors.As(res.err, &dup) {
		t.Fatalf("expected *connect.DuplicateSkillError, got %v", res.err)
	}
	if !strings.Contains(res.stderr, "The skill 'Foo' is already registered.") {
		t.Errorf("stderr = %q", res.stderr)
	}
	if got := readFile(t, skillsPath); got != original {
		t.Errorf("skills file changed:\n%s", got)
	}
}

func TestConnect_ArgumentErrors(t *testing.T) {
	manifestPath, skillsPath := setupFiles(t, fooManifest, "[]")
	dir := filepath.Dir(manifestPath)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"manifest missing", []string{"-a", skillsPath}, "The 'skillManifest' argument should be provided."},
		{"manifest not json", []string{"-m", filepath.Join(dir, "manifest.txt"), "-a", skillsPath}, "The 'skillManifest' argument should be a JSON file."},
		{"manifest not found", []string{"-m", filepath.Join(dir, "nope.json"), "-a", skillsPath}, "The 'skillManifest' argument leads to a non-existing file."},
		{"skills missing", []string{"-m", manifestPath}, "The 'assistantSkills' argument should be provided."},
		{"skills not json", []string{"-m", manifestPath, "-a", filepath.Join(dir, "skills")}, "The 'assistantSkills' argument should be a JSON file."},
		{"skills not found", []string{"-m", manifestPath, "-a", filepath.Join(dir, "nope.json")}, "Please make sure to provide a valid path to your Assistant Skills configuration file."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, append([]string{"connect"}, tt.args...)...)
			if res.err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(res.stderr, tt.want) {
				t.Errorf("stderr = %q, want it to contain %q", res.stderr, tt.want)
			}
			if got := readFile(t, skillsPath); got != "[]" {
				t.Errorf("skills file changed: %s", got)
			}
		})
	}
}

func TestConnect_MissingPropertiesWarn(t *testing.T) {
	manifestPath, skillsPath := setupFiles(t, `{"name":"Partial","id":"p","endpoint":"https://p"}`, "[]")

	res := run(t, "connect", "-m", manifestPath, "-a", skillsPath)
	if res.err != nil {
		t.Fatalf("connect error: %v", res.err)
	}
	wantWarnings := "Missing property 'authenticationConnections' of the manifest\nMissing property 'actions' of the manifest\n"
	if res.stderr != wantWarnings {
		t.Errorf("stderr = %q, want %q", res.stderr, wantWarnings)
	}
	if !strings.Contains(readFile(t, skillsPath), `"name": "Partial"`) {
		t.Error("manifest was not appended")
	}
}

func TestConnect_Strict(t *testing.T) {
	manifestPath, skillsPath := setupFiles(t, `{"name":"Partial"}`, "[]")

	res := run(t, "connect", "-m", manifestPath, "-a", skillsPath, "--strict")
	var ve *connect.ValidationError
	if !errors.As(res.err, &ve) {
		t.Fatalf("expected *connect.ValidationError, got %v", res.err)
	}
	if got := readFile(t, skillsPath); got != "[]" {
		t.Errorf("skills file changed: %s", got)
	}
}

func TestConnect_ConfigAbortPolicy(t *testing.T) {
	manifestPath, skillsPath := setupFiles(t, `{"name":"Partial"}`, "[]")
	t.Setenv("SKILLTOOL_ON_VALIDATION_FAILURE", "abort")

	res := run(t, "connect", "-m", manifestPath, "-a", skillsPath)
	var ve *connect.ValidationError
	if !errors.As(res.err, &ve) {
		t.Fatalf("expected *connect.ValidationError, got %v", res.err)
	}
}

func TestConnect_DryRun(t *testing.T) {
	manifestPath, skillsPath := setupFiles(t, fooManifest, "[]")

	res := run(t, "connect", "-m", manifestPath, "-a", skillsPath, "--dry-run")
	if res.err != nil {
		t.Fatalf("connect error: %v", res.err)
	}
	if !strings.Contains(res.stdout, `"name": "Foo"`) {
		t.Errorf("stdout missing merged document:\n%s", res.stdout)
	}
	if got := readFile(t, skillsPath); got != "[]" {
		t.Errorf("skills file changed on dry run: %s", got)
	}
}

func TestConnect_Verbose(t *testing.T) {
	manifestPath, skillsPath := setupFiles(t, fooManifest, "[]")

	res := run(t, "connect", "-m", manifestPath, "-a", skillsPath, "--verbose")
	if res.err != nil {
		t.Fatalf("connect error: %v", res.err)
	}
	if !strings.Contains(res.stderr, "stage=persisted") {
		t.Errorf("stderr missing debug log:\n%s", res.stderr)
	}
}

func TestConnect_UnknownFlag(t *testing.T) {
	res := run(t, "connect", "--bogus")
	if res.err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(res.stderr, "Unknown arguments: unknown flag: --bogus") {
		t.Errorf("stderr = %q", res.stderr)
	}
	if !strings.Contains(res.stderr, "Usage:") {
		t.Errorf("stderr missing usage:\n%s", res.stderr)
	}
}

func TestConnect_RejectsPositionalArgs(t *testing.T) {
	manifestPath, skillsPath := setupFiles(t, fooManifest, "[]")

	res := run(t, "connect", manifestPath, skillsPath)
	if res.err == nil {
		t.Fatal("expected error for positional arguments")
	}
}

func TestList(t *testing.T) {
	_, skillsPath := setupFiles(t, fooManifest, `[
    {"name":"Calendar Skill","id":"calendarSkill","endpoint":"https://c","actions":[{},{}]},
    {"name":"Email Skill","id":"emailSkill","endpoint":"https://e","actions":[]}
]`)

	res := run(t, "list", "-a", skillsPath)
	if res.err != nil {
		t.Fatalf("list error: %v", res.err)
	}
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got:\n%s", res.stdout)
	}
	if !strings.HasPrefix(lines[0], "NAME") || !strings.HasPrefix(lines[1], "Calendar Skill") {
		t.Errorf("unexpected table:\n%s", res.stdout)
	}
}

func TestList_JSON(t *testing.T) {
	_, skillsPath := setupFiles(t, fooManifest, `[{"name":"Calendar Skill","id":"calendarSkill","actions":[{}]}]`)

	res := run(t, "list", "-a", skillsPath, "--json")
	if res.err != nil {
		t.Fatalf("list error: %v", res.err)
	}
	var entries []listEntry
	if err := json.Unmarshal([]byte(res.stdout), &entries); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, res.stdout)
	}
	if len(entries) != 1 || entries[0].ID != "calendarSkill" || entries[0].Actions != 1 {
		t.Errorf("entries = %+v", entries)
	}
}

func TestList_Empty(t *testing.T) {
	_, skillsPath := setupFiles(t, fooManifest, "[]")

	res := run(t, "list", "-a", skillsPath)
	if res.err != nil {
		t.Fatalf("list error: %v", res.err)
	}
	if !strings.Contains(res.stdout, "No skills registered yet.") {
		t.Errorf("stdout = %q", res.stdout)
	}
}

func TestValidate(t *testing.T) {
	manifestPath, _ := setupFiles(t, fooManifest, "[]")

	res := run(t, "validate", "-m", manifestPath)
	if res.err != nil {
		t.Fatalf("validate error: %v", res.err)
	}
	if !strings.Contains(res.stdout, "'Foo' has all required properties") {
		t.Errorf("stdout = %q", res.stdout)
	}
}

func TestValidate_Missing(t *testing.T) {
	manifestPath, _ := setupFiles(t, `{"id":"1"}`, "[]")

	res := run(t, "validate", "-m", manifestPath)
	if res.err == nil {
		t.Fatal("expected error for incomplete manifest")
	}
	if !strings.Contains(res.stderr, "Missing property 'name' of the manifest") {
		t.Errorf("stderr = %q", res.stderr)
	}
	if strings.Contains(res.stderr, "written") {
		t.Errorf("validate never writes, stderr = %q", res.stderr)
	}
}

func TestVersion(t *testing.T) {
	res := run(t, "version", "--short")
	if res.err != nil {
		t.Fatal(res.err)
	}
	if strings.TrimSpace(res.stdout) != "1.2.3" {
		t.Errorf("stdout = %q, want %q", res.stdout, "1.2.3")
	}

	res = run(t, "version", "--json")
	var info map[string]string
	if err := json.Unmarshal([]byte(res.stdout), &info); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if info["commit"] != "abc123" {
		t.Errorf("commit = %q", info["commit"])
	}
}

func TestConfigSetGet(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	home := t.TempDir()
	t.Setenv("SKILLTOOL_HOME", home)

	exec := func(args ...string) string {
		var stdout bytes.Buffer
		rootCmd := newRootCmd(buildInfo{})
		rootCmd.SetOut(&stdout)
		rootCmd.SetErr(&stdout)
		if err := execute(rootCmd, args); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return stdout.String()
	}

	exec("config", "set", "on_validation_failure", "abort")
	if _, err := os.Stat(filepath.Join(home, "config.yaml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	viper.Reset()
	if got := strings.TrimSpace(exec("config", "get", "on_validation_failure")); got != "abort" {
		t.Errorf("config get = %q, want %q", got, "abort")
	}
}
