package connect

import (
	"fmt"
	"strings"

	"github.com/agentx-labs/skilltool/internal/manifest"
)

// Argument names as they appear on the command line.
const (
	ArgSkillManifest   = "skillManifest"
	ArgAssistantSkills = "assistantSkills"
)

// argumentTargets names what each argument should point at.
var argumentTargets = map[string]string{
	ArgSkillManifest:   "Skill manifest",
	ArgAssistantSkills: "Assistant Skills configuration file",
}

// MissingArgumentError reports a required argument that was not supplied.
type MissingArgumentError struct {
	Arg string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("The '%s' argument should be provided.", e.Arg)
}

// InvalidExtensionError reports an argument that does not name a .json file.
type InvalidExtensionError struct {
	Arg   string
	Value string
}

func (e *InvalidExtensionError) Error() string {
	return fmt.Sprintf("The '%s' argument should be a JSON file.", e.Arg)
}

// NotFoundError reports an argument whose resolved path does not exist.
type NotFoundError struct {
	Arg  string
	Path string
}

func (e *NotFoundError) Error() string {
	target := argumentTargets[e.Arg]
	if target == "" {
		target = "file"
	}
	return fmt.Sprintf("The '%s' argument leads to a non-existing file.\nPlease make sure to provide a valid path to your %s.", e.Arg, target)
}

// DuplicateSkillError reports a manifest whose name is already registered.
type DuplicateSkillError struct {
	Name string
}

func (e *DuplicateSkillError) Error() string {
	return fmt.Sprintf("The skill '%s' is already registered.", e.Name)
}

// ValidationError reports a manifest with missing required fields when the
// abort policy is in effect.
type ValidationError struct {
	Path    string
	Missing []manifest.MissingFieldWarning
}

func (e *ValidationError) Error() string {
	fields := make([]string, len(e.Missing))
	for i, w := range e.Missing {
		fields[i] = w.Field
	}
	return fmt.Sprintf("The manifest %s is missing required properties (%s).", e.Path, strings.Join(fields, ", "))
}
