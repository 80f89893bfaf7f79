package manifest

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/*.json
var schemaFS embed.FS

const (
	manifestSchemaFile = "manifest.schema.json"
	skillsSchemaFile   = "skills.schema.json"
)

var (
	compileOnce sync.Once
	compileErr  error
	schemas     map[string]*jsonschema.Schema
	printer     = message.NewPrinter(language.English)
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseError reports a document that is not valid JSON or does not have the
// expected top-level shape.
type ParseError struct {
	Path   string
	Issues []string // schema shape violations, empty for syntax errors
	Err    error
}

func (e *ParseError) Error() string {
	if len(e.Issues) > 0 {
		return fmt.Sprintf("parsing %s: %s", e.Path, strings.Join(e.Issues, "; "))
	}
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// getSchemas compiles the embedded document schemas once.
func getSchemas() (map[string]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		compiled := make(map[string]*jsonschema.Schema, 2)
		for _, name := range []string{manifestSchemaFile, skillsSchemaFile} {
			data, err := schemaFS.ReadFile("schema/" + name)
			if err != nil {
				compileErr = fmt.Errorf("reading schema %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				compileErr = fmt.Errorf("unmarshaling schema %s: %w", name, err)
				return
			}
			if err := c.AddResource(name, doc); err != nil {
				compileErr = fmt.Errorf("adding schema resource %s: %w", name, err)
				return
			}
		}
		for _, name := range []string{manifestSchemaFile, skillsSchemaFile} {
			s, err := c.Compile(name)
			if err != nil {
				compileErr = fmt.Errorf("compiling schema %s: %w", name, err)
				return
			}
			compiled[name] = s
		}
		schemas = compiled
	})
	return schemas, compileErr
}

// LoadManifest reads a skill manifest file. The file must hold a JSON object;
// missing manifest fields are not an error here (see Check).
func LoadManifest(path string) (*SkillManifest, error) {
	data, err := loadDocument(path, manifestSchemaFile)
	if err != nil {
		return nil, err
	}
	m, err := decodeSkill(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return m, nil
}

// LoadCollection reads an assistant skills file. The file must hold a JSON
// array of objects.
func LoadCollection(path string) (*Collection, error) {
	data, err := loadDocument(path, skillsSchemaFile)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	c := &Collection{Skills: make([]*SkillManifest, 0, len(items))}
	for i, item := range items {
		m, err := decodeSkill(item)
		if err != nil {
			return nil, &ParseError{Path: path, Err: fmt.Errorf("element %d: %w", i, err)}
		}
		c.Skills = append(c.Skills, m)
	}
	return c, nil
}

// loadDocument reads path, checks it is well-formed JSON matching the named
// shape schema, and returns the document bytes without a leading BOM.
func loadDocument(path, schemaName string) (json.RawMessage, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	compiled, err := getSchemas()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	if err := compiled[schemaName].Validate(inst); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, fmt.Errorf("validating %s: %w", path, err)
		}
		return nil, &ParseError{Path: path, Issues: extractIssues(ve), Err: err}
	}

	return data, nil
}

// extractIssues walks the ValidationError tree and returns leaf-level messages
// prefixed with their instance location.
func extractIssues(ve *jsonschema.ValidationError) []string {
	var issues []string
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		return []string{ve.Error()}
	}
	return issues
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]string) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}
	if ve.ErrorKind == nil {
		return
	}

	msg := ve.ErrorKind.LocalizedString(printer)
	if len(ve.InstanceLocation) > 0 {
		msg = "/" + strings.Join(ve.InstanceLocation, "/") + ": " + msg
	}
	*issues = append(*issues, msg)
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
