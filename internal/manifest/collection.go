package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Indent is the indentation used when writing an assistant skills file.
const Indent = "    "

// Collection is the ordered list of manifests registered with an assistant.
type Collection struct {
	Skills []*SkillManifest
}

// Len returns the number of registered skills.
func (c *Collection) Len() int { return len(c.Skills) }

// Find returns the index of the first skill whose name equals m's name, or -1.
// Names compare exactly and case-sensitively; ids are not considered.
func (c *Collection) Find(m *SkillManifest) int {
	key := m.nameKey()
	for i, s := range c.Skills {
		if s.nameKey() == key {
			return i
		}
	}
	return -1
}

// Append adds m to the end of the collection.
func (c *Collection) Append(m *SkillManifest) {
	c.Skills = append(c.Skills, m)
}

// Marshal renders the collection as a JSON array indented with four spaces.
// Each element keeps its original members and key order. The output has no
// trailing newline.
func (c *Collection) Marshal() ([]byte, error) {
	items := make([]json.RawMessage, 0, len(c.Skills))
	for _, s := range c.Skills {
		items = append(items, s.Raw())
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(items); err != nil {
		return nil, fmt.Errorf("encoding skills: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
