package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field names of a skill manifest.
const (
	FieldName                      = "name"
	FieldID                        = "id"
	FieldEndpoint                  = "endpoint"
	FieldAuthenticationConnections = "authenticationConnections"
	FieldActions                   = "actions"
)

// SkillManifest describes a single skill: its identity, the endpoint it is
// invoked at, and the actions it exposes. Only the fields the registrar looks
// at are decoded; the original document is kept verbatim in Raw.
type SkillManifest struct {
	Name     string
	ID       string
	Endpoint string

	AuthenticationConnections json.RawMessage
	Actions                   json.RawMessage

	// fields holds every top-level member of the document, including ones
	// this package does not model.
	fields map[string]json.RawMessage
	raw    json.RawMessage
}

// decodeSkill builds a SkillManifest from a JSON object.
func decodeSkill(data json.RawMessage) (*SkillManifest, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("expected a JSON object, got null")
	}

	m := &SkillManifest{
		fields: fields,
		raw:    compactRaw(data),
	}
	m.Name = stringValue(fields[FieldName])
	m.ID = stringValue(fields[FieldID])
	m.Endpoint = stringValue(fields[FieldEndpoint])
	m.AuthenticationConnections = fields[FieldAuthenticationConnections]
	m.Actions = fields[FieldActions]
	return m, nil
}

// Field returns the raw JSON value of a top-level member and whether the
// member is present at all. A member explicitly set to null is present.
func (m *SkillManifest) Field(key string) (json.RawMessage, bool) {
	v, ok := m.fields[key]
	return v, ok
}

// Raw returns the manifest document as it was loaded.
func (m *SkillManifest) Raw() json.RawMessage {
	return m.raw
}

// ActionCount returns the number of entries in actions, or 0 when actions is
// absent or not an array.
func (m *SkillManifest) ActionCount() int {
	var items []json.RawMessage
	if err := json.Unmarshal(m.Actions, &items); err != nil {
		return 0
	}
	return len(items)
}

// nameKey identifies the manifest for duplicate detection. Two manifests
// collide when their name members are equal JSON values of the same kind; two
// manifests without a name member also collide.
func (m *SkillManifest) nameKey() string {
	v, ok := m.fields[FieldName]
	if !ok {
		return ""
	}
	if isNull(v) {
		return "null"
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return "s:" + s
	}
	return "r:" + string(compactRaw(v))
}

// stringValue returns the decoded string for JSON strings and the compact JSON
// text for any other present value.
func stringValue(v json.RawMessage) string {
	if len(v) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	if isNull(v) {
		return ""
	}
	return string(compactRaw(v))
}

func compactRaw(v json.RawMessage) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, v); err != nil {
		return append(json.RawMessage(nil), v...)
	}
	return buf.Bytes()
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
