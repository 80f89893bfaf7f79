package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// MissingFieldWarning reports a required manifest field that is absent, null,
// or empty.
type MissingFieldWarning struct {
	Field string
}

func (w MissingFieldWarning) String() string {
	return fmt.Sprintf("Missing property '%s' of the manifest", w.Field)
}

func (w MissingFieldWarning) Error() string { return w.String() }

// requiredField is one row of the presence table.
type requiredField struct {
	name    string
	present func(m *SkillManifest) bool
}

// requiredFields lists the manifest fields a host assistant needs, in the
// order they are reported.
var requiredFields = []requiredField{
	{FieldName, memberPresent(FieldName)},
	{FieldID, memberPresent(FieldID)},
	{FieldEndpoint, memberPresent(FieldEndpoint)},
	{FieldAuthenticationConnections, memberPresent(FieldAuthenticationConnections)},
	{FieldActions, hasFirstAction},
}

// RequiredFields returns the names of the required manifest fields in report
// order.
func RequiredFields() []string {
	names := make([]string, len(requiredFields))
	for i, f := range requiredFields {
		names[i] = f.name
	}
	return names
}

// Check returns one warning per required field that m is missing, in the order
// of RequiredFields. An empty result means the manifest is complete.
func Check(m *SkillManifest) []MissingFieldWarning {
	var missing []MissingFieldWarning
	for _, f := range requiredFields {
		if !f.present(m) {
			missing = append(missing, MissingFieldWarning{Field: f.name})
		}
	}
	return missing
}

func memberPresent(key string) func(m *SkillManifest) bool {
	return func(m *SkillManifest) bool {
		v, ok := m.Field(key)
		return ok && truthy(v)
	}
}

// hasFirstAction requires actions to be an array whose first entry is itself
// present.
func hasFirstAction(m *SkillManifest) bool {
	v, ok := m.Field(FieldActions)
	if !ok {
		return false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(v, &items); err != nil || len(items) == 0 {
		return false
	}
	return truthy(items[0])
}

// truthy reports whether a JSON value counts as set. null, false, zero and the
// empty string do not; objects and arrays always do, even when empty.
func truthy(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return false
	}
	switch string(v) {
	case "null", "false", `""`:
		return false
	}
	if c := v[0]; c == '-' || (c >= '0' && c <= '9') {
		f, err := strconv.ParseFloat(string(v), 64)
		return err != nil || f != 0
	}
	return true
}
