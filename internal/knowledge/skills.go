package knowledge

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// SkillGroups keeps skill groups in the order the author wrote them.
// Records spell them as an object ({"Languages": ["Go"]}); a list of
// {name, skills} objects is accepted too.
type SkillGroups []SkillGroup

// UnmarshalJSON decodes an object while preserving key order
func (g *SkillGroups) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*g = nil
		return nil
	}

	if trimmed[0] == '[' {
		var groups []SkillGroup
		if err := json.Unmarshal(trimmed, &groups); err != nil {
			return fmt.Errorf("skills: %w", err)
		}
		*g = groups
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("skills: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("skills: expected object or array, got %v", tok)
	}

	groups := SkillGroups{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("skills: %w", err)
		}
		name, _ := keyTok.(string)

		var skills []string
		if err := dec.Decode(&skills); err != nil {
			return fmt.Errorf("skills %q: %w", name, err)
		}
		groups = append(groups, SkillGroup{Name: name, Skills: skills})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("skills: %w", err)
	}

	*g = groups
	return nil
}

// MarshalJSON writes the groups back as an ordered object
func (g SkillGroups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, group := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(group.Name)
		if err != nil {
			return nil, err
		}
		skills := group.Skills
		if skills == nil {
			skills = []string{}
		}
		val, err := json.Marshal(skills)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a mapping in document order
func (g *SkillGroups) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var groups []SkillGroup
		if err := node.Decode(&groups); err != nil {
			return fmt.Errorf("skills: %w", err)
		}
		*g = groups
		return nil
	case yaml.MappingNode:
		groups := make(SkillGroups, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			name := node.Content[i].Value
			var skills []string
			if err := node.Content[i+1].Decode(&skills); err != nil {
				return fmt.Errorf("skills %q: %w", name, err)
			}
			groups = append(groups, SkillGroup{Name: name, Skills: skills})
		}
		*g = groups
		return nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*g = nil
			return nil
		}
	}
	return fmt.Errorf("skills: expected mapping or sequence at line %d", node.Line)
}
