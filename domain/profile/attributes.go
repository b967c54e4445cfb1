package profile

import (
	"strings"
)

// CurrentSchemaVersion is the attribute record version this core writes
const CurrentSchemaVersion = 1

// ExperienceLevel is an ordinal career stage
type ExperienceLevel int

const (
	ExperienceUnknown ExperienceLevel = iota
	ExperienceEntry
	ExperienceMid
	ExperienceSenior
	ExperienceLead
	ExperienceExecutive
)

// maxExperienceGap is the widest ordinal distance two levels can have
const maxExperienceGap = int(ExperienceExecutive - ExperienceEntry)

// AttributeRecord is the versioned, explicitly-typed view of a user's
// profile attributes used as ranking input. It replaces the free-form
// per-user attribute blob: a schemaless map gives similarity scoring no
// stable semantics across versions.
type AttributeRecord struct {
	SchemaVersion   int             `json:"schema_version"`
	UserID          string          `json:"user_id"`
	Skills          []string        `json:"skills"`
	Industry        string          `json:"industry"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`

	// InterestVector is an opaque semantic representation of the user's
	// interests, used for content similarity. May be empty.
	InterestVector []float64 `json:"interest_vector,omitempty"`
}

// SkillSet returns the record's skills as a normalized lowercase set
func (r *AttributeRecord) SkillSet() map[string]struct{} {
	set := make(map[string]struct{}, len(r.Skills))
	for _, s := range r.Skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			set[s] = struct{}{}
		}
	}
	return set
}

// MigrateAttributes upgrades a v0 open-map attribute blob to the current
// typed record. Unknown keys are dropped; known keys are coerced. This is
// the migration path for data written before the schema existed.
func MigrateAttributes(userID string, raw map[string]interface{}) AttributeRecord {
	rec := AttributeRecord{
		SchemaVersion: CurrentSchemaVersion,
		UserID:        userID,
	}

	if skills, ok := raw["skills"].([]interface{}); ok {
		for _, s := range skills {
			if str, ok := s.(string); ok {
				rec.Skills = append(rec.Skills, str)
			}
		}
	}
	if industry, ok := raw["industry"].(string); ok {
		rec.Industry = industry
	}
	if level, ok := raw["experience_level"].(string); ok {
		rec.ExperienceLevel = ParseExperienceLevel(level)
	}

	return rec
}

// ParseExperienceLevel maps a stored level name to its ordinal
func ParseExperienceLevel(s string) ExperienceLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "entry", "junior", "beginner":
		return ExperienceEntry
	case "mid", "intermediate":
		return ExperienceMid
	case "senior", "advanced":
		return ExperienceSenior
	case "lead", "principal", "expert":
		return ExperienceLead
	case "executive", "director", "master":
		return ExperienceExecutive
	default:
		return ExperienceUnknown
	}
}
