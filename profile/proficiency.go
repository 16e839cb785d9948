package profile

import "strings"

// Proficiency is the self-assessed digital proficiency level.
type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "Beginner"
	ProficiencyBasic        Proficiency = "Basic"
	ProficiencyIntermediate Proficiency = "Intermediate"
	ProficiencyAdvanced     Proficiency = "Advanced"
	ProficiencyExpert       Proficiency = "Expert"
)

var levelToProficiency = map[int]Proficiency{
	1: ProficiencyBeginner,
	2: ProficiencyBasic,
	3: ProficiencyIntermediate,
	4: ProficiencyAdvanced,
	5: ProficiencyExpert,
}

// ProficiencyFromLevel maps the numeric 1-5 scale to a level. Values
// outside the table default to Intermediate.
func ProficiencyFromLevel(level int) Proficiency {
	if p, ok := levelToProficiency[level]; ok {
		return p
	}
	return ProficiencyIntermediate
}

// ParseProficiency parses a level name case-insensitively. Unknown
// names default to Intermediate.
func ParseProficiency(s string) Proficiency {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return ProficiencyBeginner
	case "basic":
		return ProficiencyBasic
	case "intermediate":
		return ProficiencyIntermediate
	case "advanced":
		return ProficiencyAdvanced
	case "expert":
		return ProficiencyExpert
	default:
		return ProficiencyIntermediate
	}
}

func (p Proficiency) String() string {
	return string(p)
}
