// Package profile models the short professional profile a user fills
// in before enrichment, and the proficiency scale used for difficulty
// gating.
package profile

import (
	"fmt"
	"strings"
)

// Profile is the professional context collected from the user. Field
// order matters: ContextString emits the keys in declaration order.
type Profile struct {
	JobRole            string `json:"job_role" yaml:"job_role"`
	JobDomain          string `json:"job_domain" yaml:"job_domain"`
	YearsExperience    int    `json:"years_experience" yaml:"years_experience"`
	DigitalProficiency int    `json:"digital_proficiency" yaml:"digital_proficiency"`
	PrimaryTasks       string `json:"primary_tasks" yaml:"primary_tasks"`
}

// ContextString flattens the profile into the "Key: value, Key: value"
// form consumed by the enrichment prompt. Keys are title-cased with
// underscores replaced by spaces; empty values are skipped.
func (p Profile) ContextString() string {
	var parts []string
	appendPart := func(key, value string) {
		if value == "" {
			return
		}
		parts = append(parts, fmt.Sprintf("%s: %s", titleCaseKey(key), value))
	}

	appendPart("job_role", p.JobRole)
	appendPart("job_domain", p.JobDomain)
	if p.YearsExperience > 0 {
		appendPart("years_experience", fmt.Sprintf("%d", p.YearsExperience))
	}
	if p.DigitalProficiency > 0 {
		appendPart("digital_proficiency", fmt.Sprintf("%d", p.DigitalProficiency))
	}
	appendPart("primary_tasks", p.PrimaryTasks)

	return strings.Join(parts, ", ")
}

// Proficiency returns the proficiency level derived from the profile's
// numeric digital proficiency.
func (p Profile) Proficiency() Proficiency {
	return ProficiencyFromLevel(p.DigitalProficiency)
}

func titleCaseKey(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
