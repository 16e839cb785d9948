package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextString(t *testing.T) {
	t.Run("full profile", func(t *testing.T) {
		p := Profile{
			JobRole:            "nurse",
			JobDomain:          "healthcare",
			YearsExperience:    7,
			DigitalProficiency: 3,
			PrimaryTasks:       "patient records, scheduling",
		}
		assert.Equal(t,
			"Job Role: nurse, Job Domain: healthcare, Years Experience: 7, Digital Proficiency: 3, Primary Tasks: patient records, scheduling",
			p.ContextString())
	})

	t.Run("empty values are skipped", func(t *testing.T) {
		p := Profile{JobRole: "teacher", PrimaryTasks: "grading"}
		assert.Equal(t, "Job Role: teacher, Primary Tasks: grading", p.ContextString())
	})

	t.Run("empty profile", func(t *testing.T) {
		assert.Equal(t, "", Profile{}.ContextString())
	})
}

func TestProficiencyFromLevel(t *testing.T) {
	testCases := []struct {
		level    int
		expected Proficiency
	}{
		{1, ProficiencyBeginner},
		{2, ProficiencyBasic},
		{3, ProficiencyIntermediate},
		{4, ProficiencyAdvanced},
		{5, ProficiencyExpert},
		{0, ProficiencyIntermediate},
		{6, ProficiencyIntermediate},
		{-1, ProficiencyIntermediate},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ProficiencyFromLevel(tc.level), "level %d", tc.level)
	}
}

func TestParseProficiency(t *testing.T) {
	assert.Equal(t, ProficiencyExpert, ParseProficiency("expert"))
	assert.Equal(t, ProficiencyBeginner, ParseProficiency(" Beginner "))
	assert.Equal(t, ProficiencyIntermediate, ParseProficiency("grandmaster"))
	assert.Equal(t, ProficiencyIntermediate, ParseProficiency(""))
}

func TestProfileProficiency(t *testing.T) {
	assert.Equal(t, ProficiencyAdvanced, Profile{DigitalProficiency: 4}.Proficiency())
	assert.Equal(t, ProficiencyIntermediate, Profile{}.Proficiency())
}
