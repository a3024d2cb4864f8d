package models

import "strings"

type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "Beginner"
	ProficiencyIntermediate Proficiency = "Intermediate"
	ProficiencyAdvanced     Proficiency = "Advanced"
	ProficiencyExpert       Proficiency = "Expert"
)

type EmploymentType string

const (
	EmploymentIntern     EmploymentType = "Intern"
	EmploymentFullTime   EmploymentType = "Full-time"
	EmploymentContractor EmploymentType = "Contractor"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

var (
	proficiencies   = []Proficiency{ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced, ProficiencyExpert}
	employmentTypes = []EmploymentType{EmploymentIntern, EmploymentFullTime, EmploymentContractor}
	priorities      = []Priority{PriorityLow, PriorityMedium, PriorityHigh}
)

// ParseProficiency matches case-insensitively and returns nil when the value
// is empty or unknown, mirroring how spreadsheet cells are coerced.
func ParseProficiency(s string) *Proficiency {
	s = strings.TrimSpace(s)
	for _, p := range proficiencies {
		if strings.EqualFold(string(p), s) {
			v := p
			return &v
		}
	}
	return nil
}

func ParseEmploymentType(s string) *EmploymentType {
	s = strings.TrimSpace(s)
	for _, e := range employmentTypes {
		if strings.EqualFold(string(e), s) {
			v := e
			return &v
		}
		// accept the bare name too, e.g. "fulltime"
		if strings.EqualFold(strings.ReplaceAll(string(e), "-", ""), strings.ReplaceAll(s, "-", "")) {
			v := e
			return &v
		}
	}
	return nil
}

func ParsePriority(s string) *Priority {
	s = strings.TrimSpace(s)
	for _, p := range priorities {
		if strings.EqualFold(string(p), s) {
			v := p
			return &v
		}
	}
	return nil
}
