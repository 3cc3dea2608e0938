package model

import "lancini/internal/pkg/errs"

const (
	MinSkillLevel = 1
	MaxSkillLevel = 5

	// DefaultSkillLevel is assigned to skills added through the tag editor.
	DefaultSkillLevel = 3
)

type PersonalInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	Summary   string `json:"summary,omitempty"`
}

type Education struct {
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field,omitempty"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate,omitempty"`
}

type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

// Skill is a named skill with a self-assessed level from 1 to 5.
type Skill struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// Validate rejects levels outside MinSkillLevel..MaxSkillLevel.
func (s Skill) Validate() *errs.CustomError {
	if s.Level < MinSkillLevel || s.Level > MaxSkillLevel {
		return errs.NewError(errs.ErrSkillLevelInvalid, MinSkillLevel, MaxSkillLevel)
	}
	return nil
}

type CVProject struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Link         string   `json:"link,omitempty"`
}

// CV is the full curriculum vitae document.
type CV struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Education    []Education  `json:"education"`
	Experience   []Experience `json:"experience"`
	Skills       []Skill      `json:"skills"`
	Projects     []CVProject  `json:"projects"`
}

// SkillNames returns the skill names in order.
func (cv CV) SkillNames() []string {
	names := make([]string, 0, len(cv.Skills))
	for _, s := range cv.Skills {
		names = append(names, s.Name)
	}
	return names
}

// SkillsFromNames rebuilds the skill list from the editor's tags, keeping the level of
// skills that already existed and assigning DefaultSkillLevel to new ones.
func (cv CV) SkillsFromNames(names []string) []Skill {
	levels := make(map[string]int, len(cv.Skills))
	for _, s := range cv.Skills {
		levels[s.Name] = s.Level
	}

	skills := make([]Skill, 0, len(names))
	for _, n := range names {
		level, ok := levels[n]
		if !ok {
			level = DefaultSkillLevel
		}
		skills = append(skills, Skill{Name: n, Level: level})
	}
	return skills
}
