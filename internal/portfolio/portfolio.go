// Package portfolio holds the static content record rendered by both the web
// and terminal front ends. The record is compiled into the binary.
package portfolio

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var embedded []byte

type Links struct {
	LinkedIn      string `yaml:"linkedin"`
	GitHub        string `yaml:"github"`
	CodingProfile string `yaml:"coding_profile"`
}

type Personal struct {
	Name     string `yaml:"name"`
	Title    string `yaml:"title"`
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Location string `yaml:"location"`
	Links    Links  `yaml:"links"`
}

// Highlight is a headline figure such as "45%" shown with an animated counter.
type Highlight struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Number returns the integer the counter animates to: "45%" yields 45.
// Values without a leading number yield 0.
func (h Highlight) Number() int {
	digits := strings.TrimSpace(h.Value)
	end := 0
	for end < len(digits) && digits[end] >= '0' && digits[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(digits[:end])
	if err != nil {
		return 0
	}
	return n
}

// Suffix returns whatever follows the number, e.g. "%".
func (h Highlight) Suffix() string {
	value := strings.TrimSpace(h.Value)
	return strings.TrimLeft(value, "0123456789")
}

type About struct {
	Summary    string      `yaml:"summary"`
	Highlights []Highlight `yaml:"highlights"`
}

type Experience struct {
	Company          string   `yaml:"company"`
	Role             string   `yaml:"role"`
	Period           string   `yaml:"period"`
	Location         string   `yaml:"location"`
	Responsibilities []string `yaml:"responsibilities"`
}

type Project struct {
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Description string   `yaml:"description"`
	Highlights  []string `yaml:"highlights"`
	TechStack   []string `yaml:"tech_stack"`
	Link        string   `yaml:"link,omitempty"`
}

// Skill is a named skill with a proficiency between 0 and 100.
type Skill struct {
	Name        string `yaml:"name"`
	Proficiency int    `yaml:"proficiency"`
}

type Skills struct {
	Languages  []Skill `yaml:"languages"`
	Frameworks []Skill `yaml:"frameworks"`
	Tools      []Skill `yaml:"tools"`
	Platforms  []Skill `yaml:"platforms"`
	Databases  []Skill `yaml:"databases"`
}

// SkillGroup is one titled category of skills.
type SkillGroup struct {
	Title  string
	Skills []Skill
}

// Groups returns the categories in display order, skipping empty ones.
func (s Skills) Groups() []SkillGroup {
	all := []SkillGroup{
		{Title: "Languages", Skills: s.Languages},
		{Title: "Frameworks", Skills: s.Frameworks},
		{Title: "Tools", Skills: s.Tools},
		{Title: "Platforms", Skills: s.Platforms},
		{Title: "Databases", Skills: s.Databases},
	}
	groups := all[:0]
	for _, g := range all {
		if len(g.Skills) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}

type Education struct {
	Degree      string `yaml:"degree"`
	Institution string `yaml:"institution"`
	Location    string `yaml:"location"`
	Period      string `yaml:"period"`
}

// Portfolio is the whole content record.
type Portfolio struct {
	Personal   Personal     `yaml:"personal"`
	About      About        `yaml:"about"`
	Experience []Experience `yaml:"experience"`
	Projects   []Project    `yaml:"projects"`
	Skills     Skills       `yaml:"skills"`
	Education  Education    `yaml:"education"`
}

// Parse decodes and validates a content record.
func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding portfolio: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load returns the embedded content record.
func Load() (*Portfolio, error) {
	return Parse(embedded)
}

// MustLoad is Load for callers that cannot continue without content.
func MustLoad() *Portfolio {
	p, err := Load()
	if err != nil {
		panic(err)
	}
	return p
}

// Validate checks the fields the page cannot render without.
func (p *Portfolio) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Personal.Name) == "" {
		errs = append(errs, errors.New("personal.name is required"))
	}
	if strings.TrimSpace(p.Personal.Email) == "" {
		errs = append(errs, errors.New("personal.email is required"))
	}
	for _, g := range p.Skills.Groups() {
		for _, s := range g.Skills {
			if s.Proficiency < 0 || s.Proficiency > 100 {
				errs = append(errs, fmt.Errorf("skill %q: proficiency %d out of range", s.Name, s.Proficiency))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid portfolio: %w", errors.Join(errs...))
	}
	return nil
}
