package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/cvvishnuu/portfolio/internal/portfolio"
	"github.com/cvvishnuu/portfolio/internal/section"
)

// page renders the portfolio sections into one scrollable document.
type page struct {
	content   *portfolio.Portfolio
	theme     Theme
	width     int
	counter   *Counter
	now       time.Time
	form      string
	formState string
}

// render returns the document and the row at which each section starts.
// The document is padded so the last section can scroll to the top of a
// viewport of the given height.
func (p page) render(viewportHeight int) (string, section.Tops) {
	tops := section.Tops{}
	blocks := make([]string, 0, len(portfolio.Nav))
	row := 0
	for _, item := range portfolio.Nav {
		block := p.section(item)
		tops[item.ID] = row
		blocks = append(blocks, block)
		row += lipgloss.Height(block) + 1
	}

	last := lipgloss.Height(blocks[len(blocks)-1])
	if pad := viewportHeight - last - 1; pad > 0 {
		blocks = append(blocks, strings.Repeat("\n", pad-1))
	}
	return strings.Join(blocks, "\n\n"), tops
}

func (p page) section(item portfolio.NavItem) string {
	var body string
	switch item.ID {
	case "home":
		body = p.home()
	case "about":
		body = p.about()
	case "experience":
		body = p.experience()
	case "projects":
		body = p.projects()
	case "skills":
		body = p.skills()
	case "contact":
		body = p.contact()
	}
	heading := lipgloss.NewStyle().
		Foreground(p.theme.HeadingForeground).
		Bold(true).
		Render(strings.ToUpper(item.Label))
	rule := lipgloss.NewStyle().
		Foreground(p.theme.BorderColor).
		Render(strings.Repeat("─", max(p.width, 1)))
	return heading + "\n" + rule + "\n" + body
}

func (p page) text() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.theme.NormalText).Width(max(p.width, 1))
}

func (p page) faint() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.theme.FaintText)
}

func (p page) home() string {
	person := p.content.Personal
	name := lipgloss.NewStyle().Foreground(p.theme.Accent).Bold(true).Render(person.Name)
	lines := []string{
		name,
		p.text().Render(person.Title),
		p.faint().Render(person.Location),
		"",
	}
	for _, link := range p.content.SocialLinks() {
		lines = append(lines, p.link(link))
	}
	return strings.Join(lines, "\n")
}

func (p page) link(link portfolio.Link) string {
	label := p.faint().Render(fmt.Sprintf("%-10s", link.Label))
	target := link.Value
	if target == "" {
		target = link.Href
	}
	if link.Href != "" {
		// OSC 8 hyperlink for terminals that support it.
		target = ansi.SetHyperlink(link.Href) + target + ansi.ResetHyperlink()
	}
	return label + " " + lipgloss.NewStyle().Foreground(p.theme.LinkForeground).Render(target)
}

func (p page) about() string {
	lines := []string{p.text().Render(emphasize(p.content.About.Summary, p.theme)), ""}
	number := lipgloss.NewStyle().Foreground(p.theme.Accent).Bold(true).Width(6).Align(lipgloss.Right)
	for _, highlight := range p.content.About.Highlights {
		value := p.counter.Value(highlight.Number(), p.now)
		lines = append(lines, number.Render(fmt.Sprintf("%d%s", value, highlight.Suffix()))+"  "+
			p.faint().Render(highlight.Label))
	}
	return strings.Join(lines, "\n")
}

func (p page) experience() string {
	var entries []string
	for _, job := range p.content.Experience {
		lines := []string{
			lipgloss.NewStyle().Bold(true).Foreground(p.theme.NormalText).Render(job.Role) +
				p.faint().Render(" · "+job.Company),
			p.faint().Render(job.Period + "  " + job.Location),
		}
		for _, item := range job.Responsibilities {
			lines = append(lines, p.bullet(item))
		}
		entries = append(entries, strings.Join(lines, "\n"))
	}
	return strings.Join(entries, "\n\n")
}

func (p page) projects() string {
	var entries []string
	for _, project := range p.content.Projects {
		lines := []string{
			lipgloss.NewStyle().Bold(true).Foreground(p.theme.NormalText).Render(project.Title) +
				p.faint().Render("  "+project.Date),
			p.text().Render(emphasize(project.Description, p.theme)),
		}
		for _, item := range project.Highlights {
			lines = append(lines, p.bullet(item))
		}
		if len(project.TechStack) > 0 {
			lines = append(lines, p.faint().Width(max(p.width, 1)).Render(strings.Join(project.TechStack, " · ")))
		}
		if project.Link != "" {
			lines = append(lines, p.link(portfolio.Link{Label: "Link", Href: project.Link, Value: project.Link}))
		}
		entries = append(entries, strings.Join(lines, "\n"))
	}
	return strings.Join(entries, "\n\n")
}

func (p page) skills() string {
	const barWidth = 20
	nameStyle := lipgloss.NewStyle().Foreground(p.theme.NormalText).Width(24)
	bar := lipgloss.NewStyle().Foreground(p.theme.Accent)
	var groups []string
	for _, group := range p.content.Skills.Groups() {
		lines := []string{lipgloss.NewStyle().Bold(true).Foreground(p.theme.FaintText).Render(group.Title)}
		for _, skill := range group.Skills {
			filled := barWidth * min(max(skill.Proficiency, 0), 100) / 100
			lines = append(lines, nameStyle.Render(ansi.Truncate(skill.Name, 23, "…"))+
				bar.Render(strings.Repeat("█", filled))+
				p.faint().Render(strings.Repeat("░", barWidth-filled)))
		}
		groups = append(groups, strings.Join(lines, "\n"))
	}
	if education := p.education(); education != "" {
		groups = append(groups, education)
	}
	return strings.Join(groups, "\n\n")
}

func (p page) education() string {
	edu := p.content.Education
	if edu.Degree == "" {
		return ""
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(p.theme.FaintText).Render("Education"),
		lipgloss.NewStyle().Bold(true).Foreground(p.theme.NormalText).Render(edu.Degree),
		p.text().Render(edu.Institution),
		p.faint().Render(strings.TrimSpace(edu.Period + "  " + edu.Location)),
	}
	return strings.Join(lines, "\n")
}

func (p page) contact() string {
	lines := []string{p.text().Render("Have a question or want to work together? Leave a message."), ""}
	for _, link := range p.content.ContactInfo() {
		lines = append(lines, p.link(link))
	}
	lines = append(lines, "", p.form, p.formState)
	return strings.Join(lines, "\n")
}

func (p page) bullet(item string) string {
	width := max(p.width-2, 1)
	body := lipgloss.NewStyle().Foreground(p.theme.NormalText).Width(width).Render(emphasize(item, p.theme))
	return lipgloss.JoinHorizontal(lipgloss.Top, p.faint().Render("• "), body)
}

// emphasize turns **bold** spans into bold terminal text.
func emphasize(text string, theme Theme) string {
	parts := strings.Split(text, "**")
	if len(parts) < 3 {
		return text
	}
	bold := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent)
	var builder strings.Builder
	for index, part := range parts {
		if index%2 == 1 && index < len(parts)-1 {
			builder.WriteString(bold.Render(part))
		} else {
			if index%2 == 1 {
				builder.WriteString("**")
			}
			builder.WriteString(part)
		}
	}
	return builder.String()
}
