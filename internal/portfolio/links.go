package portfolio

// Link is an outbound link. External links open in a new browsing context;
// every linked entry here is external, mailto and tel included.
type Link struct {
	Label    string
	Href     string
	Value    string
	External bool
}

// SocialLinks returns the profile links shown in the footer, skipping
// profiles that are not set.
func (p *Portfolio) SocialLinks() []Link {
	candidates := []Link{
		{Label: "GitHub", Href: p.Personal.Links.GitHub, External: true},
		{Label: "LinkedIn", Href: p.Personal.Links.LinkedIn, External: true},
		{Label: "LeetCode", Href: p.Personal.Links.CodingProfile, External: true},
		{Label: "Email", Href: mailto(p.Personal.Email), External: true},
	}
	links := make([]Link, 0, len(candidates))
	for _, l := range candidates {
		if l.Href != "" {
			links = append(links, l)
		}
	}
	return links
}

// ContactInfo returns the email, phone and location entries of the contact
// section. Location has no link.
func (p *Portfolio) ContactInfo() []Link {
	info := []Link{
		{Label: "Email", Value: p.Personal.Email, Href: mailto(p.Personal.Email)},
		{Label: "Phone", Value: p.Personal.Phone, Href: tel(p.Personal.Phone)},
		{Label: "Location", Value: p.Personal.Location},
	}
	for i := range info {
		info[i].External = info[i].Href != ""
	}
	return info
}

func mailto(addr string) string {
	if addr == "" {
		return ""
	}
	return "mailto:" + addr
}

func tel(number string) string {
	if number == "" {
		return ""
	}
	return "tel:" + number
}
