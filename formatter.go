package sangga

import (
	"fmt"
	"strings"
)

// FormatProperties formats listings as a markdown list.
// Optional fields are only included when present.
// Listings are separated by blank lines.
func FormatProperties(props []*Property) string {
	if len(props) == 0 {
		return ""
	}

	parts := make([]string, 0, len(props))
	for _, p := range props {
		lines := []string{
			fmt.Sprintf("- **%s** (%s)", strings.TrimSpace(p.Name), strings.TrimSpace(p.Type)),
			"  가격: " + strings.TrimSpace(p.Price),
			"  면적: " + strings.TrimSpace(p.Area),
			"  출처: " + strings.TrimSpace(p.Source),
		}
		if p.Floor != "" {
			lines = append(lines, "  층수: "+p.Floor)
		}
		if p.MaintenanceFee != "" {
			lines = append(lines, "  관리비: "+p.MaintenanceFee)
		}
		if contact := formatAgent(p); contact != "" {
			lines = append(lines, "  중개: "+contact)
		}
		if link := strings.TrimSpace(p.Link); link != "" {
			lines = append(lines, fmt.Sprintf("  링크: [매물 보기](<%s>)", link))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}

	return strings.Join(parts, "\n\n")
}

func formatAgent(p *Property) string {
	var fields []string
	for _, v := range []string{p.AgencyName, p.AgentName, p.AgentContact} {
		if v = strings.TrimSpace(v); v != "" {
			fields = append(fields, v)
		}
	}
	return strings.Join(fields, " / ")
}
