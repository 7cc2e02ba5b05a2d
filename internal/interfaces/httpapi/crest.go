package httpapi

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/survivorleague/survivor-api/internal/domain/team"
	"github.com/valyala/bytebufferpool"
)

const defaultCrestColor = "#1f2937"

// teamCrestDataURI renders a small inline SVG crest for a team so clients
// without asset hosting still get a badge. The SVG is assembled in a pooled
// buffer; team listings render dozens of these per request.
func teamCrestDataURI(t team.Team) string {
	color := strings.TrimSpace(t.CrestColor)
	if color == "" {
		color = defaultCrestColor
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64">`)
	fmt.Fprintf(buf, `<circle cx="32" cy="32" r="30" fill="%s"/>`, color)
	fmt.Fprintf(buf, `<text x="32" y="40" font-family="sans-serif" font-size="22" font-weight="bold" fill="#ffffff" text-anchor="middle">%s</text>`, crestInitials(t))
	buf.WriteString(`</svg>`)

	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func crestInitials(t team.Team) string {
	short := strings.TrimSpace(t.ShortName)
	if short != "" {
		if len(short) > 3 {
			short = short[:3]
		}
		return strings.ToUpper(short)
	}

	initials := make([]byte, 0, 3)
	for _, word := range strings.Fields(t.Name) {
		initials = append(initials, word[0])
		if len(initials) == 3 {
			break
		}
	}
	return strings.ToUpper(string(initials))
}
