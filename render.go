package envbar

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// fragment builds the injectable HTML for one request: the style tag
// followed by the toolbar markup. A nil menu renders the style tag alone.
func (b *Bar) fragment(menu *Menu, nonce string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, b.StyleTag(nonce)); err != nil {
			return err
		}
		if menu == nil {
			return nil
		}
		return writeMenu(w, menu, b.menuID)
	})
}

// writeMenu renders the composed menu as a <div> fragment. Titles are
// HTML-escaped and child links pass through templ's URL sanitizer, matching
// what generated templ code would emit for the same markup.
func writeMenu(w io.Writer, menu *Menu, menuID string) error {
	var sb strings.Builder
	sb.WriteString(`<div id="` + templ.EscapeString(menu.Parent.ID) + `"`)
	sb.WriteString(` class="` + templ.EscapeString(menuID+" "+menu.Parent.Class) + `">`)
	sb.WriteString(`<span class="` + menuID + `-dot"></span>`)
	sb.WriteString(templ.EscapeString(menu.Parent.Title))

	if len(menu.Children) > 0 {
		sb.WriteString("<ul>")
		for _, child := range menu.Children {
			sb.WriteString(`<li><a class="` + templ.EscapeString(child.Class) + `"`)
			sb.WriteString(` href="` + templ.EscapeString(string(templ.URL(child.Href))) + `">`)
			sb.WriteString(`<span class="` + menuID + `-dot"></span>`)
			sb.WriteString(templ.EscapeString(child.Title))
			sb.WriteString("</a></li>")
		}
		sb.WriteString("</ul>")
	}

	sb.WriteString("</div>")
	_, err := io.WriteString(w, sb.String())
	return err
}

// renderToString renders a templ component into a string.
func renderToString(ctx context.Context, tpl templ.Component) (string, error) {
	var sb strings.Builder
	if err := tpl.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
