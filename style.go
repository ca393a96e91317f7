package envbar

import (
	"strings"

	"github.com/a-h/templ"
)

// Stylesheet returns the static CSS for the bar: the fixed-position chrome,
// the indicator dot and one dot-color rule per environment tier. The output
// depends only on the configured menu identifier, never on the request, so
// it is injected whenever the bar is active regardless of whether any
// environment matched.
func (b *Bar) Stylesheet() string {
	id := b.menuID

	var sb strings.Builder
	sb.WriteString("#" + id + "{position:fixed;top:0;right:0;z-index:99999;" +
		"font:13px/1.6 -apple-system,sans-serif;background:#1d2327;color:#f0f0f1;" +
		"padding:4px 12px;cursor:default}")
	sb.WriteString("#" + id + " ." + id + "-dot{display:inline-block;width:8px;height:8px;" +
		"border-radius:50%;margin-right:6px;background:#787c82}")
	for _, env := range All() {
		sb.WriteString("#" + id + "." + id + "-" + string(env) + ">." + id + "-dot," +
			"#" + id + " ." + id + "-" + string(env) + " ." + id + "-dot" +
			"{background:" + env.Color() + "}")
	}
	sb.WriteString("#" + id + " ul{display:none;margin:0;padding:0;list-style:none}")
	sb.WriteString("#" + id + ":hover ul{display:block}")
	sb.WriteString("#" + id + " ul a{display:block;padding:2px 0;color:#f0f0f1;text-decoration:none}")
	sb.WriteString("#" + id + " ul a:hover{color:#72aee6}")
	return sb.String()
}

// StyleTag wraps Stylesheet in a <style> element, carrying the given CSP
// nonce attribute when non-empty.
func (b *Bar) StyleTag(nonce string) string {
	var sb strings.Builder
	sb.WriteString(`<style id="` + b.menuID + `-style"`)
	if nonce != "" {
		sb.WriteString(` nonce="` + templ.EscapeString(nonce) + `"`)
	}
	sb.WriteString(">")
	sb.WriteString(b.Stylesheet())
	sb.WriteString("</style>")
	return sb.String()
}
