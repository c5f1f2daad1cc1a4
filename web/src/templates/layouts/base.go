package layouts

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

// HTMXScript is the htmx build loaded by every page.
const HTMXScript = "https://unpkg.com/htmx.org@2.0.4"

// Base wraps page content in the HTML document shell.
func Base(title string, content g.Node) g.Node {
	return components.HTML5(components.HTML5Props{
		Title:    CalculateTitle(title),
		Language: "en",
		Head: []g.Node{
			h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
			h.Script(h.Src(HTMXScript), h.Defer()),
		},
		Body: []g.Node{
			h.Main(
				h.Class("container mx-auto p-8"),
				content,
			),
		},
	})
}
