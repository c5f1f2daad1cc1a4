package view

import (
	"encoding/json"
	"sort"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// CardID is the DOM id of the profile card, used as the htmx swap target.
const CardID = "profile-card"

// CardPath serves a freshly loaded card fragment.
const CardPath = "/profile/card"

// Card renders the profile. A nil profile renders the empty state; objects render
// as a sorted definition list; any other JSON value renders verbatim.
func Card(profile any) g.Node {
	return h.Section(
		h.ID(CardID),
		h.Class("bg-white shadow rounded-xl p-8"),
		cardBody(profile),
		h.Button(
			h.Type("button"),
			h.Class("mt-6 text-sm text-indigo-700"),
			hx.Get(CardPath),
			hx.Target("#"+CardID),
			hx.Swap("outerHTML"),
			g.Text("Refresh"),
		),
	)
}

func cardBody(profile any) g.Node {
	switch p := profile.(type) {
	case nil:
		return h.P(h.Class("text-gray-500"), g.Text("No profile available."))
	case map[string]any:
		return g.Group{
			h.H1(h.Class("text-3xl font-bold mb-4"), g.Text(title(p))),
			fields(p),
		}
	default:
		return h.Pre(g.Text(encode(p, "  ")))
	}
}

func title(p map[string]any) string {
	if name, ok := p["name"].(string); ok && name != "" {
		return name
	}
	return "Profile"
}

func fields(p map[string]any) g.Node {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return h.Dl(
		h.Class("grid grid-cols-2 gap-2"),
		g.Map(keys, func(k string) g.Node {
			return g.Group{
				h.Dt(h.Class("font-semibold"), g.Text(k)),
				h.Dd(g.Text(value(p[k]))),
			}
		}),
	)
}

func value(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return encode(v, "")
}

func encode(v any, indent string) string {
	b, err := json.MarshalIndent(v, "", indent)
	if err != nil {
		return ""
	}
	return string(b)
}
