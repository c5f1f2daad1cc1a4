package view

import (
	g "maragu.dev/gomponents"

	"github.com/nfrund/profilepage/web/src/templates/layouts"
)

// Page is the full profile page.
func Page(profile any) g.Node {
	return layouts.Base("Home", Card(profile))
}
