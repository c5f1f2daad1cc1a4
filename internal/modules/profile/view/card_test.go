package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var buf strings.Builder
	require.NoError(t, n.Render(&buf))
	return buf.String()
}

func TestCard(t *testing.T) {
	t.Run("no profile", func(t *testing.T) {
		html := render(t, Card(nil))
		assert.Contains(t, html, "No profile available.")
		assert.Contains(t, html, `id="profile-card"`)
		assert.Contains(t, html, `hx-get="/profile/card"`)
	})

	t.Run("object profile", func(t *testing.T) {
		html := render(t, Card(map[string]any{
			"name":   "Alice",
			"age":    float64(30),
			"skills": []any{"go", "sql"},
		}))
		assert.Contains(t, html, "<h1")
		assert.Contains(t, html, ">Alice</h1>")
		assert.Contains(t, html, "<dt class=\"font-semibold\">age</dt><dd>30</dd>")
		assert.Contains(t, html, "[&#34;go&#34;,&#34;sql&#34;]")
		assert.Less(t, strings.Index(html, ">age<"), strings.Index(html, ">name<"), "keys are sorted")
	})

	t.Run("object without name", func(t *testing.T) {
		html := render(t, Card(map[string]any{"handle": "@alice"}))
		assert.Contains(t, html, ">Profile</h1>")
	})

	t.Run("non-object profile", func(t *testing.T) {
		html := render(t, Card([]any{"a", "b"}))
		assert.Contains(t, html, "<pre>")
		assert.NotContains(t, html, "No profile available.")
	})

	t.Run("markup is escaped", func(t *testing.T) {
		html := render(t, Card(map[string]any{"name": "<script>x</script>"}))
		assert.NotContains(t, html, "<script>x</script>")
	})
}

func TestPage(t *testing.T) {
	html := render(t, Page(map[string]any{"name": "Alice"}))
	assert.Contains(t, html, "<title>Home - Profile</title>")
	assert.Contains(t, html, "Alice")
}
