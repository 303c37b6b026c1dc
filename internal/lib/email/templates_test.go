package email

import (
	"bytes"
	"html/template"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every known template must render cleanly with its preview data, and
// the preview data must cover every template.
func TestPreviewData_RendersEveryTemplate(t *testing.T) {
	templates := []Template{TemplateWelcome}

	require.Len(t, PreviewData, len(templates))

	for _, name := range templates {
		t.Run(string(name), func(t *testing.T) {
			data, ok := PreviewData[string(name)]
			require.True(t, ok, "no preview data for template %s", name)

			path := filepath.Join("..", "..", "..", "templates", "emails", string(name)+".html")
			tmpl, err := template.ParseFiles(path)
			require.NoError(t, err)

			var body bytes.Buffer
			require.NoError(t, tmpl.Execute(&body, data))
			assert.NotEmpty(t, body.String())
		})
	}
}

func TestPreviewData_WelcomeGreetsByFirstName(t *testing.T) {
	path := filepath.Join("..", "..", "..", "templates", "emails", "welcome.html")
	tmpl, err := template.ParseFiles(path)
	require.NoError(t, err)

	var body bytes.Buffer
	require.NoError(t, tmpl.Execute(&body, PreviewData["welcome"]))
	assert.Contains(t, body.String(), "Welcome, John!")
}
