//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wesign-io/wesign-e2e/internal/fixtures"
	"github.com/wesign-io/wesign-e2e/tests/e2e/pages"
)

func TestTemplatesLifecycle(t *testing.T) {
	browser, _ := startSession(t)
	templates := pages.NewTemplatesPage(t, browser)
	templates.Navigate()

	name := fixtures.UniqueName("e2e-template")

	t.Run("create template from upload", func(t *testing.T) {
		before := templates.Count()
		templates.CreateFromUpload(samplePDF(t, "template-src.pdf", 1), name)
		templates.Navigate()
		assert.True(t, templates.HasTemplate(name), "new template should be listed")
		assert.GreaterOrEqual(t, templates.Count(), before)
	})

	t.Run("search finds the template", func(t *testing.T) {
		templates.Search(name)
		assert.True(t, templates.HasTemplate(name))
		assert.LessOrEqual(t, templates.Count(), 3, "unique-name search should narrow the list")
		templates.Search("")
	})

	t.Run("use template starts a new document", func(t *testing.T) {
		templates.Use(name)
		// Using a template drops us into the document editor
		assert.True(t,
			templates.VisibleAny(".document-preview, canvas.pdf-page, [data-testid='doc-preview']"),
			"using a template should open the document editor with a preview")
		templates.Navigate()
	})

	t.Run("rename template", func(t *testing.T) {
		renamed := name + "-v2"
		templates.Rename(name, renamed)
		templates.Navigate()
		assert.True(t, templates.HasTemplate(renamed), "renamed template should be listed")
		templates.Rename(renamed, name)
	})

	t.Run("delete template", func(t *testing.T) {
		templates.Delete(name)
		templates.Navigate()
		assert.False(t, templates.HasTemplate(name), "deleted template should disappear")
	})
}

func TestTemplateSearchNoResults(t *testing.T) {
	browser, _ := startSession(t)
	templates := pages.NewTemplatesPage(t, browser)
	templates.Navigate()

	templates.Search("no-such-template-" + fixtures.UniqueName("zz"))
	require.Equal(t, 0, templates.Count(), "nonsense query should match no templates")
}
