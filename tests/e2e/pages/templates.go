package pages

import (
	"fmt"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"github.com/wesign-io/wesign-e2e/tests/e2e/helpers"
)

// TemplatesPage drives reusable document templates.
type TemplatesPage struct {
	BasePage
}

func NewTemplatesPage(t *testing.T, browser *helpers.BrowserHelper) *TemplatesPage {
	return &TemplatesPage{BasePage: newBasePage(t, browser)}
}

func (p *TemplatesPage) Navigate() {
	p.navigate("/templates")
	p.WaitSettled()
}

// CreateFromUpload uploads a file and saves it as a named template.
func (p *TemplatesPage) CreateFromUpload(path, name string) {
	p.t.Helper()
	p.ClickFirst(helpers.ButtonSelector("תבנית חדשה", "New Template") + ", [data-testid='new-template']")
	input := p.page.Locator("input[type='file']").First()
	require.NoError(p.t, input.SetInputFiles(path))

	p.FillFirst("input[name='templateName'], input#templateName, [data-testid='template-name']", name)
	p.ClickFirst("button[type='submit'], " + helpers.ButtonSelector("שמור", "Save"))
	p.WaitSettled()
}

// Count returns the number of template cards/rows listed.
func (p *TemplatesPage) Count() int {
	return p.CountAny(".template-card, table tbody tr, [data-testid='template-row']")
}

// HasTemplate reports whether a template with the given name is listed.
func (p *TemplatesPage) HasTemplate(name string) bool {
	return p.CountAny(fmt.Sprintf(
		".template-card:has-text('%s'), tr:has-text('%s')", name, name)) > 0
}

// Search filters the template list.
func (p *TemplatesPage) Search(query string) {
	p.t.Helper()
	p.FillFirst("input[placeholder*='חיפוש'], input[placeholder*='Search'], input#templateSearch", query)
	p.WaitSettled()
}

// Use starts a new document from the named template.
func (p *TemplatesPage) Use(name string) {
	p.t.Helper()
	card := p.templateCard(name)
	use := card.Locator(helpers.ButtonSelector("שימוש", "Use") + ", [data-testid='use-template']")
	require.NoError(p.t, use.First().Click())
	p.WaitSettled()
}

// Rename changes the template display name.
func (p *TemplatesPage) Rename(name, newName string) {
	p.t.Helper()
	card := p.templateCard(name)
	edit := card.Locator(helpers.ButtonSelector("עריכה", "Edit") + ", [data-testid='edit-template'], .edit-icon")
	require.NoError(p.t, edit.First().Click())
	p.FillFirst("input[name='templateName'], input#templateName, [data-testid='template-name']", newName)
	p.ClickFirst("button[type='submit'], " + helpers.ButtonSelector("שמור", "Save"))
	p.WaitSettled()
}

// Delete removes the template and confirms.
func (p *TemplatesPage) Delete(name string) {
	p.t.Helper()
	card := p.templateCard(name)
	del := card.Locator(helpers.ButtonSelector("מחיקה", "Delete") + ", [data-testid='delete-template'], .delete-icon")
	require.NoError(p.t, del.First().Click())
	confirm := p.page.Locator(".modal " + helpers.ButtonSelector("אישור", "Confirm") +
		", .modal " + helpers.ButtonSelector("מחק", "Delete"))
	if n, _ := confirm.Count(); n > 0 {
		require.NoError(p.t, confirm.First().Click())
	}
	p.WaitSettled()
}

func (p *TemplatesPage) templateCard(name string) playwright.Locator {
	p.t.Helper()
	card := p.page.Locator(fmt.Sprintf(
		".template-card:has-text('%s'), tr:has-text('%s')", name, name)).First()
	require.NoError(p.t, card.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}), "template not found: %s", name)
	return card
}
