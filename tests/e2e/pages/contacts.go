package pages

import (
	"fmt"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"github.com/wesign-io/wesign-e2e/tests/e2e/helpers"
)

// ContactsPage drives the contact book: add, search, edit, delete, import.
type ContactsPage struct {
	BasePage
}

func NewContactsPage(t *testing.T, browser *helpers.BrowserHelper) *ContactsPage {
	return &ContactsPage{BasePage: newBasePage(t, browser)}
}

func (p *ContactsPage) Navigate() {
	p.navigate("/contacts")
	p.WaitSettled()
}

// AddContact opens the new-contact dialog, fills it and saves.
func (p *ContactsPage) AddContact(name, email, phone string) {
	p.t.Helper()
	p.dismissToast()
	p.ClickFirst(helpers.ButtonSelector("איש קשר חדש", "New Contact") +
		", " + helpers.ButtonSelector("הוסף איש קשר", "Add Contact"))
	p.FillFirst("input[name='name'], input#contactName, [data-testid='contact-name']", name)
	p.FillFirst("input[name='email'], input#contactEmail, [data-testid='contact-email']", email)
	if phone != "" {
		p.FillFirst("input[name='phone'], input#contactPhone, [data-testid='contact-phone']", phone)
	}
	p.ClickFirst("button[type='submit'], " + helpers.ButtonSelector("שמור", "Save"))
	p.WaitSettled()
}

// Search narrows the contact list by free text.
func (p *ContactsPage) Search(query string) {
	p.t.Helper()
	p.FillFirst("input[placeholder*='חיפוש'], input[placeholder*='Search'], input#contactSearch", query)
	p.WaitSettled()
}

// ClearSearch empties the search box.
func (p *ContactsPage) ClearSearch() {
	p.t.Helper()
	p.FillFirst("input[placeholder*='חיפוש'], input[placeholder*='Search'], input#contactSearch", "")
	p.WaitSettled()
}

// RowCount returns the number of contact rows currently listed.
func (p *ContactsPage) RowCount() int {
	return p.CountAny("table tbody tr, .contact-row, [data-testid='contact-row']")
}

// HasContact reports whether a contact with the given name is listed.
func (p *ContactsPage) HasContact(name string) bool {
	return p.CountAny(fmt.Sprintf("tr:has-text('%s'), .contact-row:has-text('%s')", name, name)) > 0
}

// EditContact opens the row menu for name and saves a new display name.
func (p *ContactsPage) EditContact(name, newName string) {
	p.t.Helper()
	row := p.page.Locator(fmt.Sprintf("tr:has-text('%s'), .contact-row:has-text('%s')", name, name)).First()
	require.NoError(p.t, row.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}), "contact row not found: %s", name)

	edit := row.Locator(helpers.ButtonSelector("עריכה", "Edit") + ", [data-testid='edit-contact'], .edit-icon")
	require.NoError(p.t, edit.First().Click())

	p.FillFirst("input[name='name'], input#contactName, [data-testid='contact-name']", newName)
	p.ClickFirst("button[type='submit'], " + helpers.ButtonSelector("שמור", "Save"))
	p.WaitSettled()
}

// DeleteContact removes the contact and confirms the dialog.
func (p *ContactsPage) DeleteContact(name string) {
	p.t.Helper()
	row := p.page.Locator(fmt.Sprintf("tr:has-text('%s'), .contact-row:has-text('%s')", name, name)).First()
	require.NoError(p.t, row.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}), "contact row not found: %s", name)

	del := row.Locator(helpers.ButtonSelector("מחיקה", "Delete") + ", [data-testid='delete-contact'], .delete-icon")
	require.NoError(p.t, del.First().Click())

	confirm := p.page.Locator(".modal " + helpers.ButtonSelector("אישור", "Confirm") +
		", .modal " + helpers.ButtonSelector("מחק", "Delete"))
	if n, _ := confirm.Count(); n > 0 {
		require.NoError(p.t, confirm.First().Click())
	}
	p.WaitSettled()
}

// ImportAvailable reports whether a bulk-import control exists.
func (p *ContactsPage) ImportAvailable() bool {
	return p.VisibleAny(helpers.ButtonSelector("ייבוא", "Import") + ", [data-testid='import-contacts']")
}

// ImportFromFile uploads an XLSX contact sheet through the import dialog.
func (p *ContactsPage) ImportFromFile(path string) {
	p.t.Helper()
	p.ClickFirst(helpers.ButtonSelector("ייבוא", "Import") + ", [data-testid='import-contacts']")
	input := p.page.Locator("input[type='file']").First()
	require.NoError(p.t, input.SetInputFiles(path))
	p.ClickFirst("button[type='submit'], " + helpers.ButtonSelector("העלה", "Upload"))
	p.WaitSettled()
}
