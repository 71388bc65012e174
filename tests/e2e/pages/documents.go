package pages

import (
	"fmt"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"github.com/wesign-io/wesign-e2e/tests/e2e/helpers"
)

// DocumentsPage drives upload, field placement, recipient assignment,
// sending, merging and the documents list.
type DocumentsPage struct {
	BasePage
}

// FieldKind enumerates the placeable signing fields.
type FieldKind string

const (
	FieldSignature FieldKind = "signature"
	FieldInitials  FieldKind = "initials"
	FieldDate      FieldKind = "date"
	FieldText      FieldKind = "text"
)

func NewDocumentsPage(t *testing.T, browser *helpers.BrowserHelper) *DocumentsPage {
	return &DocumentsPage{BasePage: newBasePage(t, browser)}
}

func (p *DocumentsPage) Navigate() {
	p.navigate("/documents")
	p.WaitSettled()
}

// NavigateUpload opens the new-document upload flow.
func (p *DocumentsPage) NavigateUpload() {
	p.t.Helper()
	p.Navigate()
	p.ClickFirst(helpers.ButtonSelector("מסמך חדש", "New Document") +
		", " + helpers.ButtonSelector("העלאה", "Upload"))
	p.WaitSettled()
}

// UploadSingleFile attaches one file and waits for the preview to render.
func (p *DocumentsPage) UploadSingleFile(path string) {
	p.t.Helper()
	input := p.page.Locator("input[type='file']").First()
	require.NoError(p.t, input.SetInputFiles(path), "file input rejected %s", path)
	p.waitForPreview()
}

// UploadMultipleFiles attaches several files in one go.
func (p *DocumentsPage) UploadMultipleFiles(paths []string) {
	p.t.Helper()
	input := p.page.Locator("input[type='file']").First()
	require.NoError(p.t, input.SetInputFiles(paths))
	p.WaitSettled()
}

func (p *DocumentsPage) waitForPreview() {
	p.t.Helper()
	preview := p.page.Locator(".document-preview, canvas.pdf-page, [data-testid='doc-preview']")
	require.NoError(p.t, preview.First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(20000),
	}), "document preview did not render after upload")
}

// AddField drags the given field type onto the document canvas at (x, y),
// coordinates relative to the top-left of the first page.
func (p *DocumentsPage) AddField(kind FieldKind, x, y float64) {
	p.t.Helper()
	p.ClickFirst(p.paletteSelector(kind))

	canvas := p.page.Locator(".document-preview, canvas.pdf-page, [data-testid='doc-preview']").First()
	require.NoError(p.t, canvas.Click(playwright.LocatorClickOptions{
		Position: &playwright.Position{X: x, Y: y},
	}), "placing %s field at (%.0f, %.0f)", kind, x, y)
	p.WaitSettled()
}

func (p *DocumentsPage) paletteSelector(kind FieldKind) string {
	switch kind {
	case FieldSignature:
		return "[data-field-type='signature'], " + helpers.ButtonSelector("חתימה", "Signature")
	case FieldInitials:
		return "[data-field-type='initials'], " + helpers.ButtonSelector("ראשי תיבות", "Initials")
	case FieldDate:
		return "[data-field-type='date'], " + helpers.ButtonSelector("תאריך", "Date")
	default:
		return "[data-field-type='text'], " + helpers.ButtonSelector("טקסט", "Text")
	}
}

// PlacedFieldCount returns how many fields sit on the canvas.
func (p *DocumentsPage) PlacedFieldCount() int {
	return p.CountAny(".placed-field, .field-overlay, [data-testid='placed-field']")
}

// AssignRecipient adds a signer by name/email in the send panel.
func (p *DocumentsPage) AssignRecipient(name, email string) {
	p.t.Helper()
	p.ClickFirst(helpers.ButtonSelector("הוסף נמען", "Add Recipient") + ", [data-testid='add-recipient']")
	p.FillFirst("input[name='recipientName'], [data-testid='recipient-name'], .recipient-row input[placeholder*='שם'], .recipient-row input[placeholder*='Name']", name)
	p.FillFirst("input[name='recipientEmail'], [data-testid='recipient-email'], .recipient-row input[type='email']", email)
}

// RecipientCount returns how many recipient rows are configured.
func (p *DocumentsPage) RecipientCount() int {
	return p.CountAny(".recipient-row, [data-testid='recipient-row']")
}

// SigningOrderAvailable reports whether sequential signing can be toggled.
func (p *DocumentsPage) SigningOrderAvailable() bool {
	return p.VisibleAny("input[name='signingOrder'], [data-testid='signing-order'], " +
		helpers.TextSelector([]string{"label", "span"}, "סדר חתימה", "Signing Order"))
}

// EnableSigningOrder turns on sequential signing.
func (p *DocumentsPage) EnableSigningOrder() {
	p.t.Helper()
	toggle := p.page.Locator("input[name='signingOrder'], [data-testid='signing-order']").First()
	require.NoError(p.t, toggle.Check())
}

// Send submits the document to the assigned recipients.
func (p *DocumentsPage) Send() {
	p.t.Helper()
	p.ClickFirst(helpers.ButtonSelector("שלח", "Send") + ", [data-testid='send-document']")
	p.WaitSettled()
}

// SentConfirmationShown reports whether the post-send confirmation appeared.
func (p *DocumentsPage) SentConfirmationShown() bool {
	return p.HasText("נשלח בהצלחה", "sent successfully") ||
		p.VisibleAny(".send-success, [data-testid='send-confirmation']")
}

// Search filters the documents list by free text.
func (p *DocumentsPage) Search(query string) {
	p.t.Helper()
	p.FillFirst("input[placeholder*='חיפוש'], input[placeholder*='Search'], input#docSearch", query)
	p.WaitSettled()
}

// FilterByStatus applies one of the status filter chips/options.
func (p *DocumentsPage) FilterByStatus(hebrew, english string) {
	p.t.Helper()
	chip := p.page.Locator(helpers.TextSelector(
		[]string{".filter-chip", ".status-filter button", "[data-testid='status-filter'] button"},
		hebrew, english)).First()
	if visible, _ := chip.IsVisible(); visible {
		require.NoError(p.t, chip.Click())
		p.WaitSettled()
		return
	}
	// Older builds use a <select> instead of chips
	sel := p.page.Locator("select[name='status'], select#statusFilter").First()
	_, err := sel.SelectOption(playwright.SelectOptionValues{
		Labels: playwright.StringSlice(hebrew, english),
	})
	require.NoError(p.t, err, "no status filter control found")
	p.WaitSettled()
}

// DateRangeFilterAvailable reports whether the list exposes date inputs.
func (p *DocumentsPage) DateRangeFilterAvailable() bool {
	return p.CountAny("input[type='date'], input[name='dateFrom'], [data-testid='date-from']") > 0
}

// FilterByDateRange fills the from/to date inputs (YYYY-MM-DD). When only a
// single date input exists it is treated as the from bound.
func (p *DocumentsPage) FilterByDateRange(from, to string) {
	p.t.Helper()
	inputs := p.page.Locator("input[type='date'], input[name='dateFrom'], input[name='dateTo'], [data-testid='date-from'], [data-testid='date-to']")
	n, err := inputs.Count()
	require.NoError(p.t, err)
	require.Greater(p.t, n, 0, "no date filter inputs found")
	require.NoError(p.t, inputs.First().Fill(from))
	if n > 1 {
		require.NoError(p.t, inputs.Last().Fill(to))
	}
	p.WaitSettled()
}

// ResetFilters clears search and status filters.
func (p *DocumentsPage) ResetFilters() {
	p.t.Helper()
	reset := p.page.Locator(helpers.ButtonSelector("נקה", "Clear") + ", [data-testid='reset-filters']")
	if n, _ := reset.Count(); n > 0 {
		require.NoError(p.t, reset.First().Click())
		p.WaitSettled()
		return
	}
	p.Search("")
}

// RowCount returns the number of document rows currently listed.
func (p *DocumentsPage) RowCount() int {
	return p.CountAny("table tbody tr, .document-row, [data-testid='document-row']")
}

// HasDocument reports whether a document with the given title is listed.
func (p *DocumentsPage) HasDocument(title string) bool {
	return p.CountAny(fmt.Sprintf("tr:has-text('%s'), .document-row:has-text('%s')", title, title)) > 0
}

// StatusOf returns the status cell text for the named document.
func (p *DocumentsPage) StatusOf(title string) string {
	row := p.page.Locator(fmt.Sprintf("tr:has-text('%s'), .document-row:has-text('%s')", title, title)).First()
	cell := row.Locator(".status, .doc-status, [data-testid='doc-status']")
	if n, _ := cell.Count(); n == 0 {
		return ""
	}
	text, err := cell.First().TextContent()
	if err != nil {
		return ""
	}
	return text
}

// SelectDocument checks the row checkbox for the named document.
func (p *DocumentsPage) SelectDocument(title string) {
	p.t.Helper()
	row := p.page.Locator(fmt.Sprintf("tr:has-text('%s'), .document-row:has-text('%s')", title, title)).First()
	box := row.Locator("input[type='checkbox']")
	require.NoError(p.t, box.First().Check(), "selecting document %s", title)
}

// MergeAvailable reports whether a merge action is exposed for the selection.
func (p *DocumentsPage) MergeAvailable() bool {
	return p.VisibleAny(helpers.ButtonSelector("מיזוג", "Merge") + ", [data-testid='merge-documents']")
}

// MergeSelected triggers the merge action and confirms.
func (p *DocumentsPage) MergeSelected(mergedName string) {
	p.t.Helper()
	p.ClickFirst(helpers.ButtonSelector("מיזוג", "Merge") + ", [data-testid='merge-documents']")
	nameInput := p.page.Locator("input[name='mergedName'], [data-testid='merged-name']")
	if n, _ := nameInput.Count(); n > 0 {
		require.NoError(p.t, nameInput.First().Fill(mergedName))
	}
	p.ClickFirst(".modal button[type='submit'], .modal " + helpers.ButtonSelector("אישור", "Confirm"))
	p.WaitSettled()
}

// DeleteDocument removes the named document from the list.
func (p *DocumentsPage) DeleteDocument(title string) {
	p.t.Helper()
	row := p.page.Locator(fmt.Sprintf("tr:has-text('%s'), .document-row:has-text('%s')", title, title)).First()
	require.NoError(p.t, row.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}), "document row not found: %s", title)
	del := row.Locator(helpers.ButtonSelector("מחיקה", "Delete") + ", [data-testid='delete-document'], .delete-icon")
	require.NoError(p.t, del.First().Click())
	confirm := p.page.Locator(".modal " + helpers.ButtonSelector("אישור", "Confirm") +
		", .modal " + helpers.ButtonSelector("מחק", "Delete"))
	if n, _ := confirm.Count(); n > 0 {
		require.NoError(p.t, confirm.First().Click())
	}
	p.WaitSettled()
}

// DownloadSigned downloads the completed document and returns the local path.
func (p *DocumentsPage) DownloadSigned(title string) string {
	p.t.Helper()
	row := p.page.Locator(fmt.Sprintf("tr:has-text('%s'), .document-row:has-text('%s')", title, title)).First()
	dl, err := p.page.ExpectDownload(func() error {
		btn := row.Locator(helpers.ButtonSelector("הורדה", "Download") + ", [data-testid='download-document']")
		return btn.First().Click()
	})
	require.NoError(p.t, err, "download did not start for %s", title)
	path, err := dl.Path()
	require.NoError(p.t, err)
	return path
}
