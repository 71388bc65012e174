//go:build e2e

package e2e

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wesign-io/wesign-e2e/internal/fixtures"
	"github.com/wesign-io/wesign-e2e/tests/e2e/helpers"
	"github.com/wesign-io/wesign-e2e/tests/e2e/pages"
)

// xmlUploadAvailable probes whether the deployment exposes XML batch intake.
func xmlUploadAvailable(docs *pages.DocumentsPage) bool {
	return docs.VisibleAny(
		helpers.ButtonSelector("אוטומציית XML", "XML Automation") +
			", [data-testid='xml-upload'], input[type='file'][accept*='xml']")
}

func TestXMLBatchUpload(t *testing.T) {
	browser, _ := startSession(t)
	docs := pages.NewDocumentsPage(t, browser)
	docs.NavigateUpload()

	if !xmlUploadAvailable(docs) {
		t.Skip("XML automation not exposed on this deployment")
	}

	batchDocs := []fixtures.BatchDocument{
		{Title: fixtures.UniqueName("xml-doc-1"), Recipient: "one@wesign-e2e.example.com", Template: "nda"},
		{Title: fixtures.UniqueName("xml-doc-2"), Recipient: "two@wesign-e2e.example.com", Template: "nda"},
	}
	batch := filepath.Join(t.TempDir(), "batch.xml")
	require.NoError(t, fixtures.BatchXML(batch, batchDocs))

	// Round-trip sanity before handing the file to the UI
	parsed, err := fixtures.ParseBatchXML(batch)
	require.NoError(t, err)
	require.Len(t, parsed, 2)

	docs.ClickFirst(helpers.ButtonSelector("אוטומציית XML", "XML Automation") + ", [data-testid='xml-upload']")
	input := docs.Page().Locator("input[type='file']").First()
	require.NoError(t, input.SetInputFiles(batch))
	docs.WaitSettled()

	t.Run("batch outcome is reported per row", func(t *testing.T) {
		rows := docs.CountAny(".batch-result-row, [data-testid='batch-result']")
		if rows == 0 {
			t.Skip("no per-row batch feedback on this build")
		}
		assert.Equal(t, 2, rows, "each batch entry should get an outcome row")
	})

	t.Run("generated documents reach the list", func(t *testing.T) {
		docs.Navigate()
		docs.Search(batchDocs[0].Title)
		if !docs.HasDocument(batchDocs[0].Title) {
			t.Skip("generated documents not listed under batch titles")
		}
		docs.Search(batchDocs[1].Title)
		assert.True(t, docs.HasDocument(batchDocs[1].Title))
	})
}

func TestXMLMalformedRejected(t *testing.T) {
	browser, _ := startSession(t)
	docs := pages.NewDocumentsPage(t, browser)
	docs.NavigateUpload()

	if !xmlUploadAvailable(docs) {
		t.Skip("XML automation not exposed on this deployment")
	}

	broken := filepath.Join(t.TempDir(), "broken.xml")
	require.NoError(t, fixtures.MalformedXML(broken))

	docs.ClickFirst(helpers.ButtonSelector("אוטומציית XML", "XML Automation") + ", [data-testid='xml-upload']")
	input := docs.Page().Locator("input[type='file']").First()
	require.NoError(t, input.SetInputFiles(broken))
	docs.WaitSettled()

	assert.True(t,
		docs.VisibleAny(".error-message, .alert-danger, [role='alert']") ||
			docs.HasText("שגיאה", "error"),
		"malformed XML should surface an error")
}
