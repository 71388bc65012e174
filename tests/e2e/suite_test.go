//go:build e2e

package e2e

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wesign-io/wesign-e2e/internal/fixtures"
	"github.com/wesign-io/wesign-e2e/tests/e2e/helpers"
)

// startSession boots a browser, registers teardown and logs in with the
// suite credentials. Tests that need an anonymous browser call
// startBrowser instead.
func startSession(t *testing.T) (*helpers.BrowserHelper, *helpers.AuthHelper) {
	t.Helper()
	browser := startBrowser(t)
	auth := helpers.NewAuthHelper(browser)
	if !browser.Config.HasCredentials() {
		t.Skip("WESIGN_USER_EMAIL / WESIGN_USER_PASSWORD not configured")
	}
	require.NoError(t, auth.LoginAsUser(), "login precondition failed")
	return browser, auth
}

func startBrowser(t *testing.T) *helpers.BrowserHelper {
	t.Helper()
	browser := helpers.NewBrowserHelper(t)
	require.NoError(t, browser.Setup(), "failed to set up browser")
	t.Cleanup(browser.TearDown)
	return browser
}

// statusContains matches a status cell against its Hebrew or English label.
func statusContains(status, hebrew, english string) bool {
	return helpers.ContainsEither(status, hebrew, english)
}

// samplePDF writes a throwaway PDF into the test's temp dir.
func samplePDF(t *testing.T, name string, pages int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, fixtures.SamplePDF(path, "WeSign Test Agreement", pages))
	return path
}
