// Package pages holds the page-object models for the WeSign UI.
// Actions fail the test via require; probes return plain values so the
// calling test decides whether absence of a feature is a failure or a skip.
package pages

import (
	"strings"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"github.com/wesign-io/wesign-e2e/tests/e2e/helpers"
)

// BasePage supplies generic waits, clicks and fills shared by all page objects.
type BasePage struct {
	t       *testing.T
	browser *helpers.BrowserHelper
	page    playwright.Page
}

func newBasePage(t *testing.T, browser *helpers.BrowserHelper) BasePage {
	return BasePage{t: t, browser: browser, page: browser.Page}
}

// Page exposes the underlying playwright page for one-off locators in tests.
func (b *BasePage) Page() playwright.Page {
	return b.page
}

func (b *BasePage) navigate(path string) {
	b.t.Helper()
	require.NoError(b.t, b.browser.NavigateTo(path))
	require.NoError(b.t, b.browser.WaitForLoad())
}

// ClickFirst clicks the first match of a fallback selector chain.
func (b *BasePage) ClickFirst(selector string) {
	b.t.Helper()
	loc := b.page.Locator(selector).First()
	require.NoError(b.t, loc.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}), "element not visible: %s", selector)
	require.NoError(b.t, loc.Click(), "click failed: %s", selector)
}

// FillFirst fills the first match of a fallback selector chain.
func (b *BasePage) FillFirst(selector, value string) {
	b.t.Helper()
	loc := b.page.Locator(selector).First()
	require.NoError(b.t, loc.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}), "input not visible: %s", selector)
	require.NoError(b.t, loc.Fill(value), "fill failed: %s", selector)
}

// CountAny returns how many elements match the selector chain.
func (b *BasePage) CountAny(selector string) int {
	n, err := b.page.Locator(selector).Count()
	require.NoError(b.t, err)
	return n
}

// VisibleAny reports whether at least one match of the chain is visible.
func (b *BasePage) VisibleAny(selector string) bool {
	loc := b.page.Locator(selector)
	n, err := loc.Count()
	if err != nil || n == 0 {
		return false
	}
	for i := 0; i < n; i++ {
		if visible, _ := loc.Nth(i).IsVisible(); visible {
			return true
		}
	}
	return false
}

// TextOf returns the trimmed text content of the first match, or "".
func (b *BasePage) TextOf(selector string) string {
	loc := b.page.Locator(selector)
	if n, _ := loc.Count(); n == 0 {
		return ""
	}
	text, err := loc.First().TextContent()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// HasText reports whether the page body contains the Hebrew or English label.
func (b *BasePage) HasText(hebrew, english string) bool {
	body := b.TextOf("body")
	return helpers.ContainsEither(body, hebrew, english)
}

// WaitSettled waits for network idle plus a short grace for animations.
func (b *BasePage) WaitSettled() {
	b.t.Helper()
	require.NoError(b.t, b.browser.WaitForLoad())
	time.Sleep(300 * time.Millisecond)
}

// dismissToast closes a transient notification if one is covering the page.
func (b *BasePage) dismissToast() {
	toast := b.page.Locator(".toast .close, .notification .delete, [data-testid='toast-close']")
	if n, _ := toast.Count(); n > 0 {
		_ = toast.First().Click()
	}
}
