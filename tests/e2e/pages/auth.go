package pages

import (
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"github.com/wesign-io/wesign-e2e/tests/e2e/helpers"
)

// AuthPage drives the login screen.
type AuthPage struct {
	BasePage
}

func NewAuthPage(t *testing.T, browser *helpers.BrowserHelper) *AuthPage {
	return &AuthPage{BasePage: newBasePage(t, browser)}
}

func (p *AuthPage) Navigate() {
	p.navigate("/login")
}

// Login fills credentials and submits. It does not assert the outcome.
func (p *AuthPage) Login(email, password string) {
	p.t.Helper()
	p.FillFirst("input[type='email'], input[name='email'], input#email", email)
	p.FillFirst("input[type='password'], input[name='password'], input#password", password)
	p.ClickFirst("button[type='submit'], " + helpers.ButtonSelector("התחבר", "Login"))
	p.WaitSettled()
}

// ExpectDashboard requires that the login landed on an authenticated view.
func (p *AuthPage) ExpectDashboard() {
	p.t.Helper()
	require.NoError(p.t, p.page.WaitForURL("**/dashboard**", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}), "expected redirect to dashboard after login")
}

// ErrorText returns the visible login error, or "" when none is shown.
func (p *AuthPage) ErrorText() string {
	return p.TextOf(".error-message, .alert-danger, [role='alert']")
}

// OnLoginPage reports whether the browser still shows the login form.
func (p *AuthPage) OnLoginPage() bool {
	return strings.Contains(p.page.URL(), "/login") &&
		p.VisibleAny("input[type='password'], input[name='password']")
}
