package helpers

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// AuthHelper provides authentication utilities for tests
type AuthHelper struct {
	browser *BrowserHelper
}

// NewAuthHelper creates a new authentication helper
func NewAuthHelper(browser *BrowserHelper) *AuthHelper {
	return &AuthHelper{
		browser: browser,
	}
}

// Login performs login with the given credentials
func (a *AuthHelper) Login(email, password string) error {
	if err := a.browser.NavigateTo("/login"); err != nil {
		return fmt.Errorf("failed to navigate to login: %w", err)
	}

	emailInput := a.browser.Page.Locator("input[type='email'], input[name='email'], input#email")
	if err := emailInput.First().WaitFor(); err != nil {
		return fmt.Errorf("email input not found: %w", err)
	}
	if err := emailInput.First().Fill(email); err != nil {
		return fmt.Errorf("failed to fill email: %w", err)
	}

	passwordInput := a.browser.Page.Locator("input[type='password'], input[name='password'], input#password")
	if err := passwordInput.First().Fill(password); err != nil {
		return fmt.Errorf("failed to fill password: %w", err)
	}

	// Submit label differs between the Hebrew and English builds
	submitButton := a.browser.Page.Locator(
		"button[type='submit'], button:has-text('התחבר'), button:has-text('כניסה'), button:has-text('Login'), button:has-text('Sign In')")
	if err := submitButton.First().Click(); err != nil {
		return fmt.Errorf("failed to click submit: %w", err)
	}

	if err := a.browser.WaitForLoad(); err != nil {
		return fmt.Errorf("failed waiting for login response: %w", err)
	}

	url := a.browser.Page.URL()
	if strings.Contains(url, "/dashboard") || strings.Contains(url, "/documents") {
		return nil
	}

	errorMsg := a.browser.Page.Locator(".error-message, .alert-danger, [role='alert']")
	if count, _ := errorMsg.Count(); count > 0 {
		text, _ := errorMsg.First().TextContent()
		return fmt.Errorf("login failed: %s", strings.TrimSpace(text))
	}

	return nil
}

// LoginAsUser logs in with the suite credentials from config
func (a *AuthHelper) LoginAsUser() error {
	if !a.browser.Config.HasCredentials() {
		return fmt.Errorf("WESIGN_USER_EMAIL / WESIGN_USER_PASSWORD not configured")
	}
	return a.Login(a.browser.Config.UserEmail, a.browser.Config.UserPassword)
}

// Logout performs logout
func (a *AuthHelper) Logout() error {
	// Prefer clicking a visible logout control if present. The control may
	// hide behind the user avatar menu.
	menu := a.browser.Page.Locator(".user-menu, [data-testid='user-menu'], .avatar-menu")
	if count, _ := menu.Count(); count > 0 {
		_ = menu.First().Click()
	}

	logoutLink := a.browser.Page.Locator(
		"a[href='/logout'], button:has-text('התנתק'), button:has-text('יציאה'), button:has-text('Logout'), button:has-text('Sign Out')")
	if count, _ := logoutLink.Count(); count > 0 {
		if err := logoutLink.First().Click(); err == nil {
			if err := a.browser.Page.WaitForURL("**/login**", playwright.PageWaitForURLOptions{Timeout: playwright.Float(5000)}); err == nil {
				return nil
			}
		}
		// Fall through to direct navigation if click or wait fails
	}

	if _, err := a.browser.Page.Goto(a.browser.Config.BaseURL + "/logout"); err != nil {
		return fmt.Errorf("failed to navigate to /logout: %w", err)
	}
	if err := a.browser.Page.WaitForURL("**/login**", playwright.PageWaitForURLOptions{Timeout: playwright.Float(5000)}); err != nil {
		return fmt.Errorf("logout redirect failed: %w", err)
	}
	return nil
}

// IsLoggedIn checks if the user is currently logged in
func (a *AuthHelper) IsLoggedIn() bool {
	shell := a.browser.Page.Locator("[data-page='dashboard'], .main-layout, [data-testid='app-root']")
	if count, _ := shell.Count(); count > 0 {
		return true
	}

	url := a.browser.Page.URL()
	if url == "" || strings.HasPrefix(url, "about:") || !strings.HasPrefix(url, a.browser.Config.BaseURL) {
		return false
	}
	return !strings.Contains(url, "/login") &&
		url != a.browser.Config.BaseURL+"/"
}
