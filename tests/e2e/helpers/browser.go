package helpers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/wesign-io/wesign-e2e/tests/e2e/config"
)

// BrowserHelper provides browser setup and teardown for tests
type BrowserHelper struct {
	Playwright *playwright.Playwright
	Browser    playwright.Browser
	Context    playwright.BrowserContext
	Page       playwright.Page
	Config     *config.TestConfig
	t          *testing.T

	stepMu sync.Mutex
	step   int
}

// NewBrowserHelper creates a new browser helper instance
func NewBrowserHelper(t *testing.T) *BrowserHelper {
	return &BrowserHelper{
		Config: config.GetConfig(),
		t:      t,
	}
}

// Setup initializes the browser and creates a new page
func (b *BrowserHelper) Setup() error {
	var pw *playwright.Playwright
	var err error
	if os.Getenv("PLAYWRIGHT_PREINSTALLED") != "1" {
		if err = playwright.Install(); err != nil {
			return fmt.Errorf("could not install playwright browsers: %w", err)
		}
	}
	pw, err = playwright.Run()
	if err != nil {
		// Fallback: attempt install driver explicitly then retry
		_ = playwright.Install()
		pw, err = playwright.Run()
		if err != nil {
			return fmt.Errorf("could not start playwright after retry (ensure driver version matches image): %w", err)
		}
	}
	b.Playwright = pw

	browserType := pw.Chromium
	switch os.Getenv("BROWSER") {
	case "firefox":
		browserType = pw.Firefox
	case "webkit":
		browserType = pw.WebKit
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(b.Config.Headless),
		SlowMo:   playwright.Float(float64(b.Config.SlowMo)),
	})
	if err != nil {
		return fmt.Errorf("could not launch browser: %w", err)
	}
	b.Browser = browser

	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
		// WeSign renders Hebrew UI by default; a he-IL context keeps the
		// deployment from falling back to English.
		Locale: playwright.String(localeTag(b.Config.Locale)),
	}
	if b.Config.Videos {
		contextOpts.RecordVideo = &playwright.RecordVideo{
			Dir: "./test-results/videos",
		}
	}
	context, err := browser.NewContext(contextOpts)
	if err != nil {
		return fmt.Errorf("could not create context: %w", err)
	}
	b.Context = context

	page, err := context.NewPage()
	if err != nil {
		return fmt.Errorf("could not create page: %w", err)
	}
	b.Page = page

	page.SetDefaultTimeout(float64(b.Config.Timeout.Milliseconds()))

	return nil
}

// TearDown closes the browser and cleans up resources
func (b *BrowserHelper) TearDown() {
	if b.t.Failed() && b.Config.Screenshots && b.Page != nil {
		screenshotPath := fmt.Sprintf("./test-results/screenshots/%s_%d.png",
			sanitizeName(b.t.Name()), time.Now().Unix())
		_, _ = b.Page.Screenshot(playwright.PageScreenshotOptions{
			Path: playwright.String(screenshotPath),
		})
	}

	if b.Page != nil {
		b.Page.Close()
	}
	if b.Context != nil {
		b.Context.Close()
	}
	if b.Browser != nil {
		b.Browser.Close()
	}
	if b.Playwright != nil {
		b.Playwright.Stop()
	}
}

// NavigateTo navigates to a path relative to the base URL
func (b *BrowserHelper) NavigateTo(path string) error {
	url := b.Config.BaseURL + path
	_, err := b.Page.Goto(url)
	if err != nil && strings.Contains(err.Error(), "ERR_TOO_MANY_REDIRECTS") {
		return fmt.Errorf("redirect loop navigating to %s (check WESIGN_BASE_URL / login redirect configuration): %w", url, err)
	}
	return err
}

// WaitForLoad waits for in-flight requests to settle
func (b *BrowserHelper) WaitForLoad() error {
	return b.Page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})
}

// WaitForApp waits until the WeSign application shell is rendered.
// The SPA mounts into #app / .main-layout after the login redirect settles.
func (b *BrowserHelper) WaitForApp() error {
	shell := b.Page.Locator("#app, .main-layout, [data-testid='app-root']")
	if err := shell.First().WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return fmt.Errorf("application shell did not render: %w", err)
	}
	return b.WaitForLoad()
}

// Screenshot takes a step-numbered screenshot for the current subtest.
// Failures to capture are logged, never fatal.
func (b *BrowserHelper) Screenshot(t *testing.T, phase string) {
	b.stepMu.Lock()
	b.step++
	step := b.step
	b.stepMu.Unlock()

	name := fmt.Sprintf("%02d-%s-%s.png", step, sanitizeName(filepath.Base(t.Name())), phase)
	path := filepath.Join("test-results", "screenshots", name)
	if _, err := b.Page.Screenshot(playwright.PageScreenshotOptions{
		Path: playwright.String(path),
	}); err != nil {
		t.Logf("WARNING: could not take screenshot %s: %v", name, err)
	}
}

func sanitizeName(name string) string {
	r := strings.NewReplacer("/", "_", " ", "_", "'", "", "\"", "")
	return r.Replace(name)
}

func localeTag(locale string) string {
	if locale == "en" {
		return "en-US"
	}
	return "he-IL"
}
