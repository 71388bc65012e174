package pages

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"github.com/wesign-io/wesign-e2e/tests/e2e/helpers"
)

// SelfSigningPage drives the owner-signs-own-document flow.
type SelfSigningPage struct {
	BasePage
}

func NewSelfSigningPage(t *testing.T, browser *helpers.BrowserHelper) *SelfSigningPage {
	return &SelfSigningPage{BasePage: newBasePage(t, browser)}
}

func (p *SelfSigningPage) Navigate() {
	p.navigate("/self-sign")
	p.WaitSettled()
}

// UploadForSelfSign attaches a file and waits for the signing canvas.
func (p *SelfSigningPage) UploadForSelfSign(path string) {
	p.t.Helper()
	input := p.page.Locator("input[type='file']").First()
	require.NoError(p.t, input.SetInputFiles(path))
	preview := p.page.Locator(".document-preview, canvas.pdf-page, [data-testid='doc-preview']")
	require.NoError(p.t, preview.First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(20000),
	}), "preview did not render for self-sign upload")
}

// openSignatureDialog places a signature field and opens the capture dialog.
func (p *SelfSigningPage) openSignatureDialog() {
	p.t.Helper()
	canvas := p.page.Locator(".document-preview, canvas.pdf-page, [data-testid='doc-preview']").First()
	require.NoError(p.t, canvas.Click(playwright.LocatorClickOptions{
		Position: &playwright.Position{X: 200, Y: 300},
	}))
	dialog := p.page.Locator(".signature-dialog, .modal:has(canvas), [data-testid='signature-dialog']")
	require.NoError(p.t, dialog.First().WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}), "signature capture dialog did not open")
}

// SignWithDrawnSignature draws a zigzag on the capture canvas and applies it.
func (p *SelfSigningPage) SignWithDrawnSignature() {
	p.t.Helper()
	p.openSignatureDialog()

	tab := p.page.Locator(helpers.ButtonSelector("ציור", "Draw") + ", [data-tab='draw']")
	if n, _ := tab.Count(); n > 0 {
		require.NoError(p.t, tab.First().Click())
	}

	canvas := p.page.Locator(".signature-dialog canvas, [data-testid='signature-canvas']").First()
	box, err := canvas.BoundingBox()
	require.NoError(p.t, err, "signature canvas has no bounding box")

	mouse := p.page.Mouse()
	startX := box.X + box.Width*0.2
	startY := box.Y + box.Height*0.5
	require.NoError(p.t, mouse.Move(startX, startY))
	require.NoError(p.t, mouse.Down())
	for i := 1; i <= 4; i++ {
		dy := box.Height * 0.2
		if i%2 == 0 {
			dy = -dy
		}
		require.NoError(p.t, mouse.Move(startX+box.Width*0.15*float64(i), startY+dy, playwright.MouseMoveOptions{
			Steps: playwright.Int(5),
		}))
	}
	require.NoError(p.t, mouse.Up())

	p.applySignature()
}

// SignWithTypedSignature switches to the type tab and enters the name.
func (p *SelfSigningPage) SignWithTypedSignature(name string) {
	p.t.Helper()
	p.openSignatureDialog()
	p.ClickFirst(helpers.ButtonSelector("הקלדה", "Type") + ", [data-tab='type']")
	p.FillFirst(".signature-dialog input[type='text'], [data-testid='typed-signature']", name)
	p.applySignature()
}

// SignWithUploadedImage uploads a PNG as the signature.
func (p *SelfSigningPage) SignWithUploadedImage(imagePath string) {
	p.t.Helper()
	p.openSignatureDialog()
	p.ClickFirst(helpers.ButtonSelector("העלאה", "Upload") + ", [data-tab='upload']")
	input := p.page.Locator(".signature-dialog input[type='file'], [data-testid='signature-upload']").First()
	require.NoError(p.t, input.SetInputFiles(imagePath))
	p.applySignature()
}

func (p *SelfSigningPage) applySignature() {
	p.t.Helper()
	p.ClickFirst(".signature-dialog " + helpers.ButtonSelector("אישור", "Apply") +
		", .signature-dialog button[type='submit'], [data-testid='apply-signature']")
	p.WaitSettled()
}

// SignatureApplied reports whether a signature overlay now sits on the page.
func (p *SelfSigningPage) SignatureApplied() bool {
	return p.CountAny(".placed-field.signed, .signature-overlay, [data-testid='applied-signature']") > 0
}

// Finalize completes the self-sign flow.
func (p *SelfSigningPage) Finalize() {
	p.t.Helper()
	p.ClickFirst(helpers.ButtonSelector("סיום", "Finish") +
		", " + helpers.ButtonSelector("שלח", "Complete") + ", [data-testid='finalize-document']")
	p.WaitSettled()
}

// Completed reports whether the flow reached the completion screen.
func (p *SelfSigningPage) Completed() bool {
	return p.HasText("המסמך נחתם", "document signed") ||
		p.VisibleAny(".completion-screen, [data-testid='sign-complete']")
}
