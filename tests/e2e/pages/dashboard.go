package pages

import (
	"strconv"
	"strings"
	"testing"

	"github.com/wesign-io/wesign-e2e/tests/e2e/helpers"
)

// DashboardPage reads the status counters and recent-activity feed.
type DashboardPage struct {
	BasePage
}

// StatusCounts mirrors the dashboard tiles. A count of -1 means the tile
// was not found or did not parse as a number.
type StatusCounts struct {
	Pending   int
	Completed int
	Declined  int
	Drafts    int
}

func NewDashboardPage(t *testing.T, browser *helpers.BrowserHelper) *DashboardPage {
	return &DashboardPage{BasePage: newBasePage(t, browser)}
}

func (p *DashboardPage) Navigate() {
	p.navigate("/dashboard")
	p.WaitSettled()
}

// Counts scrapes the four status tiles.
func (p *DashboardPage) Counts() StatusCounts {
	return StatusCounts{
		Pending:   p.tileCount("ממתין", "Pending"),
		Completed: p.tileCount("הושלם", "Completed"),
		Declined:  p.tileCount("נדחה", "Declined"),
		Drafts:    p.tileCount("טיוטה", "Draft"),
	}
}

func (p *DashboardPage) tileCount(hebrew, english string) int {
	sel := helpers.TextSelector(
		[]string{".stat-card", ".dashboard-tile", "[data-testid='status-tile']"},
		hebrew, english)
	text := p.TextOf(sel)
	if text == "" {
		return -1
	}
	// Tile text is label + number; grab the first numeric run.
	num := strings.Builder{}
	for _, r := range text {
		if r >= '0' && r <= '9' {
			num.WriteRune(r)
		} else if num.Len() > 0 {
			break
		}
	}
	if num.Len() == 0 {
		return -1
	}
	n, err := strconv.Atoi(num.String())
	if err != nil {
		return -1
	}
	return n
}

// RecentDocuments returns the visible titles from the recent-activity list.
func (p *DashboardPage) RecentDocuments() []string {
	loc := p.page.Locator(".recent-activity li, .recent-documents .doc-title, [data-testid='recent-doc']")
	n, err := loc.Count()
	if err != nil {
		return nil
	}
	titles := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if text, err := loc.Nth(i).TextContent(); err == nil {
			if t := strings.TrimSpace(text); t != "" {
				titles = append(titles, t)
			}
		}
	}
	return titles
}

// QuickActionAvailable reports whether a shortcut to the given flow exists.
func (p *DashboardPage) QuickActionAvailable(hebrew, english string) bool {
	return p.VisibleAny(helpers.ButtonSelector(hebrew, english))
}
