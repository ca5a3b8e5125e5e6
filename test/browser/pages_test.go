//go:build browser

package browser_test

import (
	"testing"

	"github.com/taigaclone/pagesmoke/smoke"
)

func TestRoutesAreAccessible(t *testing.T) {
	for _, route := range smoke.DefaultRoutes {
		t.Run(string(route), func(t *testing.T) {
			page := TestBrowserManager.Acquire(t)

			page.MustVisit(url(route)).Expect(smoke.SameOrigin(baseURL))
		})
	}
}

func TestLandingPageLoads(t *testing.T) {
	page := TestBrowserManager.Acquire(t)

	page.MustVisit(baseURL).Expect(smoke.ContentContainsAny("Agile", "Project"))
}

func TestDashboardPageAccessible(t *testing.T) {
	page := TestBrowserManager.Acquire(t)

	page.MustVisit(url("/dashboard")).Expect(smoke.URLHasSuffix("/dashboard"))
}

func TestSettingsPageAccessible(t *testing.T) {
	page := TestBrowserManager.Acquire(t)

	page.MustVisit(url("/settings")).Expect(smoke.AnyOf(smoke.ContentContainsAny("Settings"), smoke.URLHasSuffix("/settings")))
}

func TestBacklogPageLoads(t *testing.T) {
	page := TestBrowserManager.Acquire(t)

	page.MustVisit(url("/backlog")).Expect(smoke.URLHasSuffix("/backlog"))
}

func TestStoryReviewPageLoads(t *testing.T) {
	page := TestBrowserManager.Acquire(t)

	page.MustVisit(url("/story-review")).Expect(smoke.URLHasSuffix("/story-review"))
}

func TestPagesHaveTitles(t *testing.T) {
	page := TestBrowserManager.Acquire(t)

	for _, route := range []smoke.Route{"/", "/dashboard", "/backlog", "/settings"} {
		page.MustVisit(url(route)).Expect(smoke.TitlePresent())
	}
}
