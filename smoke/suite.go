package smoke

// Step visits one route and applies exactly one check to the result.
type Step struct {
	Route Route
	Check Check
}

// Case is a named sequence of steps run on the shared session. The first failing step ends the case.
type Case struct {
	Name  string
	Steps []Step
}

// Suite is the set of cases run against one origin.
type Suite struct {
	BaseURL string
	Cases   []Case
}

// DefaultSuite returns the smoke cases for the agile board application served at base.
func DefaultSuite(base string) *Suite {
	suite := &Suite{BaseURL: base}

	for _, route := range DefaultRoutes {
		suite.Cases = append(suite.Cases, Case{
			Name:  "routes_are_accessible" + string(route),
			Steps: []Step{{Route: route, Check: SameOrigin(base)}},
		})
	}

	suite.Cases = append(suite.Cases,
		Case{
			Name:  "landing_page_loads",
			Steps: []Step{{Route: "/", Check: ContentContainsAny("Agile", "Project")}},
		},
		Case{
			Name:  "dashboard_page_accessible",
			Steps: []Step{{Route: "/dashboard", Check: URLHasSuffix("/dashboard")}},
		},
		Case{
			Name: "settings_page_accessible",
			Steps: []Step{{
				Route: "/settings",
				Check: AnyOf(ContentContainsAny("Settings"), URLHasSuffix("/settings")),
			}},
		},
		Case{
			Name:  "backlog_page_loads",
			Steps: []Step{{Route: "/backlog", Check: URLHasSuffix("/backlog")}},
		},
		Case{
			Name:  "story_review_page_loads",
			Steps: []Step{{Route: "/story-review", Check: URLHasSuffix("/story-review")}},
		},
		Case{
			Name:  "user_can_navigate_multiple_pages",
			Steps: exactURLSteps(base, "/", "/dashboard", "/backlog"),
		},
		Case{
			Name: "pages_have_titles",
			Steps: []Step{
				{Route: "/", Check: TitlePresent()},
				{Route: "/dashboard", Check: TitlePresent()},
				{Route: "/backlog", Check: TitlePresent()},
				{Route: "/settings", Check: TitlePresent()},
			},
		},
		Case{
			Name: "story_review_backlog_dashboard",
			Steps: []Step{
				{Route: "/story-review", Check: URLHasSuffix("/story-review")},
				{Route: "/backlog", Check: URLHasSuffix("/backlog")},
				{Route: "/dashboard", Check: URLHasSuffix("/dashboard")},
			},
		},
	)

	return suite
}

// exactURLSteps visits routes in order and requires each to stay exactly where it was sent.
func exactURLSteps(base string, routes ...Route) []Step {
	steps := make([]Step, len(routes))
	for i, r := range routes {
		steps[i] = Step{Route: r, Check: URLEquals(r.URL(base))}
	}
	return steps
}
