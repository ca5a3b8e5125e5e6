package httpz

import (
	"github.com/taigaclone/pagesmoke/view"
)

const appName = "Taiga Clone"

type pageSpec struct {
	path string
	page view.Page
}

var navigation = []view.NavItem{
	{Label: "Home", Href: "/"},
	{Label: "Dashboard", Href: "/dashboard"},
	{Label: "Backlog", Href: "/backlog"},
	{Label: "Story Review", Href: "/story-review"},
	{Label: "Settings", Href: "/settings"},
	{Label: "Sign in", Href: "/login"},
	{Label: "Register", Href: "/register"},
}

// pageSpecs mirrors the text of the real application's views closely enough for content checks.
var pageSpecs = []*pageSpec{
	{
		path: "/",
		page: view.Page{
			Title:   appName + " | Agile Project Management",
			Heading: "Welcome to " + appName,
			Lead:    "Agile project management for product owners, scrum masters, developers and QA.",
			Sections: []view.Section{
				{Heading: "Your Access Level", Items: []string{"Dashboard", "Kanban", "Sprints", "Issues", "Team", "Settings"}},
			},
		},
	},
	{
		path: "/login",
		page: view.Page{
			Title:   "Sign in | " + appName,
			Heading: appName,
			Lead:    "Sign in with a demo account to explore the project.",
			Sections: []view.Section{
				{Heading: "Demo Accounts", TestID: "demo-accounts", Items: []string{"Product Owner", "Scrum Master", "Developer", "QA", "Admin"}},
			},
		},
	},
	{
		path: "/register",
		page: view.Page{
			Title:   "Register | " + appName,
			Heading: "Create Your Organization",
			Lead:    "Set up a workspace for your team's agile projects.",
		},
	},
	{
		path: "/dashboard",
		page: view.Page{
			Title:   "Dashboard | " + appName,
			Heading: "Dashboard",
			Lead:    "Acme Web Platform",
			Sections: []view.Section{
				{Heading: "Sprint 4", TestID: "active-sprint", Items: []string{"12 stories in progress", "5 days remaining"}},
				{Heading: "Recent Activity", Items: []string{"Story moved to In Progress", "Issue reported on checkout"}},
			},
		},
	},
	{
		path: "/backlog",
		page: view.Page{
			Title:   "Backlog | " + appName,
			Heading: "Product Backlog",
			Sections: []view.Section{
				{Heading: "Stories", TestID: "backlog-stories", Items: []string{
					"User Authentication with Multi-Factor Authentication",
					"Product Search with Advanced Filters",
				}},
			},
		},
	},
	{
		path: "/settings",
		page: view.Page{
			Title:   "Settings | " + appName,
			Heading: "Project Settings",
			Sections: []view.Section{
				{Heading: "General Settings", Items: []string{"Project name", "Description"}},
				{Heading: "Notification Preferences", Items: []string{"Email notifications", "Push notifications"}},
				{Heading: "Integrations", Items: []string{"GitHub", "Slack"}},
			},
		},
	},
	{
		path: "/story-review",
		page: view.Page{
			Title:   "Story Review | " + appName,
			Heading: "Story Review",
			Lead:    "Review user stories generated from the uploaded proposal.",
			Sections: []view.Section{
				{Heading: "Generated Stories", TestID: "generated-stories", Items: []string{
					"User Authentication with Multi-Factor Authentication",
					"Product Search with Advanced Filters",
				}},
			},
		},
	},
}
