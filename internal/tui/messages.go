package tui

import "creatorstudio/internal/views"

// keyCheckedMsg reports the outcome of a credential presence check.
type keyCheckedMsg struct {
	HasKey bool
}

// keySelectedMsg reports the outcome of the key selection flow.
type keySelectedMsg struct {
	Err error
}

// settledMsg is sent when a view's request finishes.
type settledMsg struct {
	View views.Kind
}

// savedMsg reports where a generated file was written.
type savedMsg struct {
	Path string
	Err  error
}

// topicsMsg carries a dashboard refreshed with inspiration topics.
type topicsMsg struct {
	Dashboard views.DashboardSnapshot
}
