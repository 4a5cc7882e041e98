// Package view maps a user's permission set to the application views they
// may open, and reconciles the currently selected view when permissions
// change underneath it.
package view

import "github.com/vyrtus/helpdesk/internal/auth"

type View string

const (
	Dashboard View = "dashboard"
	Tickets   View = "tickets"
	Assets    View = "assets"
	Admin     View = "admin"
)

// order is the fixed fallback order. When the selected view loses its
// permission flag the first enabled view in this order takes over.
var order = []View{Dashboard, Tickets, Assets, Admin}

// Enabled reports whether the permission flag backing v is set.
func Enabled(p auth.Permissions, v View) bool {
	switch v {
	case Dashboard:
		return p.CanViewDashboard
	case Tickets:
		return p.CanViewTickets
	case Assets:
		return p.CanViewAssets
	case Admin:
		return p.CanViewAdmin
	default:
		return false
	}
}

// Allowed returns the enabled views in fixed order.
func Allowed(p auth.Permissions) []View {
	var views []View
	for _, v := range order {
		if Enabled(p, v) {
			views = append(views, v)
		}
	}
	return views
}

// Resolve reconciles the selected view against the permission set. It keeps
// current when still enabled, otherwise falls back to the first enabled view
// in order. ok is false when no view is enabled at all. Resolve is pure:
// re-running it with unchanged inputs returns the same result.
func Resolve(current View, p auth.Permissions) (View, bool) {
	if Enabled(p, current) {
		return current, true
	}
	for _, v := range order {
		if Enabled(p, v) {
			return v, true
		}
	}
	return "", false
}
