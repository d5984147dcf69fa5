// Package route maps client-side URL paths to rendered fragments for masc
// components. Navigation never leaves the page: links send a NavigateMsg and
// the owning model records the new path and pushes a history entry.
package route

import (
	"strings"

	"github.com/octoberswimmer/masc"
	"github.com/octoberswimmer/masc/elem"
	"github.com/octoberswimmer/masc/event"
	"github.com/octoberswimmer/masc/prop"
)

// NavigateMsg is sent when a route link is clicked.
type NavigateMsg struct {
	Path string
}

// ChangedMsg is sent when the browser changes the path on its own, e.g. on
// back/forward.
type ChangedMsg struct {
	Path string
}

// Route renders the fragment for a single path.
type Route struct {
	Path   string
	Name   string
	Render func(send func(masc.Msg)) masc.ComponentOrHTML
}

// Router resolves paths against a fixed set of routes. The first route is
// the fallback for paths that match nothing.
type Router struct {
	history History
	routes  []Route
	changed chan struct{}
}

// New creates a Router over the given routes and starts listening to history
// changes. It panics if no routes are given.
func New(history History, routes ...Route) *Router {
	if len(routes) == 0 {
		panic("route: at least one route is required")
	}
	r := &Router{
		history: history,
		routes:  routes,
		changed: make(chan struct{}, 1),
	}
	history.Listen(func(string) {
		// Runs on the browser's event loop and must not block. Changes
		// arriving before Watch picks them up collapse into one.
		select {
		case r.changed <- struct{}{}:
		default:
		}
	})
	return r
}

// Clean normalizes a path: empty becomes "/", query and fragment are
// dropped, and a trailing slash is removed.
func Clean(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == "/" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(path, "/")
}

// Current returns the path the history is currently at.
func (r *Router) Current() string {
	return Clean(r.history.Current())
}

// Match returns the route registered for path, or the fallback route.
func (r *Router) Match(path string) Route {
	path = Clean(path)
	for _, rt := range r.routes {
		if rt.Path == path {
			return rt
		}
	}
	return r.routes[0]
}

// Render renders the fragment of the route matching path.
func (r *Router) Render(path string, send func(masc.Msg)) masc.ComponentOrHTML {
	return r.Match(path).Render(send)
}

// Push returns a command recording path as a new history entry.
func (r *Router) Push(path string) masc.Cmd {
	return func() masc.Msg {
		r.history.Push(Clean(path))
		return nil
	}
}

// Watch returns a command that waits for the next history change and
// reports the path the history is at by then as a ChangedMsg. Models
// re-issue Watch after each ChangedMsg.
func (r *Router) Watch() masc.Cmd {
	return func() masc.Msg {
		<-r.changed
		return ChangedMsg{Path: r.Current()}
	}
}

// Link renders an anchor to path. Clicks are kept client-side and sent as a
// NavigateMsg.
func Link(path, label string, send func(masc.Msg)) *masc.HTML {
	return elem.Anchor(
		masc.Markup(
			masc.Class("route-link"),
			prop.Href(path),
			event.Click(func(e *masc.Event) {
				send(NavigateMsg{Path: path})
			}).PreventDefault(),
		),
		masc.Text(label),
	)
}
