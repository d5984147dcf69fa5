//go:build !js
// +build !js

package route

// BrowserHistory returns an in-memory history starting at "/" when not
// compiled for the browser.
func BrowserHistory() History {
	return NewMemoryHistory("/")
}
