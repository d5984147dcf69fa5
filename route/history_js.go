//go:build js
// +build js

package route

import "syscall/js"

type browserHistory struct{}

// BrowserHistory returns the History of the current window, backed by
// window.location and window.history.
func BrowserHistory() History {
	return browserHistory{}
}

func (browserHistory) Current() string {
	return js.Global().Get("location").Get("pathname").String()
}

func (browserHistory) Push(path string) {
	js.Global().Get("history").Call("pushState", js.Null(), "", path)
}

func (b browserHistory) Listen(fn func(path string)) {
	// Never released; the listener lives as long as the page.
	cb := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		fn(b.Current())
		return nil
	})
	js.Global().Call("addEventListener", "popstate", cb)
}
