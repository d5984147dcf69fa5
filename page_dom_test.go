package fetchview

import (
	"strings"
	"testing"

	"github.com/gost-dom/browser/html"
	"github.com/octoberswimmer/masc"

	"github.com/octoberswimmer/fetchview/fetch"
	"github.com/octoberswimmer/fetchview/route"
)

func newWindow(t *testing.T) html.Window {
	t.Helper()
	win, err := html.NewWindowReader(strings.NewReader("<!DOCTYPE html><html><body></body></html>"))
	if err != nil {
		t.Fatalf("failed to create gost-dom window: %v", err)
	}
	return win
}

func TestPageViewInitialRender(t *testing.T) {
	win := newWindow(t)
	bodyEl, err := masc.RenderComponentInto(win, New(WithHistory(route.NewMemoryHistory("/"))))
	if err != nil {
		t.Fatalf("RenderComponentInto error: %v", err)
	}
	got := bodyEl.InnerHTML()
	for _, want := range []string{"Refresh", "<p>0</p>", "...", `href="/test"`, ">Test<"} {
		if !strings.Contains(got, want) {
			t.Errorf("initial render missing %q; got %q", want, got)
		}
	}
}

func TestPageViewLoadCycle(t *testing.T) {
	win := newWindow(t)
	page := New(WithHistory(route.NewMemoryHistory("/")))
	bodyEl, send, err := masc.RenderComponentIntoWithSend(win, page)
	if err != nil {
		t.Fatalf("RenderComponentIntoWithSend error: %v", err)
	}

	send(LoadMsg{})
	if got := bodyEl.InnerHTML(); !strings.Contains(got, "<p>1</p>") {
		t.Errorf("counter not updated after load; got %q", got)
	}
	if page.Pending == nil {
		t.Fatal("expected pending request")
	}

	send(LoadedMsg{Handle: *page.Pending, Result: fetch.Result{Body: "hello"}})
	got := bodyEl.InnerHTML()
	if !strings.Contains(got, "hello") {
		t.Errorf("message not rendered; got %q", got)
	}
	if strings.Contains(got, "...") {
		t.Errorf("placeholder still rendered; got %q", got)
	}
}

func TestPageViewRefreshClick(t *testing.T) {
	win := newWindow(t)
	page := New(WithHistory(route.NewMemoryHistory("/")))
	bodyEl, err := masc.RenderComponentInto(win, page)
	if err != nil {
		t.Fatalf("RenderComponentInto error: %v", err)
	}
	if err := bodyEl.Dispatch("button", "click"); err != nil {
		t.Fatalf("dispatch error: %v", err)
	}
	if page.Counter != 1 {
		t.Errorf("Counter = %d after click, want 1", page.Counter)
	}
	if got := bodyEl.InnerHTML(); !strings.Contains(got, "<p>1</p>") {
		t.Errorf("counter not rendered after click; got %q", got)
	}
}

func TestPageViewTestRoute(t *testing.T) {
	win := newWindow(t)
	bodyEl, err := masc.RenderComponentInto(win, New(WithHistory(route.NewMemoryHistory("/test"))))
	if err != nil {
		t.Fatalf("RenderComponentInto error: %v", err)
	}
	got := bodyEl.InnerHTML()
	if !strings.Contains(got, `href="/"`) || !strings.Contains(got, ">Index<") {
		t.Errorf("expected link back to /; got %q", got)
	}
}

func TestPageViewNavigate(t *testing.T) {
	win := newWindow(t)
	bodyEl, send, err := masc.RenderComponentIntoWithSend(win, New(WithHistory(route.NewMemoryHistory("/"))))
	if err != nil {
		t.Fatalf("RenderComponentIntoWithSend error: %v", err)
	}
	send(route.NavigateMsg{Path: "/test"})
	got := bodyEl.InnerHTML()
	if !strings.Contains(got, ">Index<") {
		t.Errorf("expected Index link after navigating to /test; got %q", got)
	}
	if strings.Contains(got, ">Test<") {
		t.Errorf("Test link should be gone on /test; got %q", got)
	}
}

func TestPageViewLinkClick(t *testing.T) {
	win := newWindow(t)
	h := route.NewMemoryHistory("/")
	page := New(WithHistory(h))
	bodyEl, err := masc.RenderComponentInto(win, page)
	if err != nil {
		t.Fatalf("RenderComponentInto error: %v", err)
	}
	if err := bodyEl.Dispatch("a", "click"); err != nil {
		t.Fatalf("dispatch error: %v", err)
	}
	if page.Path != "/test" {
		t.Errorf("Path = %q after link click, want /test", page.Path)
	}
	got := bodyEl.InnerHTML()
	if !strings.Contains(got, `href="/"`) || !strings.Contains(got, ">Index<") {
		t.Errorf("expected Index link after clicking Test; got %q", got)
	}
}
