// Package fetchview is a single-page masc application that loads a remote
// JSON document and shows it verbatim beside a request counter.
//
// The page follows The Elm Architecture: PageView holds all state, Update
// applies LoadMsg, LoadedMsg and routing messages to it, and Render is a
// pure function of that state.
package fetchview

import (
	"strconv"

	"github.com/octoberswimmer/masc"
	"github.com/octoberswimmer/masc/elem"
	"github.com/octoberswimmer/masc/event"

	"github.com/octoberswimmer/fetchview/fetch"
	"github.com/octoberswimmer/fetchview/route"
)

// Placeholder is shown until the first request completes.
const Placeholder = "..."

// PageView is the root component of the application.
type PageView struct {
	masc.Core

	// Counter is the number of requests issued so far.
	Counter int
	// Message is the body or error text of the most recently completed
	// request.
	Message string
	// Pending is the handle of the newest request while it is in flight.
	Pending *fetch.Handle
	// Path is the active route.
	Path string

	cfg    config
	router *route.Router
}

// New creates the page in its initial state. It performs no I/O.
func New(opts ...Option) *PageView {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	p := &PageView{
		Message: Placeholder,
		cfg:     cfg,
	}
	p.router = route.New(cfg.history, routes()...)
	p.Path = p.router.Current()
	return p
}

// Init runs once, after the initial view has been rendered. It triggers the
// first load and starts following history changes.
func (p *PageView) Init() masc.Cmd {
	return masc.Batch(
		func() masc.Msg { return LoadMsg{} },
		p.router.Watch(),
	)
}

// Update applies msg to the page.
func (p *PageView) Update(msg masc.Msg) (masc.Model, masc.Cmd) {
	switch msg := msg.(type) {
	case LoadMsg:
		return p, p.requestLoad()
	case LoadedMsg:
		// Results are applied in completion order, so a slow earlier
		// request can overwrite a newer one.
		p.Message = msg.Result.Text()
		if p.Pending != nil && p.Pending.ID == msg.Handle.ID {
			p.Pending = nil
		}
	case route.NavigateMsg:
		p.Path = route.Clean(msg.Path)
		return p, p.router.Push(p.Path)
	case route.ChangedMsg:
		p.Path = msg.Path
		return p, p.router.Watch()
	}
	return p, nil
}

func (p *PageView) requestLoad() masc.Cmd {
	h, run := p.cfg.client.Start(p.cfg.ctx, p.cfg.url)
	p.Pending = &h
	p.Counter++
	return func() masc.Msg {
		return LoadedMsg{Handle: h, Result: run()}
	}
}

// Loading reports whether a request is in flight.
func (p *PageView) Loading() bool {
	return p.Pending != nil
}

// Render implements the masc.Component interface.
func (p *PageView) Render(send func(masc.Msg)) masc.ComponentOrHTML {
	return elem.Body(
		elem.Div(
			masc.Markup(
				masc.Class("container", "mx-auto"),
			),

			p.router.Render(p.Path, send),

			elem.Div(
				masc.Markup(
					masc.Class("border-t-1"),
				),

				elem.Button(
					masc.Markup(
						masc.Class("border-2", "rounded", "p-2", "bg-purple-200"),
						event.Click(func(e *masc.Event) {
							send(LoadMsg{})
						}),
					),
					masc.Text("Refresh"),
				),
				elem.Paragraph(
					masc.Text(strconv.Itoa(p.Counter)),
				),
				elem.Div(
					masc.Markup(
						masc.Class("monospace", "overflow"),
					),
					masc.Text(p.Message),
				),
			),
		),
	)
}
