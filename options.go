package fetchview

import (
	"context"

	"github.com/octoberswimmer/fetchview/fetch"
	"github.com/octoberswimmer/fetchview/route"
)

type config struct {
	ctx     context.Context
	url     string
	client  *fetch.Client
	history route.History
}

func defaultConfig() config {
	return config{
		ctx:     context.Background(),
		url:     fetch.DefaultURL,
		client:  fetch.NewClient(),
		history: route.BrowserHistory(),
	}
}

// Option is used to set options when creating a PageView with New.
//
// Example usage:
//
//	p := New(WithURL(srv.URL), WithHistory(route.NewMemoryHistory("/test")))
type Option func(*config)

// WithContext sets the context requests are issued under. Cancelling it
// fails requests that are still in flight.
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		c.ctx = ctx
	}
}

// WithURL replaces the endpoint that is loaded. The application itself
// always uses fetch.DefaultURL; this is useful for testing.
func WithURL(url string) Option {
	return func(c *config) {
		c.url = url
	}
}

// WithClient sets the fetch client used for requests.
func WithClient(client *fetch.Client) Option {
	return func(c *config) {
		c.client = client
	}
}

// WithHistory sets the history the page reads its initial path from and
// pushes navigations to. It defaults to the browser's history.
func WithHistory(h route.History) Option {
	return func(c *config) {
		c.history = h
	}
}
