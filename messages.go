package fetchview

import "github.com/octoberswimmer/fetchview/fetch"

// LoadMsg asks the page to issue a new request. It is sent once after the
// first render and on every Refresh click.
type LoadMsg struct{}

// LoadedMsg carries the outcome of the request identified by Handle.
type LoadedMsg struct {
	Handle fetch.Handle
	Result fetch.Result
}
