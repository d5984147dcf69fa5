package fetchview

import (
	"github.com/octoberswimmer/masc"
	"github.com/octoberswimmer/masc/elem"

	"github.com/octoberswimmer/fetchview/route"
)

const (
	IndexPath = "/"
	TestPath  = "/test"
)

func routes() []route.Route {
	return []route.Route{
		{
			Path: IndexPath,
			Name: "Index",
			Render: func(send func(masc.Msg)) masc.ComponentOrHTML {
				return elem.Div(
					route.Link(TestPath, "Test", send),
				)
			},
		},
		{
			Path: TestPath,
			Name: "Test",
			Render: func(send func(masc.Msg)) masc.ComponentOrHTML {
				return route.Link(IndexPath, "Index", send)
			},
		},
	}
}
