// Command web is the WebAssembly entry point of fetchview. Build it with
// GOOS=js GOARCH=wasm, or run `fetchview serve ./web`.
package main

import (
	"github.com/octoberswimmer/masc"

	"github.com/octoberswimmer/fetchview"
)

func main() {
	masc.SetTitle("fetchview")
	pgm := masc.NewProgram(fetchview.New())
	_, err := pgm.Run()
	if err != nil {
		panic(err)
	}
}
