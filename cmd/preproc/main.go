package main

import "github.com/mvp-joe/preproc-explorer/internal/cli"

func main() {
	cli.Execute()
}
