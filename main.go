package main

import (
	"github.com/objtrace/objtrace/command/root"
)

func main() {
	root.NewRootCommand().Execute()
}
