package main

import (
	"github.com/mojo-zlib/devtools/cmd"
)

func main() {
	cmd.Execute()
}
