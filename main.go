package main

import (
	"os"

	"github.com/xbrlgl/glvalidate/cmd"
)

func main() {
	os.Exit(cmd.Execute(cmd.NewRootCmd()))
}
