package main

import (
	"github.com/hiddenclip/tubescope/cmd"
)

func main() {
	cmd.Execute()
}
