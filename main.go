package main

import (
	"github.com/mj1618/dock-cli/cmd"
	_ "github.com/mj1618/dock-cli/internal/platform/darwin"
)

func main() {
	cmd.Execute()
}
