package main

import (
	"github.com/ghostduel/server/internal/cli"
)

func main() {
	cli.Execute()
}
