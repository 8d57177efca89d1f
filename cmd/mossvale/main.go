package main

import (
	"github.com/mossvale/mossvale/internal/cli"
)

func main() {
	cli.Execute()
}
