package main

import (
	"os"

	"github.com/memexlabs/memex-go/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
