package main

import (
	"os"

	"github.com/arloliu/cramcodec/cmd/cramcodec/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
