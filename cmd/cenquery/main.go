package main

import (
	"os"

	"github.com/Maharajan0604/CenQuery/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
