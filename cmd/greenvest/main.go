package main

import (
	"log"
	"os"

	"GreenVest/internal/cli"
)

func main() {
	log.SetFlags(log.LstdFlags)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
