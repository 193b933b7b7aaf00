package main

import (
	"os"

	"github.com/Sobaasvini/online-quiz-application/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
