package main

import (
	"os"

	"github.com/devportfolio/devportfolio/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
