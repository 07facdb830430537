package main

import (
	"os"

	"github.com/N2Core/N2Identity/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
