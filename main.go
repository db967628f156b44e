package main

import (
	"os"

	"github.com/AgencyAdmin/AgencyAdmin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
