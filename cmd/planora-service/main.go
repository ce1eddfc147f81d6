package main

import (
	"os"

	"github.com/planora/planora-server/planoraservice"
)

func main() {
	if err := planoraservice.Run(); err != nil {
		os.Exit(1)
	}
}
