package main

import (
	"fmt"
	"os"

	// Explicitly import backend implementations to ensure their init() functions run and they register themselves
	_ "netstorctl/pkg/backend/akamai"
	_ "netstorctl/pkg/backend/s3"
)

func main() {
	app, err := newApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize application:", err)
		os.Exit(1)
	}
	Execute(app)
}
