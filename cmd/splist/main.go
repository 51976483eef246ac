// splist exercises a SharePoint list through the same adapter the plugin uses.
// Connection settings come from flags, falling back to SHAREPOINT_* environment
// variables and an optional .env file in the working directory.
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
