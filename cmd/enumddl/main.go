// Command enumddl prints column declarations for the enumerations in a definitions file
// and checks values against them.
package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/dbenum/cmd/enumddl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
