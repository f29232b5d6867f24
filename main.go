package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/temirov/pipeshell/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the pipeshell command-line application. A .env file in the
// working directory seeds environment variables before configuration loads;
// its absence is not an error.
func main() {
	_ = godotenv.Load()

	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
