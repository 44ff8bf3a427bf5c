package main

import (
	"fmt" // fmt is used to print the final error for the user
	"os"  // os is used so we can exit with a non-zero status on error

	"github.com/joho/godotenv" // godotenv loads POTD_* variables from a local .env file

	"potd/internal/apperr"
	"potd/internal/cli"
)

// main is the entry point for the program. It keeps the logic very
// small by delegating all the real work to the cli.Run function.
//
// Every failure, whatever stage it comes from, ends here: the message is
// printed to standard output on a single line and the process exits with
// the code apperr.ExitCode assigns to it.
func main() {
	// A missing .env file is the normal case; anything it does define is
	// visible to the env tags on cli.CLIConfig.
	_ = godotenv.Load()

	if err := cli.Run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Println("Error:", err)
		os.Exit(apperr.ExitCode(err))
	}
}
