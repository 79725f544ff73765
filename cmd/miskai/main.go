// Command miskai transcribes text to IPA, manages stored dictionaries and
// serves the HTTP API.
//
// Commands:
//
//	process   transcribe text from arguments or stdin
//	lookup    print the dictionary entry of a word
//	serve     run the HTTP server
//	seed      import a dictionary file into the database
//	version   print build information
//
// A .env file in the working directory is loaded before configuration.
// Exit codes: 0 = success, 1 = error.
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
