package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kraklabs/redymo/cmd"
)

func main() {
	// Default to a pretty console logger; run's --log-format flag can
	// switch this to JSON once flags are parsed.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	cmd.Execute()
}
