package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&yieldCmd{}, "stocks")
	commander.Register(&peCmd{}, "stocks")
	commander.Register(&reportCmd{}, "trades")
	commander.Register(&serveCmd{}, "trades")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
