package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/GustavoCaso/finbot/internal/cli"
	"github.com/GustavoCaso/finbot/internal/cli/add"
	"github.com/GustavoCaso/finbot/internal/cli/category"
	"github.com/GustavoCaso/finbot/internal/cli/delete"
	exportCmd "github.com/GustavoCaso/finbot/internal/cli/export"
	importCmd "github.com/GustavoCaso/finbot/internal/cli/import"
	"github.com/GustavoCaso/finbot/internal/cli/list"
	"github.com/GustavoCaso/finbot/internal/cli/report"
	"github.com/GustavoCaso/finbot/internal/cli/tui"
	"github.com/GustavoCaso/finbot/internal/cli/update"
	"github.com/GustavoCaso/finbot/internal/cli/web"
	"github.com/GustavoCaso/finbot/internal/config"
	"github.com/GustavoCaso/finbot/internal/logger"
	"github.com/GustavoCaso/finbot/internal/store"
)

var configPath string
var ephemeral bool

var subcommands = map[string]cli.Command{
	"add":      add.NewCommand(),
	"category": category.NewCommand(),
	"delete":   delete.NewCommand(),
	"export":   exportCmd.NewCommand(),
	"import":   importCmd.NewCommand(),
	"list":     list.NewCommand(),
	"report":   report.NewCommand(),
	"tui":      tui.NewCommand(),
	"update":   update.NewCommand(),
	"web":      web.NewCommand(),
}

var subcommandsFlagSets = map[string]*flag.FlagSet{}

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("subcommand is required\n")
		printUsage()

		os.Exit(1)
	}

	for c, cLogic := range subcommands {
		fset := flag.NewFlagSet(c, flag.ExitOnError)
		fset.StringVar(&configPath, "c", "finbot.yml", "Configuration file")
		fset.BoolVar(&ephemeral, "ephemeral", false, "keep the ledger in memory for this run only")

		cLogic.SetFlags(fset)

		subcommandsFlagSets[c] = fset
	}

	commandName := os.Args[1]
	command, ok := subcommands[commandName]
	if !ok {
		if strings.Contains(commandName, "help") {
			printHelp()

			os.Exit(0)
		}
		log.Fatalf("unsupported comand %s. \nUse 'help' command to print information about supported commands\n", commandName)
	}

	//nolint:errcheck // the flag set exits on error
	subcommandsFlagSets[commandName].Parse(os.Args[2:])

	conf, err := config.Parse(configPath)
	if err != nil {
		log.Fatalf("Unable to parse the configuration: %s", err.Error())
	}

	if ephemeral {
		conf.Storage.Backend = config.BackendMemory
	}

	appLogger := logger.New(conf.Logger).WithComponent(commandName)

	s, err := store.OpenFromConfig(context.Background(), conf, appLogger)
	if err != nil {
		appLogger.Fatal("Unable to open the ledger", "error", err.Error())
	}

	runErr := command.Run(cli.Env{
		Config: conf,
		Store:  s,
		Logger: appLogger,
		Out:    os.Stdout,
	})

	if err = s.Close(); err != nil {
		appLogger.Error("Error closing storage", "error", err.Error())
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", commandName, runErr.Error())
		os.Exit(1)
	}
}

func printHelp() {
	printUsage()

	names := make([]string, 0, len(subcommands))
	for c := range subcommands {
		names = append(names, c)
	}
	sort.Strings(names)

	for _, c := range names {
		fmt.Printf("subcommmand <%s>: %s\n", c, subcommands[c].Description())
		subcommandsFlagSets[c].PrintDefaults()
		fmt.Println()
	}
}

func printUsage() {
	fmt.Printf("usage: finbot <subcommand> [flags]\n\n")
}
