package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/adb-explorer/adbexplorer/utils"

	_ "github.com/adb-explorer/adbexplorer/subcommands"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

var version string

func main() {
	utils.Version = version
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flag.BoolVar(&utils.G_debug, "debug", false, "debug mode")
	logFile := flag.String("log", utils.PathCache("logs", "adbexplorer.log"), "log file, empty to disable")
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.ImportantFlag("debug")
	flag.Parse()

	// building is what a bare invocation does
	if flag.NArg() == 0 {
		flag.CommandLine.Parse([]string{"build"})
	}

	setupConsole()
	closeLog := setupLogging(*logFile, utils.G_debug)
	utils.AddCleanup(closeLog)
	if version != "" {
		logrus.Infof("%s version: %s", utils.CmdName, version)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		logrus.Debugf("received %s", sig)
		cancel()
	}()

	ret := subcommands.Execute(ctx)
	utils.RunCleanup()
	if ret == subcommands.ExitUsageError {
		printCommands()
	}
	os.Exit(int(ret))
}

func printCommands() {
	names := make([]string, 0, len(utils.ValidCMDs))
	for name := range utils.ValidCMDs {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(os.Stderr, "Available commands:")
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "\t%-8s %s\n", name, utils.ValidCMDs[name])
	}
	fmt.Fprintf(os.Stderr, "Use '%s <command>' to run a command\n", utils.CmdName)
}
