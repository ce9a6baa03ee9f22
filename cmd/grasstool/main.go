// grasstool is a CLI utility for creating, painting and inspecting grass
// data without an editor.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Faultbox/gtgrass/internal/config"
	"github.com/Faultbox/gtgrass/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "init":
		cmdInit(args)
	case "paint":
		cmdPaint(args)
	case "info":
		cmdInfo(args)
	case "validate", "check":
		cmdValidate(args)
	case "copy", "cp":
		cmdCopy(args)
	case "watch":
		cmdWatch(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`grasstool - grass painting data utility

Usage:
  grasstool <command> [options]

Commands:
  init <name> [folder]          Create empty grass data (default folder from config)
  paint <record> <script.yaml>  Replay scripted brush strokes and save
  info <record>                 Show record and mesh statistics
  validate <record>             Check mesh and cell index consistency
  copy <record>                 Save a timestamped copy next to the record
  watch                         Print asset changes below the assets root

Common options:
  -config <file>   Config file
  -assets <dir>    Directory that holds the Assets/ tree
  -brush <r>       Brush radius
  -density <n>     Cells per stroke (1-7)
  -seed <n>        Random seed
  -debug           Debug logging

Examples:
  grasstool init meadow Assets/Grass/
  grasstool paint Assets/Grass/meadow/meadow.yaml strokes.yaml
  grasstool info Assets/Grass/meadow/meadow.yaml
  grasstool copy -assets ./project Assets/Grass/meadow/meadow.yaml`)
}

// setup parses the command flags, loads the config and starts logging.
func setup(name string, args []string) (*config.Config, *flag.FlagSet) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	config.RegisterFlags(fs)
	fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		fatalf("Error: %v\n", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fatalf("Error: %v\n", err)
	}
	return cfg, fs
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format, a...)
	logger.Sync()
	os.Exit(1)
}
