// Package main provides the entry point for ooosim.
// ooosim is a cycle-accurate functional simulator of an out-of-order
// superscalar integer pipeline with register renaming.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Sawii00/ooosim/core"
	"github.com/Sawii00/ooosim/loader"
)

// Exit codes distinguish a bad input program (1) from a bug in the
// simulator itself (2), so a CI harness driving many fixtures can tell
// the two apart at a glance.
const (
	exitInputError    = 1
	exitInternalError = 2
)

const defaultOutputPath = "out_log.json"

var verbose = flag.Bool("v", false, "Verbose diagnostic output")

func main() {
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		fmt.Fprintf(os.Stderr, "Usage: ooosim [options] <input.json> [output.json]\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(exitInputError)
	}

	inputPath := flag.Arg(0)
	outputPath := defaultOutputPath
	if flag.NArg() == 2 {
		outputPath = flag.Arg(1)
	}

	os.Exit(run(inputPath, outputPath))
}

func run(inputPath, outputPath string) int {
	code, err := loader.LoadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		return exitInputError
	}

	if *verbose {
		fmt.Printf("Loaded %s: %d instructions\n", inputPath, len(code))
	}

	var opts []core.Option
	if *verbose {
		opts = append(opts, core.WithLogger(log.New(os.Stderr, "ooosim: ", 0)))
	}

	cpu := core.NewCPU(code, opts...)
	result, err := cpu.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Internal simulator error: %v\n", err)
		return exitInternalError
	}

	if err := result.Dump(outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing state log: %v\n", err)
		return exitInputError
	}

	if *verbose {
		stats := cpu.Stats()
		fmt.Printf("Committed %d/%d instructions in %d cycles\n", stats.Committed, stats.ProgramLength, stats.Cycles)
		if stats.Exception {
			fmt.Printf("Exception at pc=%d\n", stats.ExceptionPC)
		}
	}

	return 0
}
