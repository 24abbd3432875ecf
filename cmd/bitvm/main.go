// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/ezrec/bitvm/emulator"
)

func main() {
	var output string
	var config string
	var buttons string
	var maxTicks int
	var verbose bool
	var quiet bool

	flag.StringVar(&output, "o", "", "Write machine code to this file, do not execute")
	flag.StringVar(&config, "config", "", ".toml machine preset to apply")
	flag.StringVar(&buttons, "b", "", "Comma separated controller buttons to hold down")
	flag.IntVar(&maxTicks, "n", 0, "Tick limit, 0 for the preset's max_ticks")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&quiet, "q", false, "Do not dump the machine state at halt")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: usage: %v [flags] program.as|program.mc", os.Args[0], os.Args[0])
	}
	source := flag.Arg(0)

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	var cfg emulator.Config
	if len(config) != 0 {
		var err error
		cfg, err = emulator.LoadConfig(config)
		if err != nil {
			log.Fatalf("%v: %v", config, err)
		}
	}
	cfg.Verbose = cfg.Verbose || verbose
	if len(buttons) != 0 {
		cfg.Buttons = append(cfg.Buttons, strings.Split(buttons, ",")...)
	}
	if maxTicks == 0 {
		maxTicks = cfg.MaxTicks
	}

	err := emu.LoadFile(source)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	if len(output) != 0 {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()

		err = emu.Program.WriteMachineCode(ouf)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	err = emu.Apply(cfg)
	if err != nil {
		log.Fatalf("%v: %v", config, err)
	}

	// Character display pushes go to stdout as they happen.
	emu.Bus.Chars.Output = os.Stdout

	_, err = emu.Run(maxTicks)
	if !quiet {
		emu.Dump(os.Stderr)
	}
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}
}
