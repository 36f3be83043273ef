// Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.

package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const version = "1.0.0"

func main() {
	root := &cobra.Command{
		Use:     "simgpu",
		Short:   "Cycle-accurate functional simulator for a minimal SIMT GPU",
		Version: version,
	}

	root.AddCommand(newRunCmd(), newStepCmd(), newDisasmCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadROM reads and parses a ROM image file (SPEC_FULL.md §6.1). On a
// malformed ROM it prints the error and exits 2, per spec.md §6's CLI exit
// codes.
func loadROM(path string) []uint16 {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading rom: %v\n", err)
		os.Exit(2)
	}
	words, err := ParseROMImage(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "malformed rom: %v\n", err)
		os.Exit(2)
	}
	return words
}

func newRunCmd() *cobra.Command {
	var threads uint8
	var threadsPerBlock int
	var channels int
	var maxCycles uint64
	var dumpRAM bool
	var traceFile string

	cmd := &cobra.Command{
		Use:   "run <rom>",
		Short: "Load a ROM, run it to completion, and report the result",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			words := loadROM(args[0])

			cfg := DefaultGPUConfig()
			if threadsPerBlock > 0 {
				cfg.ThreadsPerBlock = threadsPerBlock
			}
			if channels > 0 {
				cfg.Channels = channels
			}

			g := NewGPU(words, cfg)

			if traceFile != "" {
				f, err := os.Create(traceFile)
				if err != nil {
					fmt.Fprintf(os.Stderr, "error creating trace file: %v\n", err)
					os.Exit(1)
				}
				defer f.Close()
				g.SetTracer(NewTracer(f))
			}

			g.Reset()
			g.SetThreadCount(threads)
			g.Start()

			limit := maxCycles
			if limit == 0 {
				limit = DefaultMaxCycles
			}

			for !g.Done() {
				if g.Cycles() >= limit {
					fmt.Fprintf(os.Stderr, "timeout: exceeded %d cycles without completion\n", limit)
					if g.tracer != nil {
						g.tracer.TraceFault("timeout", fmt.Sprintf("exceeded %d cycles", limit))
					}
					os.Exit(1)
				}
				g.Step()
			}

			fmt.Fprintf(os.Stderr, "done after %d cycles\n", g.Cycles())

			if dumpRAM {
				fmt.Print(g.DumpRAM())
			}
		},
	}

	cmd.Flags().Uint8Var(&threads, "threads", 1, "total thread count for the kernel invocation")
	cmd.Flags().IntVar(&threadsPerBlock, "threads-per-block", 0, "override the default threads-per-block (0 = default)")
	cmd.Flags().IntVar(&channels, "channels", 0, "override the default memory controller channel count (0 = default)")
	cmd.Flags().Uint64Var(&maxCycles, "max-cycles", 0, "cycle budget before reporting a timeout (0 = default)")
	cmd.Flags().BoolVar(&dumpRAM, "dump-ram", false, "print a hex dump of memory after completion")
	cmd.Flags().StringVar(&traceFile, "trace", "", "write a per-cycle execution trace to this file")

	return cmd
}

func newStepCmd() *cobra.Command {
	var threads uint8
	var threadsPerBlock int

	cmd := &cobra.Command{
		Use:   "step <rom>",
		Short: "Interactively single-step the simulator one cycle at a time",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			words := loadROM(args[0])

			cfg := DefaultGPUConfig()
			if threadsPerBlock > 0 {
				cfg.ThreadsPerBlock = threadsPerBlock
			}
			g := NewGPU(words, cfg)
			g.SetTracer(NewTracer(os.Stdout))
			g.Reset()
			g.SetThreadCount(threads)
			g.Start()

			runInteractiveStepper(g)
		},
	}

	cmd.Flags().Uint8Var(&threads, "threads", 1, "total thread count for the kernel invocation")
	cmd.Flags().IntVar(&threadsPerBlock, "threads-per-block", 0, "override the default threads-per-block (0 = default)")

	return cmd
}

func newDisasmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disasm <rom>",
		Short: "Print a disassembly listing for a ROM image",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			words := loadROM(args[0])
			for i, w := range words {
				fmt.Printf("%3d: 0x%04X  %s\n", i, w, disassemble(w))
			}
		},
	}
	return cmd
}

var savedTermState *term.State

// setupTerminal puts the terminal in raw mode, mirroring the teacher's
// setupTerminal/restoreTerminal trio: only raw-mode the terminal when
// stdin is actually a TTY.
func setupTerminal() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil
	}
	state, err := term.GetState(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to get terminal state: %v", err)
	}
	savedTermState = state

	_, err = term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %v", err)
	}
	return nil
}

// restoreTerminal restores the terminal to its original state.
func restoreTerminal() {
	if savedTermState != nil && term.IsTerminal(int(os.Stdin.Fd())) {
		term.Restore(int(os.Stdin.Fd()), savedTermState)
	}
}

// runInteractiveStepper drives the `step` subcommand's read-a-key loop:
// space steps one cycle, d dumps RAM, r runs to completion, q quits.
func runInteractiveStepper(g *GPU) {
	if err := setupTerminal(); err != nil {
		fmt.Fprintf(os.Stderr, "error setting up terminal: %v\n", err)
		os.Exit(1)
	}
	defer restoreTerminal()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		restoreTerminal()
		os.Exit(130)
	}()

	fmt.Fprintf(os.Stdout, "simgpu step: [space]=step [d]=dump [r]=run [q]=quit\r\n")

	reader := bufio.NewReader(os.Stdin)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return
		}
		switch b {
		case ' ':
			g.Step()
			fmt.Fprintf(os.Stdout, "cycle %d done=%v\r\n", g.Cycles(), g.Done())
		case 'd':
			fmt.Fprint(os.Stdout, g.DumpRAM())
		case 'r':
			for !g.Done() && g.Cycles() < DefaultMaxCycles {
				g.Step()
			}
			fmt.Fprintf(os.Stdout, "cycle %d done=%v\r\n", g.Cycles(), g.Done())
		case 'q':
			return
		}
	}
}
