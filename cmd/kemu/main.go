// Command kemu runs, disassembles and profiles programs for the Game Boy
// CPU against a flat 64kB memory.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/thelolagemann/kemu/internal/config"
	"github.com/thelolagemann/kemu/internal/cpu"
	"github.com/thelolagemann/kemu/internal/gameboy"
	"github.com/thelolagemann/kemu/pkg/log"
)

// exit codes
const (
	exitOK = iota
	exitFault
	exitUsage
	exitStepLimit
)

// exitError carries the exit code of errors that are not classified by
// their type, such as a ROM that cannot be loaded.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usage(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitUsage, err: err}
}

// exitCode maps the error returned by a command to the exit code of the
// process. Errors that are not recognised are treated as usage errors, as
// that is what cobra returns for bad flags and arguments.
func exitCode(err error) int {
	var (
		exit    *exitError
		illegal *cpu.IllegalOpcodeError
		bus     *cpu.BusError
	)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return exitOK
	case errors.As(err, &exit):
		return exit.code
	case errors.Is(err, gameboy.ErrStepLimit):
		return exitStepLimit
	case errors.As(err, &illegal), errors.As(err, &bus):
		return exitFault
	}
	return exitUsage
}

// app holds the state shared by every command.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	log    log.Logger
	errOut io.Writer

	// resume restores the newest save state in the save folder
	resume bool
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "kemu",
		Short:         "Game Boy CPU emulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return usage(a.load(cmd))
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	root.AddCommand(a.runCmd(), a.disasmCmd(), a.infoCmd(), a.profileCmd())
	return root
}

// load reads the configuration file, if any, and builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	a.cfg = config.Default()
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if cmd.Flags().Changed("log-level") {
		a.cfg.LogLevel = a.logLevel
		if err := a.cfg.Validate(); err != nil {
			return err
		}
	}
	a.errOut = cmd.ErrOrStderr()
	a.log = log.NewWithWriter(a.errOut, a.cfg.LogLevel)
	return nil
}

func main() {
	err := newRootCmd(&app{}).Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "kemu:", err)
	}
	os.Exit(exitCode(err))
}
