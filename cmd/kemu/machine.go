package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thelolagemann/kemu/internal/boot"
	"github.com/thelolagemann/kemu/internal/cartridge"
	"github.com/thelolagemann/kemu/internal/config"
	"github.com/thelolagemann/kemu/internal/gameboy"
	"github.com/thelolagemann/kemu/pkg/emu"
	"github.com/thelolagemann/kemu/pkg/log"
	"github.com/thelolagemann/kemu/pkg/utils"
)

// machineFlags are the flags of every command that builds a GameBoy. A
// flag only overrides the configuration file when it is set.
type machineFlags struct {
	boot       string
	entry      string
	verbose    bool
	maxSteps   uint64
	memorySize int
	state      string
}

func (f *machineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.boot, "boot", "", "Boot rom placed at 0x0000, execution starts there")
	cmd.Flags().StringVar(&f.entry, "entry", "", "Initial program counter, e.g. 0x0150")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Trace every executed instruction")
	cmd.Flags().Uint64Var(&f.maxSteps, "max-steps", 0, "Stop after this many instructions (0 = no limit)")
	cmd.Flags().IntVar(&f.memorySize, "memory-size", 0, "Addressable memory in bytes (default 65536)")
	cmd.Flags().StringVar(&f.state, "state", "", "Save state to resume from")
}

// apply overrides cfg with the flags set on cmd, and takes the ROM from
// args when given.
func (f *machineFlags) apply(cmd *cobra.Command, args []string, cfg *config.Config) error {
	if len(args) > 0 {
		cfg.ROM = args[0]
	}
	changed := cmd.Flags().Changed
	if changed("boot") {
		cfg.Boot = f.boot
	}
	if changed("entry") {
		entry, err := config.ParseAddress(f.entry)
		if err != nil {
			return err
		}
		cfg.Entry = &entry
	}
	if changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if changed("max-steps") {
		cfg.MaxSteps = f.maxSteps
	}
	if changed("memory-size") {
		cfg.MemorySize = f.memorySize
	}
	if changed("state") {
		cfg.StateIn = f.state
	}

	if cfg.ROM == "" {
		return errors.New("no rom given")
	}
	return cfg.Validate()
}

// options turns the configuration into GameBoy options, loading the boot
// rom and save state it names.
func (a *app) options(serial io.Writer) ([]gameboy.Opt, error) {
	cfg := a.cfg
	if cfg.Verbose {
		// the trace is logged at debug level
		switch strings.ToLower(cfg.LogLevel) {
		case "trace", "debug":
		default:
			a.log = log.NewWithWriter(a.errOut, "debug")
		}
	}

	opts := []gameboy.Opt{
		gameboy.WithLogger(a.log),
		gameboy.WithMemorySize(cfg.MemorySize),
		gameboy.WithStepLimit(cfg.MaxSteps),
	}
	if cfg.Verbose {
		opts = append(opts, gameboy.Debug())
	}
	if cfg.Entry != nil {
		opts = append(opts, gameboy.WithEntryPoint(uint16(*cfg.Entry)))
	}
	if cfg.Serial && serial != nil {
		opts = append(opts, gameboy.SerialDebugger(serial))
	}

	if cfg.Boot != "" {
		raw, err := utils.LoadFile(cfg.Boot)
		if err != nil {
			return nil, fmt.Errorf("loading boot rom: %w", err)
		}
		rom, err := boot.LoadBootROM(raw)
		if err != nil {
			return nil, err
		}
		if !rom.Known() {
			a.log.Warnf("boot rom %s does not match a known dump", rom.Checksum())
		}
		opts = append(opts, gameboy.WithBootROM(rom))
	}

	if cfg.StateIn != "" {
		raw, err := os.ReadFile(cfg.StateIn)
		if err != nil {
			return nil, fmt.Errorf("loading save state: %w", err)
		}
		opts = append(opts, gameboy.WithState(raw))
	}

	return opts, nil
}

// newGameBoy loads the configured ROM and builds a GameBoy for it.
func (a *app) newGameBoy(serial io.Writer, extra ...gameboy.Opt) (*gameboy.GameBoy, error) {
	rom, err := utils.LoadFile(a.cfg.ROM)
	if err != nil {
		return nil, fmt.Errorf("loading rom: %w", err)
	}
	opts, err := a.options(serial)
	if err != nil {
		return nil, err
	}
	if a.resume && a.cfg.StateIn == "" {
		opt, err := a.latestState(rom)
		if err != nil {
			return nil, err
		}
		if opt != nil {
			opts = append(opts, opt)
		}
	}
	return gameboy.NewGameBoy(rom, append(opts, extra...)...)
}

// latestState returns an option restoring the newest save state of rom
// in the save folder, or nil if it was never saved.
func (a *app) latestState(rom []byte) (gameboy.Opt, error) {
	if a.cfg.SaveDir == "" {
		return nil, errors.New("--resume needs a save folder")
	}
	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, err
	}

	state, save, err := emu.NewStore(a.cfg.SaveDir).Latest(cart.Hash())
	switch {
	case errors.Is(err, emu.ErrNoSaves):
		a.log.Infof("no save states for %016x, starting from the entry point", cart.Hash())
		return nil, nil
	case err != nil:
		return nil, err
	}
	a.log.Infof("resuming from %s", save.Path)
	return gameboy.WithState(state), nil
}
