package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/thelolagemann/kemu/internal/boot"
	"github.com/thelolagemann/kemu/internal/cartridge"
	"github.com/thelolagemann/kemu/pkg/utils"
)

func (a *app) infoCmd() *cobra.Command {
	var bootPath string

	cmd := &cobra.Command{
		Use:   "info [rom]",
		Short: "Describe a rom and check its header",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				a.cfg.ROM = args[0]
			}
			if cmd.Flags().Changed("boot") {
				a.cfg.Boot = bootPath
			}
			if a.cfg.ROM == "" {
				return usage(errors.New("no rom given"))
			}

			raw, err := utils.LoadFile(a.cfg.ROM)
			if err != nil {
				return usage(err)
			}
			cart, err := cartridge.New(raw)
			if err != nil {
				return usage(err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 1, ' ', 0)
			fmt.Fprintf(w, "file:\t%s\n", a.cfg.ROM)
			fmt.Fprintf(w, "size:\t%d bytes\n", cart.Len())
			fmt.Fprintf(w, "xxhash:\t%016x\n", cart.Hash())
			if h := cart.Header(); h != nil {
				fmt.Fprintf(w, "title:\t%s\n", h.Title)
				fmt.Fprintf(w, "hardware:\t%s\n", h.Hardware())
				fmt.Fprintf(w, "type:\t%s\n", h.CartridgeType)
				fmt.Fprintf(w, "rom size:\t%dkB\n", h.ROMSize/1024)
				fmt.Fprintf(w, "ram size:\t%dkB\n", h.RAMSize/1024)
				fmt.Fprintf(w, "header checksum:\t0x%02X\n", h.HeaderChecksum)
				fmt.Fprintf(w, "global checksum:\t0x%04X\n", h.GlobalChecksum)
			}

			if a.cfg.Boot != "" {
				raw, err := utils.LoadFile(a.cfg.Boot)
				if err != nil {
					return usage(err)
				}
				rom, err := boot.LoadBootROM(raw)
				if err != nil {
					return usage(err)
				}
				fmt.Fprintf(w, "boot rom:\t%s (md5 %s)\n", rom.Model(), rom.Checksum())
			}
			if err := w.Flush(); err != nil {
				return err
			}

			// header problems are reported, but never stop a rom from running
			var problems *multierror.Error
			if err := cart.Validate(); errors.As(err, &problems) {
				for _, p := range problems.Errors {
					a.log.Warnf("%v", p)
				}
			} else if err != nil {
				a.log.Warnf("%v", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&bootPath, "boot", "", "Boot rom to identify")
	return cmd
}
