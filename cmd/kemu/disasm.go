package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thelolagemann/kemu/internal/config"
	"github.com/thelolagemann/kemu/internal/cpu"
)

func (a *app) disasmCmd() *cobra.Command {
	var (
		flags machineFlags
		start string
		count int
	)

	cmd := &cobra.Command{
		Use:   "disasm [rom]",
		Short: "Disassemble a program as it is placed in memory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd, args, a.cfg); err != nil {
				return usage(err)
			}
			if count < 0 {
				return usage(fmt.Errorf("invalid count %d", count))
			}
			g, err := a.newGameBoy(nil)
			if err != nil {
				return usage(err)
			}

			pc := g.Entry()
			if start != "" {
				addr, err := config.ParseAddress(start)
				if err != nil {
					return usage(err)
				}
				pc = uint16(addr)
			}

			entries, err := cpu.Disassemble(g.MMU, pc, count)
			for _, e := range entries {
				fmt.Fprintln(cmd.OutOrStdout(), e.Listing())
			}
			if err != nil {
				// running off the end of memory is not an error worth failing on
				a.log.Warnf("%v", err)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&start, "start", "", "Address to start at (default: entry point)")
	cmd.Flags().IntVarP(&count, "count", "n", 32, "Number of instructions")
	return cmd
}
