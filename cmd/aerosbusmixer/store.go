//go:build linux

package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/AndreyRakhmanov/AeroSBUSMixer/calib"
	"github.com/AndreyRakhmanov/AeroSBUSMixer/driver/linux"
)

func storeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect or reset the calibration store",
	}
	cmd.AddCommand(storeDumpCmd(), storeFormatCmd())
	return cmd
}

func storeDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the persisted calibration ranges",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := linux.OpenStore(flagStore)
			if err != nil {
				return fmt.Errorf("open store %s: %w", flagStore, err)
			}
			ranges := calib.Load(store)

			rows := pterm.TableData{{"channel", "min", "max", "span"}}
			for ch, name := range channelNames {
				rows = append(rows, []string{
					name,
					fmt.Sprintf("%d", ranges[ch].Min),
					fmt.Sprintf("%d", ranges[ch].Max),
					fmt.Sprintf("%d", ranges[ch].Span()),
				})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
		},
	}
}

func storeFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format",
		Short: "Reset the store to factory defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := linux.OpenStore(flagStore)
			if err != nil {
				return fmt.Errorf("open store %s: %w", flagStore, err)
			}
			calib.Format(store)
			pterm.Success.Printfln("calibration store %s reset to defaults", flagStore)
			return nil
		},
	}
}
