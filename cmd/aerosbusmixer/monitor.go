//go:build linux

package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/AndreyRakhmanov/AeroSBUSMixer/calib"
	"github.com/AndreyRakhmanov/AeroSBUSMixer/driver/linux"
	"github.com/AndreyRakhmanov/AeroSBUSMixer/mix"
	"github.com/AndreyRakhmanov/AeroSBUSMixer/sbus"
)

var channelNames = [sbus.NumChannels]string{"rudder", "throttle", "aileron", "elevator"}

func monitorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Live view of decoded channels and computed outputs",
		Long: `monitor decodes the SBUS stream without driving any output line,
showing raw channel values, their normalized form against the stored
calibration, and the pulse widths the mixer would emit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			port, err := linux.OpenPort(flagDevice)
			if err != nil {
				return fmt.Errorf("open %s: %w", flagDevice, err)
			}
			defer port.Close()

			store, err := linux.OpenStore(flagStore)
			if err != nil {
				return fmt.Errorf("open store %s: %w", flagStore, err)
			}
			ranges := calib.Load(store)

			sync := sbus.NewSynchronizer(port, linux.NewClock())
			area, err := pterm.DefaultArea.Start()
			if err != nil {
				return err
			}
			defer area.Stop()

			for {
				frame, _, ok := sync.Next()
				if !ok {
					continue
				}
				area.Update(renderFrame(&frame, ranges))
			}
		},
	}
}

func renderFrame(frame *sbus.Frame, ranges calib.Ranges) string {
	channels := frame.Channels()
	out := mix.Mix(channels, ranges)

	rows := pterm.TableData{{"channel", "raw", "range", "normalized"}}
	for ch, name := range channelNames {
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%d", channels[ch]),
			fmt.Sprintf("%d..%d", ranges[ch].Min, ranges[ch].Max),
			fmt.Sprintf("%.3f", ranges[ch].Normalize(channels[ch])),
		})
	}
	table, _ := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()

	return fmt.Sprintf("%s\nfailsafe: %v\nthrottle %d / %d µs   elevon %d / %d µs\n",
		table, frame.Failsafe(),
		out.Throttle1, out.Throttle2, out.Elevon1, out.Elevon2)
}
