//go:build linux

package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/AndreyRakhmanov/AeroSBUSMixer/driver/linux"
	"github.com/AndreyRakhmanov/AeroSBUSMixer/fc"
	"github.com/AndreyRakhmanov/AeroSBUSMixer/sched"
)

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the control loop",
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

			pins, cleanup, err := requestPins()
			if err != nil {
				return err
			}
			defer cleanup()

			status, err := linux.RequestOutput(flagChip, flagStatus)
			if err != nil {
				return err
			}
			defer status.Close()

			failsafe, err := linux.RequestOutput(flagChip, flagFailsafe)
			if err != nil {
				return err
			}
			defer failsafe.Close()

			button, err := linux.RequestButton(flagChip, flagButton)
			if err != nil {
				return err
			}
			defer button.Close()

			pterm.Info.Printfln("SBUS input on %s, outputs on %s", flagDevice, flagChip)
			pterm.Info.Println("Hold the calibration button now to reset stored ranges.")

			ctl := fc.New(fc.Config{
				Source:      port,
				Clock:       linux.NewClock(),
				Store:       store,
				Pins:        pins,
				Trigger:     button,
				Status:      status,
				FailsafeOut: failsafe,
			})
			ctl.Run()
			return nil
		},
	}
}

func requestPins() (sched.Pins, func(), error) {
	var pins sched.Pins
	var opened []*linux.OutLine

	cleanup := func() {
		for _, l := range opened {
			l.Close()
		}
	}

	request := func(offset int) (*linux.OutLine, error) {
		l, err := linux.RequestOutput(flagChip, offset)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("request line %d on %s: %w", offset, flagChip, err)
		}
		opened = append(opened, l)
		return l, nil
	}

	var err error
	if pins.Throttle1, err = request(flagThrottle1); err != nil {
		return pins, nil, err
	}
	if pins.Throttle2, err = request(flagThrottle2); err != nil {
		return pins, nil, err
	}
	if pins.Elevon1, err = request(flagElevon1); err != nil {
		return pins, nil, err
	}
	if pins.Elevon2, err = request(flagElevon2); err != nil {
		return pins, nil, err
	}
	return pins, cleanup, nil
}
