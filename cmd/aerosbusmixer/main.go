//go:build linux

package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	flagDevice string
	flagChip   string
	flagStore  string

	flagThrottle1 int
	flagThrottle2 int
	flagElevon1   int
	flagElevon2   int
	flagStatus    int
	flagFailsafe  int
	flagButton    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "aerosbusmixer",
		Short: "SBUS differential-thrust mixer for twin-motor flying wings",
		Long: `AeroSBUSMixer reads SBUS frames from a serial receiver, mixes four
channels into differential motor throttle and elevon commands, and emits
timed pulses on GPIO lines. Calibration of the transmitter's channel
ranges is driven by a physical button and persisted across restarts.`,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagDevice, "device", "/dev/ttyAMA0", "SBUS serial device")
	pf.StringVar(&flagChip, "chip", "gpiochip0", "GPIO character device")
	pf.StringVar(&flagStore, "store", "/var/lib/aerosbusmixer/calibration.bin", "calibration store file")
	pf.IntVar(&flagThrottle1, "throttle1", 17, "left motor output line")
	pf.IntVar(&flagThrottle2, "throttle2", 27, "right motor output line")
	pf.IntVar(&flagElevon1, "elevon1", 22, "left elevon output line")
	pf.IntVar(&flagElevon2, "elevon2", 23, "right elevon output line")
	pf.IntVar(&flagStatus, "status", 24, "status indicator line")
	pf.IntVar(&flagFailsafe, "failsafe", 25, "failsafe passthrough line")
	pf.IntVar(&flagButton, "button", 26, "calibration trigger line")

	rootCmd.AddCommand(runCmd(), monitorCmd(), storeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
