package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"droneid/internal/app"
)

func main() {
	rootCmd := newRootCmd(func(config app.Config) error {
		application := app.NewApplication(config)
		return application.Start()
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command line; run receives the final configuration
func newRootCmd(run func(app.Config) error) *cobra.Command {
	config := app.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "droneid",
		Short: "Remote ID decoder (ASTM F3411 / OpenDroneID)",
		Long: `Remote ID decoder for ASTM F3411 / OpenDroneID broadcasts.

Finds the FA0BBC0D message pack marker in captured bytes, splits the pack
into 25-byte messages and decodes Basic ID, Location, Self ID, System and
Operator ID records. Captures come from hex text (one per line), raw binary,
pcap files of Wi-Fi beacons, or a continuous byte stream cut into packs
at each marker. Serial receivers may print hex lines or raw packs.

Example usage:
  droneid --input beacons.pcap --format pcap --layout beacon
  droneid --serial /dev/ttyUSB0 --baud 115200 --output json
  droneid --serial /dev/ttyACM0 --format stream --layout beacon
  echo 0212544553... | droneid --direct`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.ShowVersion {
				app.ShowVersion()
				return nil
			}

			final := config
			if config.ConfigFile != "" {
				fileConfig, err := app.LoadConfig(config.ConfigFile)
				if err != nil {
					return err
				}
				final = app.MergeConfig(fileConfig, config, cmd.Flags().Changed)
			}

			return run(final)
		},
	}

	rootCmd.Flags().StringVarP(&config.Input, app.FlagInput, "i", "", "Input file (default stdin)")
	rootCmd.Flags().StringVarP(&config.InputFormat, app.FlagFormat, "f", app.DefaultInputFormat, "Input format: hex, binary, pcap or stream")
	rootCmd.Flags().StringVar(&config.SerialDevice, app.FlagSerial, "", "Serial device printing hex captures (e.g. /dev/ttyUSB0)")
	rootCmd.Flags().IntVar(&config.BaudRate, app.FlagBaud, app.DefaultBaudRate, "Serial baud rate")
	rootCmd.Flags().StringVar(&config.Layout, app.FlagLayout, app.DefaultLayout, "Message pack layout: default or beacon")
	rootCmd.Flags().BoolVar(&config.Direct, app.FlagDirect, false, "Decode input as back-to-back 25-byte messages without a marker")
	rootCmd.Flags().StringVarP(&config.Output, app.FlagOutput, "o", app.DefaultOutputFormat, "Output format: text or json")
	rootCmd.Flags().StringVarP(&config.ConfigFile, "config", "c", "", "TOML config file")
	rootCmd.Flags().BoolVarP(&config.Verbose, app.FlagVerbose, "v", false, "Verbose logging")
	rootCmd.Flags().BoolVar(&config.ShowVersion, "version", false, "Show version information")

	return rootCmd
}
