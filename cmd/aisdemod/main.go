// Command aisdemod runs the AIS burst demodulator core against recorded
// PCM captures, either a single file or a watched hot folder, and logs
// validated frames to a rotating hex dump.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aisdemod/internal/app"
)

func main() {
	var config app.Config
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "aisdemod",
		Short: "AIS burst demodulator",
		Long: `AIS burst demodulator core, driven from recorded PCM captures.

Consumes signed 16-bit PCM discriminator output from a WAV or FLAC capture
(left channel = 161.975 MHz "87B", right channel = 162.025 MHz "88B"),
demodulates the AIS HDLC bursts, validates CRC, and logs validated frames
as hex dumps to a rotating log file.

Example usage:
  aisdemod --capture recording.wav --log-dir ./logs
  aisdemod --watch-dir ./incoming --log-dir ./logs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.ShowVersion {
				app.ShowVersion()
				return nil
			}

			if configPath != "" {
				merged, err := app.LoadConfigFile(configPath, config)
				if err != nil {
					return err
				}
				config = merged
			}

			application := app.NewApplication(config)
			return application.Start()
		},
	}

	rootCmd.Flags().StringVarP(&config.Capture, "capture", "c", "", "Path to a WAV/FLAC capture file to demodulate")
	rootCmd.Flags().StringVarP(&config.WatchDir, "watch-dir", "w", "", "Directory to watch for new capture files")
	rootCmd.Flags().StringVarP(&config.LogDir, "log-dir", "l", app.DefaultLogDir, "Directory for rotating frame/application logs")
	rootCmd.Flags().BoolVarP(&config.LogRotateUTC, "utc", "u", true, "Use UTC for log rotation")
	rootCmd.Flags().IntVar(&config.StatsInterval, "stats-interval", app.DefaultStatsInterval, "Seconds between statistics reports")
	rootCmd.Flags().BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.Flags().BoolVar(&config.ShowVersion, "version", false, "Show version information")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Optional YAML config file, merged under flags")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
