package app

import "fmt"

// Version information, set by build flags.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// ShowVersion prints version information to stdout.
func ShowVersion() {
	fmt.Printf("aisdemod AIS burst demodulator\n")
	fmt.Printf("Version: %s\n", Version)
	fmt.Printf("Build Time: %s\n", BuildTime)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
