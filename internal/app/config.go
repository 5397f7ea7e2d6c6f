package app

// Default configuration constants.
const (
	// DefaultLogDir is where frame sink logs and application logs land.
	DefaultLogDir = "./logs"
	// DefaultStatsInterval mirrors the teacher's 30s statistics cadence.
	DefaultStatsInterval = 30
)

// Channel names the two standard AIS VHF channels this application
// demodulates. The tag is opaque to the core and travels unmodified onto
// every delivered Frame and sink log line.
const (
	ChannelA = "87B" // 161.975 MHz
	ChannelB = "88B" // 162.025 MHz
)

// Config holds application configuration, populated from CLI flags and
// optionally merged with a YAML config file.
type Config struct {
	Capture       string `yaml:"capture"`
	WatchDir      string `yaml:"watch_dir"`
	LogDir        string `yaml:"log_dir"`
	LogRotateUTC  bool   `yaml:"log_rotate_utc"`
	StatsInterval int    `yaml:"stats_interval_seconds"`
	Verbose       bool   `yaml:"verbose"`
	ShowVersion   bool   `yaml:"-"`
}

// DefaultConfig returns the configuration used when no flags or config file
// override it.
func DefaultConfig() Config {
	return Config{
		LogDir:        DefaultLogDir,
		LogRotateUTC:  true,
		StatsInterval: DefaultStatsInterval,
	}
}

// mergeFrom fills unset fields of c from other, the gap-filling half of
// merging a YAML config file under flag values (see LoadConfigFile). A
// string or interval counts as unset when it is empty, zero, or still at its
// default; the booleans are only ever switched on by other, never off.
func (c *Config) mergeFrom(other Config) {
	if c.Capture == "" {
		c.Capture = other.Capture
	}
	if c.WatchDir == "" {
		c.WatchDir = other.WatchDir
	}
	if (c.LogDir == "" || c.LogDir == DefaultLogDir) && other.LogDir != "" {
		c.LogDir = other.LogDir
	}
	if (c.StatsInterval == 0 || c.StatsInterval == DefaultStatsInterval) && other.StatsInterval != 0 {
		c.StatsInterval = other.StatsInterval
	}
	if other.Verbose {
		c.Verbose = true
	}
	if other.LogRotateUTC {
		c.LogRotateUTC = true
	}
}
