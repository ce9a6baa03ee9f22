package config

import "flag"

var (
	flagConfig  string
	flagDebug   bool
	flagAssets  string
	flagBrush   float64
	flagDensity int
	flagSeed    uint64
)

// RegisterFlags adds the config override flags to fs.
func RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&flagConfig, "config", "", "Path to config file")
	fs.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	fs.StringVar(&flagAssets, "assets", "", "Directory that holds the Assets/ tree")
	fs.Float64Var(&flagBrush, "brush", 0, "Brush radius")
	fs.IntVar(&flagDensity, "density", 0, "Cells per stroke (1-7)")
	fs.Uint64Var(&flagSeed, "seed", 0, "Random seed")
}

// ParseFlags registers and parses the global command-line flags. Call this
// early in main().
func ParseFlags() {
	RegisterFlags(flag.CommandLine)
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if flagDebug {
		cfg.Logging.Level = "debug"
	}
	if flagAssets != "" {
		cfg.Data.AssetsRoot = flagAssets
	}
	if flagBrush > 0 {
		cfg.Brush.BrushSize = float32(flagBrush)
	}
	if flagDensity > 0 {
		cfg.Brush.Density = flagDensity
	}
	if flagSeed != 0 {
		cfg.Data.Seed = flagSeed
	}
}
