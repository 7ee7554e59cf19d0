// Package config resolves the receiver's settings from, in increasing
// precedence, built-in defaults, an optional YAML file, MDR_-prefixed
// environment variables (optionally loaded from a .env file), and command
// line flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every setting the receiver needs to start.
type Config struct {
	Multicast   string   `yaml:"multicast"`
	Port        int      `yaml:"port"`
	Interface   string   `yaml:"interface"`
	DurationSec int      `yaml:"duration_sec"`
	Symbols     []uint32 `yaml:"symbols"`
	LogFile     string   `yaml:"log_file"`
	Debug       bool     `yaml:"debug"`
}

// Defaults returns the built-in configuration used when nothing else
// overrides it.
func Defaults() Config {
	return Config{
		Multicast:   "239.255.0.1",
		Port:        5000,
		DurationSec: 0,
		Symbols:     nil,
	}
}

// Load resolves a Config from command line arguments (excluding argv[0]),
// applying, from lowest to highest precedence: built-in defaults, an
// optional YAML file (found via --config or MDR_CONFIG), MDR_-prefixed
// environment variables (loading a .env file first if present, which is
// purely additive and never required), and explicit command line flags.
func Load(args []string) (Config, error) {
	cfg := Defaults()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		// A malformed .env is worth surfacing; a missing one is not.
		fmt.Fprintf(os.Stderr, "config: .env: %v\n", err)
	}

	configPath := os.Getenv("MDR_CONFIG")
	configPath = firstFlagValue(args, "config", configPath)

	if configPath != "" {
		if err := mergeYAMLFile(&cfg, configPath); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	applyEnv(&cfg)

	if err := applyFlags(&cfg, args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate rejects a Config that cannot be used to start the pipeline.
func (c Config) Validate() error {
	if c.Multicast == "" {
		return fmt.Errorf("multicast address must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.DurationSec < 0 {
		return fmt.Errorf("duration must not be negative")
	}
	return nil
}

func mergeYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MDR_MULTICAST"); v != "" {
		cfg.Multicast = v
	}
	if v := os.Getenv("MDR_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("MDR_INTERFACE"); v != "" {
		cfg.Interface = v
	}
	if v := os.Getenv("MDR_DURATION"); v != "" {
		if d, err := strconv.Atoi(v); err == nil {
			cfg.DurationSec = d
		}
	}
	if v := os.Getenv("MDR_SYMBOLS"); v != "" {
		if symbols, err := parseSymbols(v); err == nil {
			cfg.Symbols = symbols
		}
	}
	if v := os.Getenv("MDR_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("MDR_DEBUG"); v != "" {
		cfg.Debug = v == "1" || strings.EqualFold(v, "true")
	}
}

func applyFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("mdreceiver", flag.ContinueOnError)

	multicast := fs.String("multicast", cfg.Multicast, "multicast group address to join")
	port := fs.Int("port", cfg.Port, "UDP port to listen on")
	iface := fs.String("interface", cfg.Interface, "network interface for multicast join (default: kernel choice)")
	duration := fs.Int("duration", cfg.DurationSec, "seconds to run before shutting down (0 = run until signaled)")
	symbols := fs.String("symbols", joinSymbols(cfg.Symbols), "comma-separated watch list of symbol ids (logged at startup; messages are not filtered by symbol)")
	logFile := fs.String("log-file", cfg.LogFile, "path to a rotated log file (default: stderr only)")
	debug := fs.Bool("debug", cfg.Debug, "enable debug-level logging")
	_ = fs.String("config", "", "path to an optional YAML config file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.Multicast = *multicast
	cfg.Port = *port
	cfg.Interface = *iface
	cfg.DurationSec = *duration
	cfg.LogFile = *logFile
	cfg.Debug = *debug

	if *symbols != "" {
		parsed, err := parseSymbols(*symbols)
		if err != nil {
			return fmt.Errorf("invalid --symbols: %w", err)
		}
		cfg.Symbols = parsed
	}

	return nil
}

func parseSymbols(csv string) ([]uint32, error) {
	parts := strings.Split(csv, ",")
	out := make([]uint32, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("symbol id %q: %w", p, err)
		}
		out = append(out, uint32(v))
	}
	return out, nil
}

func joinSymbols(symbols []uint32) string {
	parts := make([]string, len(symbols))
	for i, s := range symbols {
		parts[i] = strconv.FormatUint(uint64(s), 10)
	}
	return strings.Join(parts, ",")
}

// firstFlagValue scans args for --name=value or --name value without fully
// parsing the flag set, so the config file path can be known before the
// rest of the flags (whose defaults depend on the file) are declared.
func firstFlagValue(args []string, name, fallback string) string {
	prefix := "--" + name + "="
	shortPrefix := "-" + name + "="
	for i, a := range args {
		if strings.HasPrefix(a, prefix) {
			return strings.TrimPrefix(a, prefix)
		}
		if strings.HasPrefix(a, shortPrefix) {
			return strings.TrimPrefix(a, shortPrefix)
		}
		if (a == "--"+name || a == "-"+name) && i+1 < len(args) {
			return args[i+1]
		}
	}
	return fallback
}
