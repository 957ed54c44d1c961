package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fwojciec/blocks"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = ".blocks.yaml"

type options struct {
	configPath string
	prefix     string
	format     string
	width      int
	sanitize   bool
	jsonPath   string
	from       string
	preview    bool
	redisAddr  string
	cacheTTL   time.Duration
	verbose    bool
	inputs     []string

	// set records the flags given on the command line.
	set map[string]bool
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("blocks", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.configPath, "config", defaultConfigPath, "Path to YAML config file")
	fs.StringVar(&opts.prefix, "prefix", blocks.DefaultPrefix, "Component name prefix")
	fs.StringVar(&opts.format, "format", string(blocks.FormatHTML), "Output format: html, ansi, markdown")
	fs.IntVar(&opts.width, "width", 80, "Wrap width for ansi output")
	fs.BoolVar(&opts.sanitize, "sanitize", false, "Sanitize html output")
	fs.StringVar(&opts.jsonPath, "path", "", "gjson path to the block array inside a JSON envelope")
	fs.StringVar(&opts.from, "from", "", "Input format: json, markdown (default: by file extension)")
	fs.BoolVar(&opts.preview, "preview", false, "Open the rendered documents in a terminal pager")
	fs.StringVar(&opts.redisAddr, "redis", "", "Redis address for caching rendered output")
	fs.DurationVar(&opts.cacheTTL, "cache-ttl", 0, "Expiration for cached output")
	fs.BoolVar(&opts.verbose, "v", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	switch opts.from {
	case "", sourceJSON, sourceMarkdown:
	default:
		return options{}, fmt.Errorf("unknown input format %q: must be %q or %q", opts.from, sourceJSON, sourceMarkdown)
	}

	opts.inputs = fs.Args()
	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// resolveConfig layers defaults, the config file, the environment and
// explicitly set flags, in that order.
func resolveConfig(opts options, envPrefix string) (blocks.Config, error) {
	cfg := blocks.DefaultConfig()

	// Tolerate a missing default config file; fail on all other errors.
	data, err := os.ReadFile(opts.configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return blocks.Config{}, fmt.Errorf("parse config %s: %w: %w", opts.configPath, blocks.ErrInvalidConfig, err)
		}
	case errors.Is(err, os.ErrNotExist) && !opts.set["config"]:
	default:
		return blocks.Config{}, fmt.Errorf("read config: %w", err)
	}

	if envPrefix != "" {
		cfg.Prefix = envPrefix
	}

	if opts.set["prefix"] {
		cfg.Prefix = opts.prefix
	}
	if opts.set["format"] {
		cfg.Format = blocks.Format(opts.format)
	}
	if opts.set["width"] {
		cfg.Width = opts.width
	}
	if opts.set["sanitize"] {
		cfg.Sanitize = opts.sanitize
	}

	if err := cfg.Validate(); err != nil {
		return blocks.Config{}, err
	}
	return cfg, nil
}
