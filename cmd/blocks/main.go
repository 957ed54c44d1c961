// Command blocks renders CMS rich-text documents.
//
// Usage:
//
//	blocks [flags] [file|glob|-]...
//
// Inputs are JSON block arrays or Markdown files. Globs may use ** to match
// across directories. With no inputs, or with "-", the document is read from
// stdin.
//
// Flags:
//
//	-config string    Path to YAML config file (default: .blocks.yaml)
//	-prefix string    Component name prefix (env BLOCKS_PREFIX)
//	-format string    Output format: html, ansi, markdown
//	-width int        Wrap width for ansi output
//	-sanitize         Sanitize html output
//	-path string      gjson path to the block array inside a JSON envelope
//	-from string      Input format: json, markdown (default: by file extension)
//	-preview          Open the rendered documents in a terminal pager
//	-redis string     Redis address for caching rendered output
//	-cache-ttl dur    Expiration for cached output (default: no expiration)
//	-v                Enable debug logging
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/blocks"
	bt "github.com/fwojciec/blocks/bubbletea"
	"github.com/fwojciec/blocks/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Getenv("BLOCKS_PREFIX"), os.Stdin, os.Stdout, os.Stderr)
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(os.Stderr, "blocks: %v\n", err)
		os.Exit(1)
	}
}

// run executes the command. Environment values are passed in as parameters;
// env is only read in main().
func run(ctx context.Context, args []string, envPrefix string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := newLogger(stderr, level)

	cfg, err := resolveConfig(opts, envPrefix)
	if err != nil {
		return err
	}
	logger.Debug("config resolved", "prefix", cfg.Prefix, "format", cfg.Format, "width", cfg.Width)

	inputs, err := expandInputs(opts.inputs)
	if err != nil {
		return err
	}

	if opts.preview {
		return preview(ctx, inputs, opts, cfg, stdin, logger)
	}

	r, err := newRenderer(cfg, logger)
	if err != nil {
		return err
	}
	if opts.redisAddr != "" {
		c := redis.New(opts.redisAddr, redis.WithTTL(opts.cacheTTL))
		defer c.Close()
		if err := c.Ping(ctx); err != nil {
			logger.Warn("cache unavailable, rendering without it", "addr", opts.redisAddr, "error", err)
		} else {
			r.cache = c
		}
	}

	for _, input := range inputs {
		doc, err := load(input, opts.from, opts.jsonPath, stdin)
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
		logger.Debug("document loaded", "input", input, "blocks", len(doc))
		out, err := r.render(ctx, doc)
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		if _, err := io.WriteString(stdout, out); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

// preview renders every input into one document and opens it in the pager.
func preview(ctx context.Context, inputs []string, opts options, cfg blocks.Config, stdin io.Reader, logger *slog.Logger) error {
	var doc []blocks.Block
	for _, input := range inputs {
		d, err := load(input, opts.from, opts.jsonPath, stdin)
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
		doc = append(doc, d...)
	}

	cfg.Format = blocks.FormatANSI
	r, err := newRenderer(cfg, logger)
	if err != nil {
		return err
	}
	render := func(width int) (string, error) {
		r.cfg.Width = width
		return r.render(ctx, doc)
	}

	if err := bt.Run(ctx, bt.New(render, title(inputs), cfg.Theme), pagerOptions(inputs)...); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}

// pagerOptions returns the program options for previewing inputs. When the
// document came from stdin, keys are read from the terminal instead.
func pagerOptions(inputs []string) []tea.ProgramOption {
	if slices.Contains(inputs, stdinName) {
		return []tea.ProgramOption{tea.WithInputTTY()}
	}
	return nil
}

func title(inputs []string) string {
	switch {
	case len(inputs) == 1 && inputs[0] == stdinName:
		return "stdin"
	case len(inputs) == 1:
		return filepath.Base(inputs[0])
	default:
		return fmt.Sprintf("%d documents", len(inputs))
	}
}

// newLogger writes text logs to w, standardising the "error" key to "err".
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}
