package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/blocks"
	"github.com/fwojciec/blocks/ansi"
	"github.com/fwojciec/blocks/html"
	blocksjson "github.com/fwojciec/blocks/json"
	"github.com/fwojciec/blocks/markdown"
	"github.com/fwojciec/blocks/redis"
)

// renderer renders documents with the component set selected by the config.
// The registry is resolved once and reused for every document.
type renderer struct {
	cfg      blocks.Config
	registry *blocks.Registry
	cache    blocks.Cache
	logger   *slog.Logger
}

func newRenderer(cfg blocks.Config, logger *slog.Logger) (*renderer, error) {
	var (
		reg *blocks.Registry
		err error
	)
	switch cfg.Format {
	case blocks.FormatHTML:
		reg, err = html.NewRegistry(cfg.Prefix)
	case blocks.FormatANSI:
		reg, err = ansi.NewRegistry(cfg.Prefix)
	case blocks.FormatMarkdown:
		reg, err = markdown.NewRegistry(cfg.Prefix)
	default:
		return nil, fmt.Errorf("unknown format %q: %w", cfg.Format, blocks.ErrInvalidConfig)
	}
	if err != nil {
		return nil, err
	}
	return &renderer{cfg: cfg, registry: reg, logger: logger}, nil
}

// render returns the document in the configured format, consulting the cache
// when one is set. Cache failures are logged and otherwise ignored.
func (r *renderer) render(ctx context.Context, doc []blocks.Block) (string, error) {
	if r.cache == nil {
		return r.mount(doc)
	}

	key, err := r.key(doc)
	if err != nil {
		return "", err
	}
	if cached, ok, err := r.cache.Get(ctx, key); err != nil {
		r.logger.Warn("cache get failed", "key", key, "error", err)
	} else if ok {
		r.logger.Debug("cache hit", "key", key)
		return string(cached), nil
	}
	r.logger.Debug("cache miss", "key", key)

	out, err := r.mount(doc)
	if err != nil {
		return "", err
	}
	if err := r.cache.Set(ctx, key, []byte(out)); err != nil {
		r.logger.Warn("cache set failed", "key", key, "error", err)
	}
	return out, nil
}

func (r *renderer) mount(doc []blocks.Block) (string, error) {
	outputs := blocks.RenderBlocks(r.registry, doc)
	if n := countIgnored(outputs); n > 0 {
		r.logger.Debug("ignored unrecognized nodes", "count", n)
	}

	switch r.cfg.Format {
	case blocks.FormatANSI:
		return ansi.Render(outputs, r.cfg.Width, r.cfg.Theme)
	case blocks.FormatMarkdown:
		return markdown.Render(outputs)
	default:
		out, err := html.RenderString(outputs)
		if err != nil {
			return "", err
		}
		if r.cfg.Sanitize {
			out = html.Sanitize(out)
		}
		return out, nil
	}
}

// key hashes the normalised document with every option that changes the
// rendered bytes.
func (r *renderer) key(doc []blocks.Block) (string, error) {
	data, err := blocksjson.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("cache key: %w", err)
	}
	variant := string(r.cfg.Format)
	switch r.cfg.Format {
	case blocks.FormatANSI:
		variant = fmt.Sprintf("%s/%d/%+v", variant, r.cfg.Width, r.cfg.Theme)
	case blocks.FormatHTML:
		if r.cfg.Sanitize {
			variant += "/sanitized"
		}
	}
	return redis.Key(variant, r.cfg.Prefix, data), nil
}

func countIgnored(outputs []blocks.Output) int {
	n := 0
	for _, o := range outputs {
		switch v := o.(type) {
		case blocks.Ignored:
			n++
		case blocks.Element:
			n += countIgnored(v.Children)
		}
	}
	return n
}
