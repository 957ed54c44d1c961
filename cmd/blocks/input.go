package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/blocks"
	"github.com/fwojciec/blocks/goldmark"
	blocksjson "github.com/fwojciec/blocks/json"
)

const (
	stdinName      = "-"
	sourceJSON     = "json"
	sourceMarkdown = "markdown"
)

// expandInputs expands glob arguments into file paths. Plain paths and "-"
// pass through unchanged. With no arguments the input is stdin. Stdin can
// only be read once, so "-" may appear at most once.
func expandInputs(args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{stdinName}, nil
	}
	var inputs []string
	var stdin bool
	for _, arg := range args {
		if arg == stdinName {
			if stdin {
				return nil, errors.New(`stdin ("-") given more than once`)
			}
			stdin = true
			inputs = append(inputs, arg)
			continue
		}
		if !strings.ContainsAny(arg, "*?[{") {
			inputs = append(inputs, arg)
			continue
		}
		if !doublestar.ValidatePattern(filepath.ToSlash(arg)) {
			return nil, fmt.Errorf("invalid glob pattern: %s", arg)
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %s", arg)
		}
		inputs = append(inputs, matches...)
	}
	return inputs, nil
}

// sourceFormat returns the input format for name. An explicit format wins;
// otherwise Markdown extensions select Markdown and everything else is JSON.
func sourceFormat(name, from string) string {
	if from != "" {
		return from
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return sourceMarkdown
	default:
		return sourceJSON
	}
}

// load reads and decodes one input. The gjson path only applies to JSON.
func load(name, from, jsonPath string, stdin io.Reader) ([]blocks.Block, error) {
	var (
		data []byte
		err  error
	)
	if name == stdinName {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	if sourceFormat(name, from) == sourceMarkdown {
		return goldmark.Parse(data), nil
	}
	return blocksjson.UnmarshalPath(data, jsonPath)
}
