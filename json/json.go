// Package json decodes and encodes documents in the CMS blocks wire format:
// a JSON array of block nodes, each carrying a "type" discriminator.
package json

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/blocks"
	"github.com/tidwall/gjson"
)

// node is the JSON representation of any block or inline node.
type node struct {
	Type          string    `json:"type"`
	Level         *int      `json:"level,omitempty"`
	Format        *string   `json:"format,omitempty"`
	IndentLevel   *int      `json:"indentLevel,omitempty"`
	URL           *string   `json:"url,omitempty"`
	Image         *imageDTO `json:"image,omitempty"`
	Text          *string   `json:"text,omitempty"`
	Bold          bool      `json:"bold,omitempty"`
	Italic        bool      `json:"italic,omitempty"`
	Underline     bool      `json:"underline,omitempty"`
	Strikethrough bool      `json:"strikethrough,omitempty"`
	Code          bool      `json:"code,omitempty"`
	Children      []node    `json:"children,omitempty"`
}

type imageDTO struct {
	Name             string               `json:"name,omitempty"`
	AlternativeText  string               `json:"alternativeText,omitempty"`
	URL              string               `json:"url"`
	Caption          string               `json:"caption,omitempty"`
	Width            int                  `json:"width,omitempty"`
	Height           int                  `json:"height,omitempty"`
	Formats          map[string]formatDTO `json:"formats,omitempty"`
	Hash             string               `json:"hash,omitempty"`
	Ext              string               `json:"ext,omitempty"`
	Mime             string               `json:"mime,omitempty"`
	Size             float64              `json:"size,omitempty"`
	PreviewURL       string               `json:"previewUrl,omitempty"`
	Provider         string               `json:"provider,omitempty"`
	ProviderMetadata json.RawMessage      `json:"provider_metadata,omitempty"`
	CreatedAt        string               `json:"createdAt,omitempty"`
	UpdatedAt        string               `json:"updatedAt,omitempty"`
}

type formatDTO struct {
	Name   string  `json:"name,omitempty"`
	Hash   string  `json:"hash,omitempty"`
	Ext    string  `json:"ext,omitempty"`
	Mime   string  `json:"mime,omitempty"`
	Path   string  `json:"path,omitempty"`
	URL    string  `json:"url"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Size   float64 `json:"size,omitempty"`
}

// Unmarshal decodes a JSON array of block nodes. Nodes with a type that is
// not valid at their position decode to blocks.UnknownBlock or
// blocks.UnknownInline rather than failing.
func Unmarshal(data []byte) ([]blocks.Block, error) {
	var dtos []node
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("unmarshal blocks: %w: %w", blocks.ErrDecode, err)
	}
	result := make([]blocks.Block, len(dtos))
	for i, dto := range dtos {
		result[i] = unmarshalBlock(dto)
	}
	return result, nil
}

// UnmarshalPath decodes the block array found at a gjson path inside data,
// such as "data.attributes.content" in an API response envelope. An empty
// path decodes data itself.
func UnmarshalPath(data []byte, path string) ([]blocks.Block, error) {
	if path == "" {
		return Unmarshal(data)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON: %w", blocks.ErrDecode)
	}
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return nil, fmt.Errorf("path %q not found: %w", path, blocks.ErrDecode)
	}
	if !res.IsArray() {
		return nil, fmt.Errorf("path %q is %s, not an array: %w", path, res.Type, blocks.ErrDecode)
	}
	return Unmarshal([]byte(res.Raw))
}

// Decode reads and decodes a document from r.
func Decode(r io.Reader, path string) ([]blocks.Block, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return UnmarshalPath(data, path)
}

// Load reads a document from a JSON file.
func Load(filename, path string) ([]blocks.Block, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalPath(data, path)
}

// Marshal encodes a document as an indented JSON array.
func Marshal(doc []blocks.Block) ([]byte, error) {
	dtos := make([]node, len(doc))
	for i, b := range doc {
		dto, err := marshalBlock(b)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		dtos[i] = dto
	}
	return json.MarshalIndent(dtos, "", "  ")
}

func unmarshalBlock(dto node) blocks.Block {
	switch blocks.NodeType(dto.Type) {
	case blocks.TypeHeading:
		var level int
		if dto.Level != nil {
			level = *dto.Level
		}
		return blocks.HeadingBlock{Level: level, Children: unmarshalInlines(dto.Children)}
	case blocks.TypeParagraph:
		return blocks.ParagraphBlock{Children: unmarshalInlines(dto.Children)}
	case blocks.TypeQuote:
		return blocks.QuoteBlock{Children: unmarshalInlines(dto.Children)}
	case blocks.TypeCode:
		return blocks.CodeBlock{Children: unmarshalTexts(dto.Children)}
	case blocks.TypeList:
		return unmarshalList(dto)
	case blocks.TypeImage:
		var img blocks.Image
		if dto.Image != nil {
			img = unmarshalImage(*dto.Image)
		}
		return blocks.ImageBlock{Image: img}
	default:
		return blocks.UnknownBlock{Kind: blocks.NodeType(dto.Type)}
	}
}

func unmarshalList(dto node) blocks.ListBlock {
	var format blocks.ListFormat
	if dto.Format != nil {
		format = blocks.ListFormat(*dto.Format)
	}
	var indent int
	if dto.IndentLevel != nil {
		indent = *dto.IndentLevel
	}
	children := make([]blocks.ListChild, len(dto.Children))
	for i, c := range dto.Children {
		switch blocks.NodeType(c.Type) {
		case blocks.TypeList:
			children[i] = unmarshalList(c)
		case blocks.TypeListItem:
			children[i] = blocks.ListItemInline{Children: unmarshalInlines(c.Children)}
		default:
			children[i] = blocks.UnknownInline{Kind: blocks.NodeType(c.Type)}
		}
	}
	return blocks.ListBlock{Format: format, IndentLevel: indent, Children: children}
}

func unmarshalInlines(dtos []node) []blocks.DefaultInline {
	result := make([]blocks.DefaultInline, len(dtos))
	for i, dto := range dtos {
		switch blocks.NodeType(dto.Type) {
		case blocks.TypeText:
			result[i] = unmarshalText(dto)
		case blocks.TypeLink:
			var url string
			if dto.URL != nil {
				url = *dto.URL
			}
			result[i] = blocks.LinkInline{URL: url, Children: unmarshalTexts(dto.Children)}
		default:
			result[i] = blocks.UnknownInline{Kind: blocks.NodeType(dto.Type)}
		}
	}
	return result
}

// unmarshalTexts decodes positions that only admit text. The type tag is not
// checked; every child is read as a text run.
func unmarshalTexts(dtos []node) []blocks.TextInline {
	result := make([]blocks.TextInline, len(dtos))
	for i, dto := range dtos {
		result[i] = unmarshalText(dto)
	}
	return result
}

func unmarshalText(dto node) blocks.TextInline {
	var text string
	if dto.Text != nil {
		text = *dto.Text
	}
	return blocks.TextInline{
		Text:          text,
		Bold:          dto.Bold,
		Italic:        dto.Italic,
		Underline:     dto.Underline,
		Strikethrough: dto.Strikethrough,
		Code:          dto.Code,
	}
}

func unmarshalImage(dto imageDTO) blocks.Image {
	var formats map[string]blocks.ImageFormat
	if len(dto.Formats) > 0 {
		formats = make(map[string]blocks.ImageFormat, len(dto.Formats))
		for k, f := range dto.Formats {
			formats[k] = blocks.ImageFormat{
				Name:   f.Name,
				Hash:   f.Hash,
				Ext:    f.Ext,
				Mime:   f.Mime,
				URL:    f.URL,
				Width:  f.Width,
				Height: f.Height,
				Size:   f.Size,
				Path:   f.Path,
			}
		}
	}
	return blocks.Image{
		Name:             dto.Name,
		AlternativeText:  dto.AlternativeText,
		URL:              dto.URL,
		Caption:          dto.Caption,
		Width:            dto.Width,
		Height:           dto.Height,
		Formats:          formats,
		Hash:             dto.Hash,
		Ext:              dto.Ext,
		Mime:             dto.Mime,
		Size:             dto.Size,
		PreviewURL:       dto.PreviewURL,
		Provider:         dto.Provider,
		ProviderMetadata: dto.ProviderMetadata,
		CreatedAt:        dto.CreatedAt,
		UpdatedAt:        dto.UpdatedAt,
	}
}

func marshalBlock(b blocks.Block) (node, error) {
	switch v := b.(type) {
	case blocks.HeadingBlock:
		children, err := marshalInlines(v.Children)
		if err != nil {
			return node{}, err
		}
		level := v.Level
		return node{Type: string(blocks.TypeHeading), Level: &level, Children: children}, nil
	case blocks.ParagraphBlock:
		children, err := marshalInlines(v.Children)
		if err != nil {
			return node{}, err
		}
		return node{Type: string(blocks.TypeParagraph), Children: children}, nil
	case blocks.QuoteBlock:
		children, err := marshalInlines(v.Children)
		if err != nil {
			return node{}, err
		}
		return node{Type: string(blocks.TypeQuote), Children: children}, nil
	case blocks.CodeBlock:
		return node{Type: string(blocks.TypeCode), Children: marshalTexts(v.Children)}, nil
	case blocks.ListBlock:
		return marshalList(v)
	case blocks.ImageBlock:
		img := marshalImage(v.Image)
		empty := ""
		return node{
			Type:     string(blocks.TypeImage),
			Image:    &img,
			Children: []node{{Type: string(blocks.TypeText), Text: &empty}},
		}, nil
	case blocks.UnknownBlock:
		return node{Type: string(v.Kind)}, nil
	default:
		return node{}, fmt.Errorf("unknown block type: %T", b)
	}
}

func marshalList(l blocks.ListBlock) (node, error) {
	format := string(l.Format)
	dto := node{Type: string(blocks.TypeList), Format: &format}
	if l.IndentLevel != 0 {
		indent := l.IndentLevel
		dto.IndentLevel = &indent
	}
	dto.Children = make([]node, len(l.Children))
	for i, c := range l.Children {
		switch v := c.(type) {
		case blocks.ListBlock:
			child, err := marshalList(v)
			if err != nil {
				return node{}, fmt.Errorf("child %d: %w", i, err)
			}
			dto.Children[i] = child
		case blocks.ListItemInline:
			children, err := marshalInlines(v.Children)
			if err != nil {
				return node{}, fmt.Errorf("child %d: %w", i, err)
			}
			dto.Children[i] = node{Type: string(blocks.TypeListItem), Children: children}
		case blocks.UnknownInline:
			dto.Children[i] = node{Type: string(v.Kind)}
		default:
			return node{}, fmt.Errorf("child %d: unknown list child type: %T", i, c)
		}
	}
	return dto, nil
}

func marshalInlines(inlines []blocks.DefaultInline) ([]node, error) {
	result := make([]node, len(inlines))
	for i, n := range inlines {
		switch v := n.(type) {
		case blocks.TextInline:
			result[i] = marshalText(v)
		case blocks.LinkInline:
			url := v.URL
			result[i] = node{Type: string(blocks.TypeLink), URL: &url, Children: marshalTexts(v.Children)}
		case blocks.UnknownInline:
			result[i] = node{Type: string(v.Kind)}
		default:
			return nil, fmt.Errorf("child %d: unknown inline type: %T", i, n)
		}
	}
	return result, nil
}

func marshalTexts(texts []blocks.TextInline) []node {
	result := make([]node, len(texts))
	for i, t := range texts {
		result[i] = marshalText(t)
	}
	return result
}

func marshalText(t blocks.TextInline) node {
	text := t.Text
	return node{
		Type:          string(blocks.TypeText),
		Text:          &text,
		Bold:          t.Bold,
		Italic:        t.Italic,
		Underline:     t.Underline,
		Strikethrough: t.Strikethrough,
		Code:          t.Code,
	}
}

func marshalImage(img blocks.Image) imageDTO {
	var formats map[string]formatDTO
	if len(img.Formats) > 0 {
		formats = make(map[string]formatDTO, len(img.Formats))
		for k, f := range img.Formats {
			formats[k] = formatDTO{
				Name:   f.Name,
				Hash:   f.Hash,
				Ext:    f.Ext,
				Mime:   f.Mime,
				Path:   f.Path,
				URL:    f.URL,
				Width:  f.Width,
				Height: f.Height,
				Size:   f.Size,
			}
		}
	}
	return imageDTO{
		Name:             img.Name,
		AlternativeText:  img.AlternativeText,
		URL:              img.URL,
		Caption:          img.Caption,
		Width:            img.Width,
		Height:           img.Height,
		Formats:          formats,
		Hash:             img.Hash,
		Ext:              img.Ext,
		Mime:             img.Mime,
		Size:             img.Size,
		PreviewURL:       img.PreviewURL,
		Provider:         img.Provider,
		ProviderMetadata: img.ProviderMetadata,
		CreatedAt:        img.CreatedAt,
		UpdatedAt:        img.UpdatedAt,
	}
}
