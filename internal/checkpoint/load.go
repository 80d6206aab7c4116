package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
)

// Format names the three on-disk checkpoint representations.
type Format string

const (
	FormatPlain      Format = "plain"
	FormatUnified    Format = "unified"
	FormatLinkedData Format = "jsonld"
)

// Detect sniffs the representation of raw checkpoint JSON.
func Detect(data []byte) Format {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return FormatPlain
	}
	if _, ok := probe["@context"]; ok {
		return FormatLinkedData
	}
	if _, ok := probe["checkpoint"]; ok {
		return FormatUnified
	}
	return FormatPlain
}

// Parse decodes any of the three representations into the canonical unified
// model, reporting which shape the input carried.
func Parse(data []byte) (Unified, Format, error) {
	format := Detect(data)
	switch format {
	case FormatLinkedData:
		var ld LinkedData
		if err := json.Unmarshal(data, &ld); err != nil {
			return Unified{}, format, fmt.Errorf("parse linked-data checkpoint: %w", err)
		}
		u, err := LinkedDataToUnified(ld)
		return u, format, err
	case FormatUnified:
		var u Unified
		if err := json.Unmarshal(data, &u); err != nil {
			return Unified{}, format, fmt.Errorf("parse unified checkpoint: %w", err)
		}
		if u.Checkpoint == nil {
			u.Checkpoint = Checkpoint{}
		}
		return u, format, nil
	default:
		var c Checkpoint
		if err := json.Unmarshal(data, &c); err != nil {
			return Unified{}, format, fmt.Errorf("parse checkpoint: %w", err)
		}
		return PlainToUnified(c), format, nil
	}
}

// Load reads and parses a checkpoint file.
func Load(path string) (Unified, Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Unified{}, "", fmt.Errorf("read checkpoint: %w", err)
	}
	return Parse(data)
}

// Marshal renders the canonical model in the requested representation,
// pretty-printed with 2-space indentation.
func Marshal(u Unified, format Format) ([]byte, error) {
	var doc any
	switch format {
	case FormatPlain:
		doc = u.Plain()
	case FormatUnified:
		doc = u
	case FormatLinkedData:
		ld, err := UnifiedToLinkedData(u)
		if err != nil {
			return nil, err
		}
		doc = ld
	default:
		return nil, fmt.Errorf("unknown checkpoint format %q", format)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal %s checkpoint: %w", format, err)
	}
	return data, nil
}
