package fs

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/quicknote/pkg/core"
)

// Serializer defines how the whole collection is read from and written to one document.
type Serializer interface {
	// Name identifies the format (e.g. "json").
	Name() string

	// Decode parses a document. A document that cannot be parsed at all
	// returns err. Individual records that fail to decode or validate are
	// dropped and described in skipped.
	Decode(data []byte) (notes []core.Note, skipped []error, err error)

	// Encode converts the collection to bytes.
	Encode(notes []core.Note) ([]byte, error)
}

// SerializerFor picks a serializer from the store file extension.
// Anything other than .yaml/.yml is JSON.
func SerializerFor(path string) Serializer {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAMLSerializer()
	default:
		return NewJSONSerializer()
	}
}

// --- JSON Serializer ---

// JSONSerializer handles reading and writing the JSON store.
// Unknown fields are ignored on read and dropped on the next write.
type JSONSerializer struct{}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{}
}

func (s *JSONSerializer) Name() string { return "json" }

func (s *JSONSerializer) Decode(data []byte) ([]core.Note, []error, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []core.Note{}, nil, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, errors.Wrap(err, "invalid json")
	}

	return decodeRecords(len(raw), func(i int, n *core.Note) error {
		return json.Unmarshal(raw[i], n)
	})
}

func (s *JSONSerializer) Encode(notes []core.Note) ([]byte, error) {
	if notes == nil {
		notes = []core.Note{}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(notes); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --- YAML Serializer ---

// YAMLSerializer handles reading and writing the YAML store.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Name() string { return "yaml" }

func (s *YAMLSerializer) Decode(data []byte) ([]core.Note, []error, error) {
	var nodes []yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, nil, errors.Wrap(err, "invalid yaml")
	}

	return decodeRecords(len(nodes), func(i int, n *core.Note) error {
		return nodes[i].Decode(n)
	})
}

func (s *YAMLSerializer) Encode(notes []core.Note) ([]byte, error) {
	if notes == nil {
		notes = []core.Note{}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(notes); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeRecords decodes each record into a fresh core.Note, normalizes tags
// and validates it. Invalid records and repeated ids are skipped.
func decodeRecords(count int, decode func(i int, n *core.Note) error) ([]core.Note, []error, error) {
	notes := make([]core.Note, 0, count)
	seen := make(map[string]struct{}, count)
	var skipped []error

	for i := 0; i < count; i++ {
		var n core.Note
		if err := decode(i, &n); err != nil {
			skipped = append(skipped, errors.Wrapf(err, "record %d", i))
			continue
		}

		n.Tags = core.NormalizeTags(n.Tags)
		if err := n.Validate(); err != nil {
			skipped = append(skipped, errors.Wrapf(err, "record %d", i))
			continue
		}

		if _, dup := seen[n.ID]; dup {
			skipped = append(skipped, errors.Errorf("record %d: duplicate id %q", i, n.ID))
			continue
		}
		seen[n.ID] = struct{}{}
		notes = append(notes, n)
	}

	return notes, skipped, nil
}
