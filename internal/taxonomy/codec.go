package taxonomy

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalJSON writes the taxonomy as nested objects, keeping insertion order:
// {"Expenses": {"Groceries": ["iga", "costco"]}}.
func (t Taxonomy) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, m := range t.mains {
		if i > 0 {
			buf.WriteByte(',')
		}

		if err := writeKey(&buf, m.Name); err != nil {
			return nil, err
		}

		buf.WriteByte('{')

		for j, s := range m.Subs {
			if j > 0 {
				buf.WriteByte(',')
			}

			if err := writeKey(&buf, s.Name); err != nil {
				return nil, err
			}

			kws := s.Keywords
			if kws == nil {
				kws = []string{}
			}

			raw, err := json.Marshal(kws)
			if err != nil {
				return nil, err
			}

			buf.Write(raw)
		}

		buf.WriteByte('}')
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	raw, err := json.Marshal(key)
	if err != nil {
		return err
	}

	buf.Write(raw)
	buf.WriteByte(':')

	return nil
}

// UnmarshalJSON reads nested objects token by token so that key order survives.
func (t *Taxonomy) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return err
	}

	var mains []Main

	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return err
		}

		if err := expectDelim(dec, '{'); err != nil {
			return fmt.Errorf("%w: %q must be an object of keyword lists", ErrInvalid, name)
		}

		main := Main{Name: name}

		for dec.More() {
			subName, err := readKey(dec)
			if err != nil {
				return err
			}

			var keywords []string
			if err := dec.Decode(&keywords); err != nil {
				return fmt.Errorf("%w: %s → %s must be a list of strings", ErrInvalid, name, subName)
			}

			main.Subs = append(main.Subs, Sub{Name: subName, Keywords: keywords})
		}

		if err := expectDelim(dec, '}'); err != nil {
			return err
		}

		mains = append(mains, main)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return err
	}

	built, err := New(mains...)
	if err != nil {
		return err
	}

	*t = built

	return nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q", ErrInvalid, want)
	}

	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected object key", ErrInvalid)
	}

	return key, nil
}

// UnmarshalYAML reads the same shape as the JSON codec from a YAML mapping.
func (t *Taxonomy) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: expected a mapping of main categories", ErrInvalid, node.Line)
	}

	var mains []Main

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]

		if val.Kind != yaml.MappingNode {
			return fmt.Errorf("%w: line %d: %q must be a mapping of keyword lists", ErrInvalid, val.Line, key.Value)
		}

		main := Main{Name: key.Value}

		for j := 0; j+1 < len(val.Content); j += 2 {
			subKey, subVal := val.Content[j], val.Content[j+1]

			var keywords []string
			if err := subVal.Decode(&keywords); err != nil {
				return fmt.Errorf("%w: line %d: %s → %s: %v", ErrInvalid, subVal.Line, key.Value, subKey.Value, err)
			}

			main.Subs = append(main.Subs, Sub{Name: subKey.Value, Keywords: keywords})
		}

		mains = append(mains, main)
	}

	built, err := New(mains...)
	if err != nil {
		return err
	}

	*t = built

	return nil
}

// MarshalYAML emits an ordered mapping node.
func (t Taxonomy) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	for _, m := range t.mains {
		subs := &yaml.Node{Kind: yaml.MappingNode}

		for _, s := range m.Subs {
			list := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
			for _, kw := range s.Keywords {
				list.Content = append(list.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kw})
			}

			subs.Content = append(subs.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s.Name},
				list,
			)
		}

		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Name},
			subs,
		)
	}

	return root, nil
}
