package document

import (
	"encoding/json"
	"fmt"
)

// The serialized document is a delta-style op list: one op per node, with
// string inserts for text runs and object inserts for embeds. This form
// is lossless and is what drafts persist.

type embedInsert struct {
	Kind   string `json:"kind"`
	ID     string `json:"id"`
	Src    string `json:"src"`
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
}

type opOut struct {
	Insert     any        `json:"insert"`
	Attributes Attributes `json:"attributes,omitempty"`
}

type opIn struct {
	Insert     json.RawMessage `json:"insert"`
	Attributes Attributes      `json:"attributes,omitempty"`
}

type deltaOut struct {
	Ops []opOut `json:"ops"`
}

type deltaIn struct {
	Ops []opIn `json:"ops"`
}

func (d *Document) MarshalJSON() ([]byte, error) {
	out := deltaOut{Ops: make([]opOut, 0, len(d.nodes))}
	for _, n := range d.nodes {
		if n.Embed != nil {
			out.Ops = append(out.Ops, opOut{Insert: embedInsert{
				Kind:   n.Embed.Kind,
				ID:     n.Embed.ID,
				Src:    n.Embed.Src,
				Width:  n.Embed.Width,
				Height: n.Embed.Height,
			}, Attributes: n.Attrs})
			continue
		}
		out.Ops = append(out.Ops, opOut{Insert: n.Text, Attributes: n.Attrs})
	}
	return json.Marshal(out)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var in deltaIn
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	nodes := make([]Node, 0, len(in.Ops))
	for _, op := range in.Ops {
		var text string
		if err := json.Unmarshal(op.Insert, &text); err == nil {
			nodes = append(nodes, Node{Text: text, Attrs: op.Attributes})
			continue
		}
		var embed embedInsert
		if err := json.Unmarshal(op.Insert, &embed); err != nil {
			return fmt.Errorf("unrecognized insert op: %w", err)
		}
		nodes = append(nodes, Node{Attrs: op.Attributes, Embed: &Embed{
			Kind:   embed.Kind,
			ID:     embed.ID,
			Src:    embed.Src,
			Width:  embed.Width,
			Height: embed.Height,
		}})
	}
	d.nodes = nodes
	d.coalesce()
	return nil
}

// JSON returns the serialized document.
func (d *Document) JSON() (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FromJSON rebuilds a document from its serialized form.
func FromJSON(data string) (*Document, error) {
	d := New()
	if err := json.Unmarshal([]byte(data), d); err != nil {
		return nil, err
	}
	return d, nil
}
