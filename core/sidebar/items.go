package sidebar

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind identifies which variant a sidebar item is.
type Kind int

const (
	KindUnknown Kind = iota
	KindDoc
	KindCategory
	KindLink
)

func (k Kind) String() string {
	switch k {
	case KindDoc:
		return "doc"
	case KindCategory:
		return "category"
	case KindLink:
		return "link"
	default:
		return "unknown"
	}
}

// CategoryLink is the optional landing page of a category.
type CategoryLink struct {
	Type string `yaml:"type"`
	ID   string `yaml:"id"`
}

// Item is one entry of a sidebar item list. A bare string decodes as a doc
// reference; mappings are dispatched on their "type" key.
type Item struct {
	Kind  Kind
	Type  string
	ID    string
	Label string
	Href  string
	Items []Item
	Link  *CategoryLink

	// Raw is a short rendering of the source node, used in log messages.
	Raw string
}

type rawItem struct {
	Type  string        `yaml:"type"`
	ID    string        `yaml:"id"`
	Label string        `yaml:"label"`
	Href  string        `yaml:"href"`
	Items []Item        `yaml:"items"`
	Link  *CategoryLink `yaml:"link"`
}

// UnmarshalYAML decodes a single item. It never fails: anything that does
// not look like a known variant becomes KindUnknown so the rest of the
// sidebar still parses.
func (i *Item) UnmarshalYAML(n *yaml.Node) error {
	i.Raw = describe(n)

	switch n.Kind {
	case yaml.ScalarNode:
		if n.Value == "" {
			i.Kind = KindUnknown
			return nil
		}
		i.Kind = KindDoc
		i.ID = n.Value
		return nil
	case yaml.MappingNode:
	default:
		i.Kind = KindUnknown
		return nil
	}

	var raw rawItem
	if err := n.Decode(&raw); err != nil {
		i.Kind = KindUnknown
		i.Raw = fmt.Sprintf("%s (%v)", i.Raw, err)
		return nil
	}

	i.Type = raw.Type
	i.ID = raw.ID
	i.Label = raw.Label
	i.Href = raw.Href
	i.Items = raw.Items
	i.Link = raw.Link

	switch raw.Type {
	case "doc":
		if raw.ID != "" {
			i.Kind = KindDoc
		}
	case "category":
		i.Kind = KindCategory
	case "link":
		i.Kind = KindLink
	default:
		i.Kind = KindUnknown
	}
	return nil
}

// describe renders a node compactly for diagnostics.
func describe(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return fmt.Sprintf("%q", n.Value)
	case yaml.MappingNode:
		out := "{"
		for j := 0; j+1 < len(n.Content); j += 2 {
			if j > 0 {
				out += ", "
			}
			v := n.Content[j+1]
			if v.Kind == yaml.ScalarNode {
				out += n.Content[j].Value + ": " + v.Value
			} else {
				out += n.Content[j].Value + ": …"
			}
		}
		return out + "}"
	case yaml.SequenceNode:
		return fmt.Sprintf("[%d items]", len(n.Content))
	default:
		return fmt.Sprintf("<node line %d>", n.Line)
	}
}
