package twconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Encode writes doc in the given format. YAML and JSON keep document order;
// TOML tables come out sorted by key.
func Encode(w io.Writer, doc *Document, format Format) error {
	root, err := doc.node()
	if err != nil {
		return err
	}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(root); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()

	case FormatJSON:
		var buf bytes.Buffer
		if err := writeJSONNode(&buf, root, ""); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		buf.WriteByte('\n')
		_, err := w.Write(buf.Bytes())
		return err

	case FormatTOML:
		var v map[string]any
		if err := root.Decode(&v); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		if err := toml.NewEncoder(w).Encode(v); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	}

	return unsupportedFormat(string(format))
}

// node builds the ordered YAML representation of the document
func (d *Document) node() (*yaml.Node, error) {
	root := mapping()

	if len(d.Purge.Targets) > 0 || d.Purge.Object {
		purge, err := d.Purge.node()
		if err != nil {
			return nil, err
		}
		add(root, "purge", purge)
	}

	if d.DarkMode == DarkModeOff || d.DarkMode == "" {
		add(root, "darkMode", boolNode(false))
	} else {
		add(root, "darkMode", strNode(string(d.DarkMode)))
	}

	if d.Prefix != "" {
		add(root, "prefix", strNode(d.Prefix))
	}
	if d.Important.Selector != "" {
		add(root, "important", strNode(d.Important.Selector))
	} else if d.Important.Enabled {
		add(root, "important", boolNode(true))
	}
	if d.Separator != "" {
		add(root, "separator", strNode(d.Separator))
	}

	theme, err := d.Theme.node()
	if err != nil {
		return nil, err
	}
	add(root, "theme", theme)

	add(root, "variants", d.Variants.node())

	plugins := sequence()
	for _, p := range d.Plugins {
		if p.Options == nil {
			plugins.Content = append(plugins.Content, strNode(p.Name))
			continue
		}
		ref := mapping()
		add(ref, "name", strNode(p.Name))
		opts, err := anyNode(p.Options)
		if err != nil {
			return nil, err
		}
		add(ref, "options", opts)
		plugins.Content = append(plugins.Content, ref)
	}
	add(root, "plugins", plugins)

	if err := addExtra(root, d.Extra); err != nil {
		return nil, err
	}

	return root, nil
}

func (p Purge) node() (*yaml.Node, error) {
	targets := sequence()
	for _, t := range p.Targets {
		targets.Content = append(targets.Content, strNode(t.Pattern))
	}
	if !p.Object {
		return targets, nil
	}

	obj := mapping()
	if p.Enabled != nil {
		add(obj, "enabled", boolNode(*p.Enabled))
	}
	add(obj, "content", targets)
	if err := addExtra(obj, p.Extra); err != nil {
		return nil, err
	}
	return obj, nil
}

func (t Theme) node() (*yaml.Node, error) {
	n := mapping()
	if t.HasColors() {
		add(n, "colors", t.Colors.node())
	}
	if len(t.Typography) > 0 {
		add(n, "typography", t.Typography.node())
	}
	if err := addExtra(n, t.Extra); err != nil {
		return nil, err
	}

	ext := mapping()
	if len(t.Extend.Colors) > 0 {
		add(ext, "colors", t.Extend.Colors.node())
	}
	if len(t.Extend.Typography) > 0 {
		add(ext, "typography", t.Extend.Typography.node())
	}
	if err := addExtra(ext, t.Extend.Extra); err != nil {
		return nil, err
	}
	add(n, "extend", ext)

	return n, nil
}

func (p Palette) node() *yaml.Node {
	n := mapping()
	for _, e := range p {
		switch {
		case e.IsImport():
			if len(e.Imports) == 1 {
				add(n, ImportKey, strNode(e.Imports[0]))
			} else {
				add(n, ImportKey, strSequence(e.Imports))
			}
		case e.Value.IsFamily():
			shades := mapping()
			for _, s := range e.Value.Shades {
				add(shades, s.Name, strNode(s.Value))
			}
			add(n, e.Name, shades)
		default:
			add(n, e.Name, strNode(e.Value.Literal))
		}
	}
	return n
}

func (t Typography) node() *yaml.Node {
	n := mapping()
	for _, mod := range t {
		css := mapping()
		for _, r := range mod.Rules {
			if r.Selector == "" {
				for _, decl := range r.Declarations {
					add(css, decl.Property, decl.Value.node())
				}
				continue
			}
			add(css, r.Selector, r.node())
		}
		m := mapping()
		add(m, "css", css)
		add(n, mod.Name, m)
	}
	return n
}

func (r StyleRule) node() *yaml.Node {
	n := mapping()
	for _, decl := range r.Declarations {
		add(n, decl.Property, decl.Value.node())
	}
	for _, child := range r.Rules {
		add(n, child.Selector, child.node())
	}
	return n
}

func (v StyleValue) node() *yaml.Node {
	if v.Numeric {
		tag := "!!float"
		if _, err := strconv.ParseInt(v.Raw, 10, 64); err == nil {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.Raw}
	}
	return strNode(v.Raw)
}

func (v Variants) node() *yaml.Node {
	n := mapping()
	for _, g := range v.Groups {
		add(n, g.Group, strSequence(g.Variants))
	}
	ext := mapping()
	for _, g := range v.Extend {
		add(ext, g.Group, strSequence(g.Variants))
	}
	add(n, "extend", ext)
	return n
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func sequence() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func boolNode(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprint(b)}
}

func strSequence(items []string) *yaml.Node {
	n := sequence()
	for _, s := range items {
		n.Content = append(n.Content, strNode(s))
	}
	return n
}

func add(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, strNode(key), value)
}

func anyNode(v any) (*yaml.Node, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}
	return &n, nil
}

// addExtra appends passthrough keys sorted by name
func addExtra(m *yaml.Node, extra map[string]any) error {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v, err := anyNode(extra[k])
		if err != nil {
			return err
		}
		add(m, k, v)
	}
	return nil
}

// writeJSONNode renders a node tree as indented JSON, keeping mapping order.
// encoding/json only writes Go maps, which it sorts.
func writeJSONNode(buf *bytes.Buffer, n *yaml.Node, indent string) error {
	n = resolve(n)
	inner := indent + "  "

	switch n.Kind {
	case yaml.MappingNode:
		if len(n.Content) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return err
			}
			buf.WriteString(inner)
			buf.Write(key)
			buf.WriteString(": ")
			if err := writeJSONNode(buf, n.Content[i+1], inner); err != nil {
				return err
			}
			if i+2 < len(n.Content) {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(indent + "}")

	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, item := range n.Content {
			buf.WriteString(inner)
			if err := writeJSONNode(buf, item, inner); err != nil {
				return err
			}
			if i+1 < len(n.Content) {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(indent + "]")

	case yaml.ScalarNode:
		if tag := n.ShortTag(); (tag == "!!int" || tag == "!!float") && decimalNumber.MatchString(n.Value) {
			buf.WriteString(n.Value)
			return nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)

	default:
		buf.WriteString("null")
	}
	return nil
}
