package network

import (
	"bytes"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hydronet/catalog"
	"github.com/katalvlaran/hydronet/config"
)

var validate = validator.New()

// Document is the YAML fixture form of a network: the calculation
// parameters plus a list of entities, each tagged with its type.
type Document struct {
	config.Document `yaml:",inline"`
	Entities        []EntityNode `yaml:"entities"`
}

// EntityNode wraps an Entity so it can be decoded from a mapping that
// carries a `type:` discriminator.
type EntityNode struct {
	Entity Entity
}

func newEntity(kind EntityKind) (Entity, error) {
	switch kind {
	case KindPipe:
		return &Pipe{}, nil
	case KindFitting:
		return &Fitting{}, nil
	case KindDirectedValve:
		return &DirectedValve{}, nil
	case KindFlowSource:
		return &FlowSource{}, nil
	case KindLoadNode:
		return &LoadNode{}, nil
	case KindSystemNode:
		return &SystemNode{}, nil
	case KindPlant:
		return &Plant{}, nil
	case KindBigValve:
		return &BigValve{}, nil
	}

	return nil, errors.Errorf("unknown entity type %q", kind)
}

// UnmarshalYAML picks the concrete entity from the `type` key and decodes
// the remaining keys into it strictly.
func (en *EntityNode) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return errors.Errorf("line %d: entity must be a mapping", n.Line)
	}
	var kind EntityKind
	rest := &yaml.Node{Kind: yaml.MappingNode, Tag: n.Tag, Line: n.Line, Column: n.Column}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == "type" {
			kind = EntityKind(n.Content[i+1].Value)
			continue
		}
		rest.Content = append(rest.Content, n.Content[i], n.Content[i+1])
	}
	e, err := newEntity(kind)
	if err != nil {
		return errors.Wrapf(err, "line %d", n.Line)
	}

	// Re-encode so the strict decoder sees the entity keys alone.
	raw, err := yaml.Marshal(rest)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(e); err != nil {
		return errors.Wrapf(err, "line %d: %s", n.Line, kind)
	}
	en.Entity = e

	return nil
}

// MarshalYAML writes the entity back with its `type` key first.
func (en EntityNode) MarshalYAML() (any, error) {
	var body yaml.Node
	if err := body.Encode(en.Entity); err != nil {
		return nil, err
	}
	out := &yaml.Node{Kind: yaml.MappingNode}
	out.Content = append(out.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "type"},
		&yaml.Node{Kind: yaml.ScalarNode, Value: string(en.Entity.Kind())},
	)
	out.Content = append(out.Content, body.Content...)

	return out, nil
}

// LoadDocument decodes a fixture over config.Default, validates every
// entity and its references, and returns it as a MemoryStore.
func LoadDocument(r io.Reader, cat *catalog.Catalog) (*MemoryStore, error) {
	d := Document{Document: config.Default()}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "network: decode")
	}
	if err := d.Document.Validate(); err != nil {
		return nil, err
	}
	if err := d.Document.CheckCatalog(cat); err != nil {
		return nil, err
	}

	doc := d.Document
	s := NewMemoryStore(&doc, cat)
	for _, en := range d.Entities {
		if err := validate.Struct(en.Entity); err != nil {
			return nil, errors.Wrapf(err, "network: %s %q", en.Entity.Kind(), en.Entity.UID())
		}
		if err := s.Add(en.Entity); err != nil {
			return nil, errors.Wrap(err, "network: load")
		}
	}
	if err := CheckReferences(s); err != nil {
		return nil, err
	}

	return s, nil
}

// LoadDocumentFile is LoadDocument on the named file.
func LoadDocumentFile(path string, cat *catalog.Catalog) (*MemoryStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "network: open %s", path)
	}
	defer f.Close()

	s, err := LoadDocument(f, cat)
	if err != nil {
		return nil, errors.Wrapf(err, "network: %s", path)
	}

	return s, nil
}

// CheckReferences verifies that every uid an entity names exists and has
// the right kind, and that every system uid is known.
func CheckReferences(s Store) error {
	dangling := func(owner Entity, what, uid string) error {
		return errors.Wrapf(ErrDanglingReference, "%s %q: %s %q", owner.Kind(), owner.UID(), what, uid)
	}
	connectable := func(uid string) bool {
		e, ok := s.Get(uid)

		return ok && e.Kind() != KindPipe
	}
	systemNode := func(uid string) bool {
		_, ok := Lookup[*SystemNode](s, uid)

		return ok
	}

	for _, e := range s.Entities() {
		if sys := SystemOf(e); sys != "" {
			if _, err := s.FlowSystem(sys); err != nil {
				return errors.Wrapf(err, "%s %q", e.Kind(), e.UID())
			}
		}
		switch x := e.(type) {
		case *Pipe:
			for _, ep := range x.Endpoints {
				if !connectable(ep) {
					return dangling(e, "endpoint", ep)
				}
			}
		case *DirectedValve:
			if x.SourceUID != "" {
				if _, ok := Lookup[*Pipe](s, x.SourceUID); !ok {
					return dangling(e, "source pipe", x.SourceUID)
				}
			}
		case *SystemNode:
			if _, ok := s.Get(x.ParentUID); !ok {
				return dangling(e, "parent", x.ParentUID)
			}
		case *Plant:
			for _, uid := range []string{x.InletUID, x.OutletUID, x.ReturnUID} {
				if uid != "" && !systemNode(uid) {
					return dangling(e, "port", uid)
				}
			}
		case *BigValve:
			for _, uid := range []string{x.HotInUID, x.ColdInUID, x.WarmOutUID, x.ColdOutUID, x.HotOutUID} {
				if uid != "" && !systemNode(uid) {
					return dangling(e, "port", uid)
				}
			}
		case *Fitting, *FlowSource, *LoadNode:
		default:
			panic("network: unknown entity type")
		}
	}

	return nil
}
