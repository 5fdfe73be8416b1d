package network

import (
	"fmt"

	"github.com/katalvlaran/hydronet/catalog"
	"github.com/katalvlaran/hydronet/config"
)

// Store is the entity store a solve pass reads from and writes
// calculation records to.
type Store interface {
	// Get returns the entity with the given uid.
	Get(uid string) (Entity, bool)
	// Connections returns, for a connectable, the pipes attached to it in
	// pipe order; for a pipe, its two endpoints.
	Connections(uid string) []string
	// Entities returns every entity in insertion order.
	Entities() []Entity

	PipeCalc(uid string) *PipeCalculation
	ValveCalc(uid string) *ValveCalculation
	PlantCalc(uid string) *PlantCalculation

	FlowSystem(uid string) (*config.FlowSystem, error)
	Params() config.CalculationParams
	Catalog() *catalog.Catalog
}

// MemoryStore is a Store held in maps. It is not safe for concurrent use.
type MemoryStore struct {
	doc   *config.Document
	cat   *catalog.Catalog
	order []string
	byUID map[string]Entity
	conns map[string][]string

	pipeCalcs  map[string]*PipeCalculation
	valveCalcs map[string]*ValveCalculation
	plantCalcs map[string]*PlantCalculation
}

// NewMemoryStore returns an empty store over doc and cat.
func NewMemoryStore(doc *config.Document, cat *catalog.Catalog) *MemoryStore {
	return &MemoryStore{
		doc:        doc,
		cat:        cat,
		byUID:      make(map[string]Entity),
		conns:      make(map[string][]string),
		pipeCalcs:  make(map[string]*PipeCalculation),
		valveCalcs: make(map[string]*ValveCalculation),
		plantCalcs: make(map[string]*PlantCalculation),
	}
}

// Add inserts entities in order. A duplicate uid is an error and leaves
// the store with the entities before it.
func (s *MemoryStore) Add(entities ...Entity) error {
	for _, e := range entities {
		uid := e.UID()
		if _, dup := s.byUID[uid]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateEntity, uid)
		}
		s.byUID[uid] = e
		s.order = append(s.order, uid)
		if p, ok := e.(*Pipe); ok {
			s.conns[p.Endpoints[0]] = append(s.conns[p.Endpoints[0]], uid)
			if p.Endpoints[1] != p.Endpoints[0] {
				s.conns[p.Endpoints[1]] = append(s.conns[p.Endpoints[1]], uid)
			}
		}
	}

	return nil
}

func (s *MemoryStore) Get(uid string) (Entity, bool) {
	e, ok := s.byUID[uid]

	return e, ok
}

func (s *MemoryStore) Connections(uid string) []string {
	if p, ok := s.byUID[uid].(*Pipe); ok {
		return []string{p.Endpoints[0], p.Endpoints[1]}
	}

	return append([]string(nil), s.conns[uid]...)
}

func (s *MemoryStore) Entities() []Entity {
	out := make([]Entity, 0, len(s.order))
	for _, uid := range s.order {
		out = append(out, s.byUID[uid])
	}

	return out
}

func (s *MemoryStore) PipeCalc(uid string) *PipeCalculation {
	c, ok := s.pipeCalcs[uid]
	if !ok {
		c = &PipeCalculation{}
		s.pipeCalcs[uid] = c
	}

	return c
}

func (s *MemoryStore) ValveCalc(uid string) *ValveCalculation {
	c, ok := s.valveCalcs[uid]
	if !ok {
		c = &ValveCalculation{}
		s.valveCalcs[uid] = c
	}

	return c
}

func (s *MemoryStore) PlantCalc(uid string) *PlantCalculation {
	c, ok := s.plantCalcs[uid]
	if !ok {
		c = &PlantCalculation{}
		s.plantCalcs[uid] = c
	}

	return c
}

func (s *MemoryStore) FlowSystem(uid string) (*config.FlowSystem, error) { return s.doc.System(uid) }
func (s *MemoryStore) Params() config.CalculationParams                  { return s.doc.Params }
func (s *MemoryStore) Catalog() *catalog.Catalog                         { return s.cat }

// Lookup returns the entity under uid if it has type T.
func Lookup[T Entity](s Store, uid string) (T, bool) {
	e, ok := s.Get(uid)
	if !ok {
		var zero T

		return zero, false
	}
	t, ok := e.(T)

	return t, ok
}

// Pipes returns every pipe of s in insertion order.
func Pipes(s Store) []*Pipe {
	var out []*Pipe
	for _, e := range s.Entities() {
		if p, ok := e.(*Pipe); ok {
			out = append(out, p)
		}
	}

	return out
}

// PipeSpec is the flow system, material and fluid a pipe is sized with.
type PipeSpec struct {
	System   *config.FlowSystem
	Material *catalog.PipeMaterial
	Fluid    *catalog.Fluid
}

// ResolvePipe looks up the sizing context of p.
func ResolvePipe(s Store, p *Pipe) (PipeSpec, error) {
	sys, err := s.FlowSystem(p.SystemUID)
	if err != nil {
		return PipeSpec{}, fmt.Errorf("network: pipe %q: %w", p.ID, err)
	}
	name := sys.Material
	if p.Material != "" {
		name = p.Material
	}
	m, err := s.Catalog().Material(name)
	if err != nil {
		return PipeSpec{}, fmt.Errorf("network: pipe %q: %w", p.ID, err)
	}
	f, err := s.Catalog().Fluid(sys.Fluid)
	if err != nil {
		return PipeSpec{}, fmt.Errorf("network: pipe %q: %w", p.ID, err)
	}

	return PipeSpec{System: sys, Material: m, Fluid: f}, nil
}
