package network

// EntityKind names the concrete type behind an Entity.
type EntityKind string

const (
	KindPipe          EntityKind = "pipe"
	KindFitting       EntityKind = "fitting"
	KindDirectedValve EntityKind = "directedValve"
	KindFlowSource    EntityKind = "flowSource"
	KindLoadNode      EntityKind = "loadNode"
	KindSystemNode    EntityKind = "systemNode"
	KindPlant         EntityKind = "plant"
	KindBigValve      EntityKind = "bigValve"
)

// Entity is one drawable object. The set of implementations is closed.
type Entity interface {
	UID() string
	Kind() EntityKind
	isEntity()
}

// Pipe joins two connectables.
type Pipe struct {
	ID        string    `yaml:"uid" validate:"required"`
	SystemUID string    `yaml:"system" validate:"required"`
	Endpoints [2]string `yaml:"endpoints" validate:"dive,required"`
	LengthM   float64   `yaml:"lengthM" validate:"gte=0"`

	// Material overrides the flow system's material when set.
	Material string `yaml:"material,omitempty"`

	// DiameterMM pins the nominal size; nil lets the sizer choose.
	DiameterMM *float64 `yaml:"diameterMM,omitempty" validate:"omitempty,gt=0"`
}

// Other returns the endpoint of p that is not uid.
func (p *Pipe) Other(uid string) string {
	if p.Endpoints[0] == uid {
		return p.Endpoints[1]
	}

	return p.Endpoints[0]
}

// Fitting is a passive junction (elbow, tee, cross).
type Fitting struct {
	ID        string `yaml:"uid" validate:"required"`
	SystemUID string `yaml:"system" validate:"required"`
}

// ValveType is the kind of an inline valve.
type ValveType string

const (
	CheckValve     ValveType = "CHECK_VALVE"
	IsolationValve ValveType = "ISOLATION_VALVE"
	BalancingValve ValveType = "BALANCING_VALVE"
	RPZD           ValveType = "RPZD"
	WaterMeter     ValveType = "WATER_METER"
	Strainer       ValveType = "STRAINER"
	PRV            ValveType = "PRV"
	GasRegulator   ValveType = "GAS_REGULATOR"
)

// DirectedValve is an inline valve between exactly two pipes. SourceUID is
// the pipe on its inlet side.
type DirectedValve struct {
	ID        string    `yaml:"uid" validate:"required"`
	SystemUID string    `yaml:"system" validate:"required"`
	Valve     ValveType `yaml:"valve" validate:"oneof=CHECK_VALVE ISOLATION_VALVE BALANCING_VALVE RPZD WATER_METER STRAINER PRV GAS_REGULATOR"`
	SourceUID string    `yaml:"source"`

	// IsClosed removes an isolation valve from the flow graph.
	IsClosed bool `yaml:"isClosed,omitempty"`

	// MakeIsolationCase flags an isolation valve for ring-main scenarios.
	MakeIsolationCase bool `yaml:"makeIsolationCaseOnRingMains,omitempty"`

	// PressureDropKPA is the fixed drop across the valve.
	PressureDropKPA float64 `yaml:"pressureDropKPA,omitempty" validate:"gte=0"`

	// OutletPressureKPA is the set pressure of a regulator or PRV.
	OutletPressureKPA float64 `yaml:"outletPressureKPA,omitempty" validate:"gte=0"`
}

// FlowSource supplies a system at a fixed pressure.
type FlowSource struct {
	ID          string  `yaml:"uid" validate:"required"`
	SystemUID   string  `yaml:"system" validate:"required"`
	PressureKPA float64 `yaml:"pressureKPA" validate:"gte=0"`
}

// LoadNode is a demand terminal: fixtures, a group of dwellings or a gas
// appliance.
type LoadNode struct {
	ID               string  `yaml:"uid" validate:"required"`
	SystemUID        string  `yaml:"system" validate:"required"`
	LoadingUnits     float64 `yaml:"loadingUnits,omitempty" validate:"gte=0"`
	ContinuousFlowLS float64 `yaml:"continuousFlowLS,omitempty" validate:"gte=0"`
	Dwellings        float64 `yaml:"dwellings,omitempty" validate:"gte=0"`
	GasMJH           float64 `yaml:"gasMJH,omitempty" validate:"gte=0"`

	// GasPressureKPA is the inlet pressure a gas appliance needs.
	GasPressureKPA float64 `yaml:"gasPressureKPA,omitempty" validate:"gte=0"`
}

// SystemNode is a connection point owned by a plant or a big valve.
type SystemNode struct {
	ID        string `yaml:"uid" validate:"required"`
	SystemUID string `yaml:"system" validate:"required"`
	ParentUID string `yaml:"parent" validate:"required"`
}

// PlantType is the kind of a plant.
type PlantType string

const (
	ReturnSystem PlantType = "RETURN_SYSTEM"
	Pump         PlantType = "PUMP"
	Tank         PlantType = "TANK"
	CustomPlant  PlantType = "CUSTOM"
)

// Plant is a piece of equipment between an inlet and an outlet system
// node. A RETURN_SYSTEM plant also owns the node its return loop ends on.
type Plant struct {
	ID        string    `yaml:"uid" validate:"required"`
	Type      PlantType `yaml:"plant" validate:"oneof=RETURN_SYSTEM PUMP TANK CUSTOM"`
	InletUID  string    `yaml:"inlet" validate:"required"`
	OutletUID string    `yaml:"outlet" validate:"required"`
	ReturnUID string    `yaml:"return,omitempty" validate:"required_if=Type RETURN_SYSTEM"`

	// OutletTempC and ReturnMinTempC bound the circulation temperature drop.
	OutletTempC    float64 `yaml:"outletTempC,omitempty"`
	ReturnMinTempC float64 `yaml:"returnMinTempC,omitempty" validate:"ltefield=OutletTempC"`

	// PumpPressureKPA is added across the plant; PressureLossKPA removed.
	PumpPressureKPA float64 `yaml:"pumpPressureKPA,omitempty" validate:"gte=0"`
	PressureLossKPA float64 `yaml:"pressureLossKPA,omitempty" validate:"gte=0"`
}

// BigValveType is the kind of a multi-port mixing valve.
type BigValveType string

const (
	TMV         BigValveType = "TMV"
	Tempering   BigValveType = "TEMPERING"
	RPZDHotCold BigValveType = "RPZD_HOT_COLD"
)

// BigValve mixes or guards hot and cold supplies. The ports are system
// nodes; unused ports stay empty.
type BigValve struct {
	ID              string       `yaml:"uid" validate:"required"`
	Type            BigValveType `yaml:"valve" validate:"oneof=TMV TEMPERING RPZD_HOT_COLD"`
	HotInUID        string       `yaml:"hotIn" validate:"required"`
	ColdInUID       string       `yaml:"coldIn,omitempty"`
	WarmOutUID      string       `yaml:"warmOut,omitempty"`
	ColdOutUID      string       `yaml:"coldOut,omitempty"`
	HotOutUID       string       `yaml:"hotOut,omitempty"`
	PressureDropKPA float64      `yaml:"pressureDropKPA,omitempty" validate:"gte=0"`
}

func (p *Pipe) UID() string          { return p.ID }
func (f *Fitting) UID() string       { return f.ID }
func (v *DirectedValve) UID() string { return v.ID }
func (s *FlowSource) UID() string    { return s.ID }
func (l *LoadNode) UID() string      { return l.ID }
func (s *SystemNode) UID() string    { return s.ID }
func (p *Plant) UID() string         { return p.ID }
func (b *BigValve) UID() string      { return b.ID }

func (*Pipe) Kind() EntityKind          { return KindPipe }
func (*Fitting) Kind() EntityKind       { return KindFitting }
func (*DirectedValve) Kind() EntityKind { return KindDirectedValve }
func (*FlowSource) Kind() EntityKind    { return KindFlowSource }
func (*LoadNode) Kind() EntityKind      { return KindLoadNode }
func (*SystemNode) Kind() EntityKind    { return KindSystemNode }
func (*Plant) Kind() EntityKind         { return KindPlant }
func (*BigValve) Kind() EntityKind      { return KindBigValve }

func (*Pipe) isEntity()          {}
func (*Fitting) isEntity()       {}
func (*DirectedValve) isEntity() {}
func (*FlowSource) isEntity()    {}
func (*LoadNode) isEntity()      {}
func (*SystemNode) isEntity()    {}
func (*Plant) isEntity()         {}
func (*BigValve) isEntity()      {}

// SystemOf returns the flow system uid of e, or "" for entities that span
// systems (plants and big valves).
func SystemOf(e Entity) string {
	switch x := e.(type) {
	case *Pipe:
		return x.SystemUID
	case *Fitting:
		return x.SystemUID
	case *DirectedValve:
		return x.SystemUID
	case *FlowSource:
		return x.SystemUID
	case *LoadNode:
		return x.SystemUID
	case *SystemNode:
		return x.SystemUID
	case *Plant, *BigValve:
		return ""
	}
	panic("network: unknown entity type")
}
