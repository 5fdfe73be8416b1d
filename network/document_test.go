package network_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hydronet/catalog"
	"github.com/katalvlaran/hydronet/config"
	"github.com/katalvlaran/hydronet/network"
)

const fixture = `
params:
  ringMainCalculationMethod: PSD_FLOW_RATE_DISTRIBUTED
entities:
  - {type: flowSource, uid: S, system: coldWater, pressureKPA: 500}
  - {type: fitting, uid: F, system: coldWater}
  - {type: loadNode, uid: L, system: coldWater, loadingUnits: 10}
  - {type: directedValve, uid: V, system: coldWater, valve: ISOLATION_VALVE, makeIsolationCaseOnRingMains: true}
  - {type: pipe, uid: p1, system: coldWater, endpoints: [S, F], lengthM: 5}
  - {type: pipe, uid: p2, system: coldWater, endpoints: [F, V], lengthM: 5}
  - {type: pipe, uid: p3, system: coldWater, endpoints: [V, L], lengthM: 5, diameterMM: 20}
`

func TestLoadDocument(t *testing.T) {
	s, err := network.LoadDocument(strings.NewReader(fixture), catalog.Default())
	require.NoError(t, err)

	assert.Equal(t, config.PSDFlowRateDistributed, s.Params().RingMainCalculationMethod)
	assert.Equal(t, 9.81, s.Params().GravitationalAcceleration, "unset params keep defaults")
	assert.Len(t, s.Entities(), 7)
	assert.Equal(t, []string{"p2", "p3"}, s.Connections("V"))
	assert.Equal(t, []string{"S", "F"}, s.Connections("p1"))

	v, ok := network.Lookup[*network.DirectedValve](s, "V")
	require.True(t, ok)
	assert.True(t, v.MakeIsolationCase)
	p3, _ := network.Lookup[*network.Pipe](s, "p3")
	require.NotNil(t, p3.DiameterMM)
	assert.Equal(t, 20.0, *p3.DiameterMM)
}

func TestLoadDocument_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown type":    "entities:\n  - {type: teapot, uid: x}\n",
		"unknown field":   "entities:\n  - {type: fitting, uid: F, system: coldWater, colour: red}\n",
		"missing uid":     "entities:\n  - {type: fitting, system: coldWater}\n",
		"duplicate":       "entities:\n  - {type: fitting, uid: F, system: coldWater}\n  - {type: fitting, uid: F, system: coldWater}\n",
		"dangling pipe":   "entities:\n  - {type: pipe, uid: p, system: coldWater, endpoints: [A, B], lengthM: 1}\n",
		"unknown system":  "entities:\n  - {type: fitting, uid: F, system: steam}\n",
		"bad valve":       "entities:\n  - {type: directedValve, uid: V, system: coldWater, valve: BUTTERFLY}\n",
		"pipe to a pipe":  "entities:\n  - {type: fitting, uid: F, system: coldWater}\n  - {type: pipe, uid: a, system: coldWater, endpoints: [F, F], lengthM: 1}\n  - {type: pipe, uid: b, system: coldWater, endpoints: [F, a], lengthM: 1}\n",
		"return required": "entities:\n  - {type: plant, uid: P, plant: RETURN_SYSTEM, inlet: i, outlet: o}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := network.LoadDocument(strings.NewReader(doc), catalog.Default())
			assert.Error(t, err)
		})
	}
}

func TestLoadDocument_DanglingIsSentinel(t *testing.T) {
	doc := "entities:\n  - {type: systemNode, uid: n, system: hotWater, parent: ghost}\n"
	_, err := network.LoadDocument(strings.NewReader(doc), catalog.Default())
	assert.ErrorIs(t, err, network.ErrDanglingReference)
}

func TestEntityNode_RoundTrip(t *testing.T) {
	in := network.EntityNode{Entity: load("L", 3)}
	var buf bytes.Buffer
	require.NoError(t, yaml.NewEncoder(&buf).Encode(in))
	assert.True(t, strings.HasPrefix(buf.String(), "type: loadNode\n"))

	var out network.EntityNode
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, in.Entity, out.Entity)
}
