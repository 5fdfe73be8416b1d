package ringmain

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/hydronet/config"
	"github.com/katalvlaran/hydronet/logging"
	"github.com/katalvlaran/hydronet/network"
	"github.com/katalvlaran/hydronet/psd"
)

// SizeRingWithIsolationScenarios returns, per ring pipe, the worst flow it
// carries when the ring is opened at one of its flagged isolation valves,
// and the demand behind that flow. Only the two valves furthest round from
// the source either way are tried: opening the ring there puts the most
// demand on one side.
//
// Picture the source at twelve o'clock. Going anticlockwise from the last
// valve back to the source, each pipe feeds every sink between it and the
// valve; the same holds clockwise from the first valve. A pipe seen by
// both sweeps keeps the larger flow.
//
// found is false, and the ring's pipes get a warning, when no isolation
// valve on the ring is flagged for isolation cases.
func (sv *Solver) SizeRingWithIsolationScenarios(
	ctx context.Context,
	ring Ring,
	source string,
	sinks []Sink,
	sys *config.FlowSystem,
) (flows network.FlowAssignment, worst map[string]psd.Profile, found bool) {
	n := len(ring)
	sourceIx := -1
	for i, e := range ring {
		if e.To.Connectable == source {
			sourceIx = i

			break
		}
	}
	if sourceIx < 0 {
		panic(fmt.Sprintf("ringmain: source %q is not on the ring", source))
	}

	var valves []int
	for i := 0; i < n; i++ {
		ix := (sourceIx + i) % n
		if ring[ix].Value.Type != network.EdgeIsolationThrough {
			continue
		}
		v, ok := network.Lookup[*network.DirectedValve](sv.store, ring[ix].Value.UID)
		if !ok || v.Valve != network.IsolationValve {
			panic(fmt.Sprintf("ringmain: isolation edge %q is not an isolation valve", ring[ix].UID))
		}
		if v.MakeIsolationCase {
			valves = append(valves, ix)
		}
	}
	if len(valves) == 0 {
		for _, uid := range ring.Pipes() {
			sv.store.PipeCalc(uid).Warnings.Add(network.WarnIsolationValveRequired)
		}
		logging.Logger(ctx).WithField("source", source).Warn("ring main has no isolation valves to size against")

		return network.FlowAssignment{}, nil, false
	}

	demand := make(map[string]psd.Profile, len(sinks))
	for _, sk := range sinks {
		demand[sk.Node.Connectable] = demand[sk.Node.Connectable].Merge(sk.Profile)
	}
	lookup := func(p psd.Profile) float64 {
		fr, ok, err := network.PeakFlow(sv.store, sys.UID, p)
		if err != nil || !ok {
			return 0
		}

		return fr.FlowRateLS
	}

	worst = make(map[string]psd.Profile)
	anticlockwise := network.FlowAssignment{}
	var acc psd.Profile
	for i := 0; i < n; i++ {
		ix := ((valves[len(valves)-1]-i)%n + n) % n
		if ix == sourceIx {
			break
		}
		e := ring[ix]
		if e.Value.Type != network.EdgePipe {
			continue
		}
		acc = acc.Merge(demand[e.To.Connectable])
		anticlockwise.AddFlow(e.Value.UID, e.From.Connectable, lookup(acc))
		worst[e.Value.UID] = acc
	}

	clockwise := network.FlowAssignment{}
	acc = psd.Profile{}
	for i := 0; i < n; i++ {
		ix := (valves[0] + i) % n
		e := ring[ix]
		if e.Value.Type == network.EdgePipe {
			acc = acc.Merge(demand[e.From.Connectable])
			clockwise.AddFlow(e.Value.UID, e.To.Connectable, lookup(acc))
			if prev, ok := worst[e.Value.UID]; !ok || prev.Less(acc) {
				worst[e.Value.UID] = acc
			}
		}
		if ix == sourceIx {
			break
		}
	}

	flows = network.FlowAssignment{}
	for _, uid := range ring.Pipes() {
		a, c := anticlockwise.Has(uid), clockwise.Has(uid)
		switch {
		case c && (!a || math.Abs(clockwise.Flow(uid, "")) > math.Abs(anticlockwise.Flow(uid, ""))):
			from := clockwise.Origin(uid)
			flows.Set(uid, from, clockwise.Flow(uid, from))
		case a:
			from := anticlockwise.Origin(uid)
			flows.Set(uid, from, anticlockwise.Flow(uid, from))
		}
	}

	return flows, worst, true
}
