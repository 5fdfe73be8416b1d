package network

import (
	"math"
	"sort"
)

type flowEntry struct {
	flow float64
	from string
}

// FlowAssignment holds a signed flow per edge uid. The sign is relative to
// the node the flow was first recorded from.
type FlowAssignment map[string]flowEntry

// Flow returns the flow on uid as seen leaving from, negative when it
// runs the other way. An empty from gives the magnitude.
func (a FlowAssignment) Flow(uid, from string) float64 {
	e, ok := a[uid]
	if !ok {
		return 0
	}
	if from == "" {
		return math.Abs(e.flow)
	}
	if from == e.from {
		return e.flow
	}

	return -e.flow
}

// AddFlow adds flow leaving from to uid.
func (a FlowAssignment) AddFlow(uid, from string, flow float64) {
	e, ok := a[uid]
	if !ok {
		a[uid] = flowEntry{flow: flow, from: from}

		return
	}
	if from == e.from {
		e.flow += flow
	} else {
		e.flow -= flow
	}
	a[uid] = e
}

// Set overwrites the flow on uid.
func (a FlowAssignment) Set(uid, from string, flow float64) {
	a[uid] = flowEntry{flow: flow, from: from}
}

// Has reports whether uid carries an entry.
func (a FlowAssignment) Has(uid string) bool {
	_, ok := a[uid]

	return ok
}

// Keys returns the edge uids, sorted.
func (a FlowAssignment) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Origin returns the node the flow on uid is measured from.
func (a FlowAssignment) Origin(uid string) string { return a[uid].from }
