// Package network is the entity model the solvers work on: the closed set
// of drawable entities, the calculation records solvers write, the store
// that holds both, and the flow graph built from them once per pass.
//
// The flow graph is a core.Graph[FlowNode, FlowEdge]. A FlowNode is an
// entity together with the connection it is approached through, so a tee
// with three pipes is three nodes joined by FITTING_FLOW edges rather than
// one. Every flow source hangs off a single synthetic root node through a
// directed FLOW_SOURCE_EDGE, which lets undirected walks tell the supplied
// side of a pipe from the dry side.
//
// Solvers never pick pipe sizes themselves: they hand flow requirements to
// a PipeSizer, which CatalogSizer implements against the catalog.
package network
