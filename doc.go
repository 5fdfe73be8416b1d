// Package hydronet sizes building water and gas pipe networks.
//
// A network is a document of entities (pipes, fittings, valves, plants,
// flow sources, load nodes and system nodes) tagged with the flow system
// they carry. hydronet turns that document into a flow graph and fills in
// a calculation record for every entity: peak flow, pipe size, velocity,
// pressure drop, heat loss and balancing settings. Entities it cannot
// size get a reason and warnings instead.
//
// The work is split into small packages:
//
//	core/           generic keyed graph shared by every algorithm
//	bfs/, dfs/      traversals, bridges and cycle covers
//	dijkstra/       shortest and lowest-loss paths
//	seriesparallel/ series-parallel reduction of return loops
//	catalog/        pipe materials, sizes and fitting coefficients
//	psd/            probable simultaneous demand (loading units, diversity)
//	hydraulics/     Darcy-Weisbach, Colebrook and fitting losses
//	thermal/        heat loss from insulated and bare pipes
//	network/        entities, store, document loading and the flow graph
//	returns/        hot-water return loop sizing and balancing
//	ringmain/       ring main sizing by Hardy Cross
//	gas/            low-pressure gas sizing
//	engine/         one solve pass over a store
//	config/         solver parameters
//	logging/        context-carried logrus loggers
//	metrics/        Prometheus counters and histograms
//
// Quick ASCII example of a ring main:
//
//	    S───A
//	    │   │
//	    V───B
//
//	a source at S feeds taps at A and B both ways round; the ring is
//	opened at the isolation valve V for the worst case.
//
// The hydronet command wraps the engine:
//
//	hydronet solve -f network.yaml -o yaml
package hydronet
