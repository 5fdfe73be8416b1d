// Package psd accumulates peak-simultaneous-demand counts and turns them
// into design flow rates through a catalog standard.
//
// A Profile is what a branch of the network asks for: loading units (or
// design-flow units under the DIN method), dwellings, continuous flow and
// gas load. Profiles are summed with Merge, which is plain field-wise
// addition, so the order branches are combined in never changes the
// result.
//
// Lookup then resolves a profile into L/s:
//
//	units      → PSD standard (interpolated table, or a·U^b − c)
//	dwellings  → dwelling table, added on top
//	continuous → added as is
package psd
