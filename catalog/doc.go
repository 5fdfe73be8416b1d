// Package catalog holds the reference data pipe sizing depends on: pipe
// size tables per material, fluid properties, insulation and jacket
// materials, probable-simultaneous-demand standards and the gas
// diversification curve.
//
// Lookups go through Table, a list of rows keyed by closed numeric ranges
// ("15" or "10-20" on disk). Three queries are offered:
//
//   - LowerBound(x): the row containing x, else the nearest row above.
//   - UpperBound(x): the row containing x, else the nearest row below.
//   - Interpolate(t, x, strict): linear between the bracketing rows,
//     clamped to the end rows unless strict.
//
// Catalogs are YAML documents validated with struct tags on load; Default
// returns the embedded one.
package catalog
