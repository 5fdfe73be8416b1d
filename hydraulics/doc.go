// Package hydraulics holds the pipe-flow formulas the solvers share.
//
// Units follow the catalog: diameters in mm, lengths in m, flow in L/s,
// velocity in m/s, pressure in kPa and head in metres of fluid. Head loss
// comes from Darcy–Weisbach with a Colebrook–White friction factor; the
// Hazen–Williams form is kept for materials that only publish a C value.
//
// TernarySearchMin is the one-dimensional minimiser used by loop
// (Hardy Cross) relaxation.
package hydraulics
