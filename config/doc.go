// Package config holds the document-level parameters a solve pass reads:
// the flow systems (fluid, pipe material, velocity limits, insulation) and
// the calculation parameters (ring-main method, ambient conditions).
//
// Documents are YAML, decoded on top of Default so that a file only needs
// to name what it changes, then checked with struct validation and
// against a catalog.
package config
