// Package gas sizes fuel-gas pipework by the longest-run method.
//
// A gas component is everything one supply point feeds: a flow source, or
// the outlet of a regulator, up to the next regulator downstream. The
// pressure the supply can spend on pipe friction is what is left after the
// most demanding terminal's inlet pressure and the fixed drops on the way
// to it. Every pipe of the component is sized with the Spitzglass
// correlation as if it were as long as the component's longest run, then
// stepped up until the gas velocity is within the system's limit.
package gas
