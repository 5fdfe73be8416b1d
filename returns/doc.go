// Package returns balances hot-water return loops.
//
// A return loop runs from the outlet of a RETURN_SYSTEM plant, through the
// building, and back to the plant's return node. IdentifyReturns checks
// that the loop is series-parallel between those two nodes and keeps its
// decomposition tree as a Record. The Solver then walks that tree:
//
//   - heat loss of every pipe comes from the thermal package, summed up
//     the tree;
//   - the circulation flow needed to hold the return temperature is split
//     between parallel branches in proportion to their heat loss, and each
//     pipe is resized for the larger of its design and circulation flow
//     until no diameter changes;
//   - each parallel branch gets a balancing valve setting that equalises
//     its pressure drop with the worst sibling.
package returns
