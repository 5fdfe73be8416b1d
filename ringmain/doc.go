// Package ringmain sizes ring mains: undirected loops of pipes fed from a
// single point and drawn on by branches along the way.
//
// FindRingMains picks up the pipe loops the demand pass could not size.
// For each one the Solver works out the flow every sink branch draws, then
// sizes the ring by the method the document selects:
//
//   - ISOLATION_CASES closes the outermost flagged isolation valves in turn
//     and sizes every pipe for the demand it would carry with the ring
//     opened there;
//   - PSD_FLOW_RATE_DISTRIBUTED relaxes the flow around the loop until the
//     head loss both ways round is equal (Hardy Cross);
//   - MAX_DISTRIBUTED_AND_ISOLATION_CASES sizes for the larger of the two.
//
// Rings with more than one feed, or with branches whose demand is unknown,
// are tagged on their pipes and left unsized.
package ringmain
