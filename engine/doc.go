// Package engine runs one solve pass over a network store.
//
// A pass builds the flow graph, then runs the solvers in a fixed order:
//
//  1. identify hot-water return loops;
//  2. size every branch from its downstream demand;
//  3. size ring mains;
//  4. balance the return loops found in step 1;
//  5. size gas components;
//  6. list what no source reaches and the best-case pressures.
//
// Each solver writes its results into the store's calculation records.
// Per-entity problems end up there as annotations; Solve itself only fails
// when its context is done. The Report summarises what each stage did.
package engine
