// Package sim bootstraps a simulation from a scenario file and supervises
// its single run.
//
// # Reading Guide
//
// Start with these files:
//   - simulation.go: the Simulation contract, Factory, Handle and RunOutcome
//   - registry.go: className → Factory resolution and construction
//   - supervisor.go: construct + run once, with failure isolation
//   - launcher.go: the whole bootstrap sequence used by the CLI
//
// # Architecture
//
// The sim package defines the contract and the bootstrap; everything else
// lives in sub-packages:
//   - sim/param/: the read-only parameter tree
//   - sim/scenario/: scenario loading (XML, YAML, HCL) and the root contract
//   - sim/diag/: the mirrored console + file diagnostic sink
//   - sim/history/: SQLite ledger of run outcomes
//   - sim/demo/: DemoSim, a minimal implementation
//
// Implementation packages register their factories from init() into
// DefaultRegistry, so adding a simulation kind never touches the bootstrap:
//
//	func init() {
//		sim.Register("DemoSim", New)
//	}
//
// A binary selects the kinds it ships by importing those packages.
package sim
