package sim_test

// Blank import triggers sim/demo's init(), which registers DemoSim in
// sim.DefaultRegistry for the external tests in this package.
import _ "github.com/simboot/simboot/sim/demo"
