package cmd

// Simulation kinds shipped with the binary. Each import registers its
// factories in sim.DefaultRegistry from init().
import _ "github.com/simboot/simboot/sim/demo"
