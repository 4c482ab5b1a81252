// register.go adds DemoSim to sim.DefaultRegistry. Binaries that want the
// demo simulation import this package for its side effect.
package demo

import "github.com/simboot/simboot/sim"

// ClassName is the identifier scenarios use to select DemoSim.
const ClassName = "DemoSim"

func init() {
	sim.Register(ClassName, New)
}
