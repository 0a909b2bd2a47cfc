// Package life provides the value types and pure physics of a particle-life
// world.
//
// The package defines:
//
//   - [Color]: closed set of particle colors, usable as a dense index
//   - [Particle]: position, velocity and color of one point particle
//   - [ForcesTable]: asymmetric color-by-color affinity matrix
//   - [PhysicsMode]: selects the force law and boundary policy
//   - [Params]: physics constants shared by every execution backend
//
// # Force law
//
// Distances fed to [Params.Force] are normalized by [Params.WorldUnit]. In
// [Real] mode the force is affinity/d² clamped to MaxAppliedForce. In
// [Emergence] mode particles repel inside RepelRadius and otherwise follow a
// triangular profile that vanishes at one world unit.
//
//	p := life.DefaultParams()
//	f := p.Force(life.Emergence, 0.4, 0.6)
//
// # Thread Safety
//
// Every type here is a plain value. [ForcesTable] is an array, so copies
// never share storage and can be handed to worker goroutines by value.
package life
