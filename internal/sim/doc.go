// Package sim owns the particle world and advances it one tick at a time.
//
// A [World] holds the particle store, the active forces table, the physics
// mode and the compute backend. Tick is a synchronous barrier: it returns
// only after every velocity and position has been updated, and Draw or
// Snapshot never observe a half-updated store.
//
//	w, err := sim.New(particles, forces, life.Emergence, sim.Config{Params: life.DefaultParams()})
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//	w.Tick()
//	sprites := w.Draw(sim.Viewport{Scale: 1, Width: 800, Height: 600})
//
// [Runner] drives a World headlessly for a fixed number of ticks, sampling
// metrics into series for reports.
package sim
