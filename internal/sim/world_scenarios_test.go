package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/plife/internal/compute"
	"github.com/san-kum/plife/internal/life"
	"github.com/san-kum/plife/internal/sim"
)

var _ = Describe("World", func() {
	var (
		params  life.Params
		backend compute.Backend
	)

	BeforeEach(func() {
		params = life.DefaultParams()
		backend = compute.NewCPUBackend(4)
	})

	newWorld := func(particles []life.Particle, forces life.ForcesTable, mode life.PhysicsMode) *sim.World {
		w, err := sim.New(particles, forces, mode, sim.Config{Params: params, Backend: backend, Seed: 42})
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(w.Close)
		return w
	}

	Context("in real mode", func() {
		It("pulls an attracted particle toward its partner with bounded force", func() {
			var forces life.ForcesTable
			forces.Set(life.Red, life.Blue, 10)

			w := newWorld([]life.Particle{
				life.NewParticle(life.Vec{500, 500}, life.Vec{}, life.Red),
				life.NewParticle(life.Vec{600, 500}, life.Vec{}, life.Blue),
			}, forces, life.Real)

			w.Tick()

			red := w.Snapshot()[0]
			Expect(red.Velocity.X()).To(BeNumerically(">", 0))
			Expect(red.Velocity.X()).To(BeNumerically("~", params.MaxAppliedForce*params.ForceScalar, 1e-6))
			Expect(red.Velocity.Y()).To(BeZero())
		})

		It("only integrates a lone particle", func() {
			var forces life.ForcesTable
			forces.Set(life.Green, life.Green, 1)

			w := newWorld([]life.Particle{
				life.NewParticle(life.Vec{100, 100}, life.Vec{2, -3}, life.Green),
			}, forces, life.Real)

			w.Tick()

			p := w.Snapshot()[0]
			Expect(p.Velocity).To(Equal(life.Vec{2, -3}))
			Expect(p.Position).To(Equal(life.Vec{102, 97}))
		})

		It("reflects off the left edge", func() {
			w := newWorld([]life.Particle{
				life.NewParticle(life.Vec{1, 300}, life.Vec{-5, 0}, life.Yellow),
			}, life.ForcesTable{}, life.Real)

			w.Tick()

			p := w.Snapshot()[0]
			Expect(p.Position.X()).To(BeZero())
			Expect(p.Velocity.X()).To(Equal(float32(5)))
		})
	})

	Context("in emergence mode", func() {
		It("applies friction before accelerating", func() {
			w := newWorld([]life.Particle{
				life.NewParticle(life.Vec{1000, 1000}, life.Vec{1, 0}, life.Red),
			}, life.ForcesTable{}, life.Emergence)

			w.Tick()

			p := w.Snapshot()[0]
			Expect(p.Velocity.X()).To(BeNumerically("~", params.Friction, 1e-6))
		})

		It("respawns escaped particles inside the world without touching velocity", func() {
			w := newWorld([]life.Particle{
				life.NewParticle(life.Vec{1999, 1000}, life.Vec{10, 0}, life.Blue),
			}, life.ForcesTable{}, life.Emergence)

			w.Tick()

			p := w.Snapshot()[0]
			Expect(p.Position.X()).To(BeNumerically(">=", 0))
			Expect(p.Position.X()).To(BeNumerically("<", params.Width))
			Expect(p.Position.Y()).To(BeNumerically(">=", 0))
			Expect(p.Position.Y()).To(BeNumerically("<", params.Height))
			Expect(p.Velocity.X()).To(BeNumerically("~", 10*params.Friction, 1e-5))
		})
	})

	It("treats an empty world as a no-op", func() {
		w := newWorld(nil, life.ForcesTable{}, life.Emergence)

		Expect(w.Tick).NotTo(Panic())
		Expect(w.Len()).To(BeZero())
		Expect(w.Ticks()).To(Equal(1))
	})

	It("applies a new forces table from the next tick", func() {
		w := newWorld(nil, life.ForcesTable{}, life.Real)

		table := life.ForcesTable{}.With(life.Red, life.Green, 0.4)
		w.SetForces(table)
		Expect(w.Forces()).To(Equal(table))

		w.ResetForces()
		Expect(w.Forces()).To(Equal(life.ForcesTable{}))
	})
})
