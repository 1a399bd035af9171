// Package montepi estimates π by Monte Carlo sampling and keeps the result as
// a per-pixel color average that can be shown as a texture.
//
// # Overview
//
// Every sample is a pair of floats drawn from a small hash-scrambled
// generator. The pair picks a pixel in the current texture and, remapped to
// [-1, 1]², is classified as inside or outside the unit circle. The inside or
// outside color is added to that pixel's running sums, so after many samples
// each pixel shows the average color of everything that landed on it and the
// inside/total ratio converges to π/4.
//
// # Quick Start
//
//	sim, err := montepi.New(512, 512)
//	if err != nil {
//		return err
//	}
//	for range 600 {
//		if err := sim.Frame(10); err != nil {
//			return err
//		}
//	}
//	fmt.Println(sim.Stats().Estimate())
//
// # Display
//
// A Simulation pushes its packed RGBA8888 pixels to a [Surface] after every
// resolve and after every reset. The GUI binds a GPU texture to it; tests bind
// a recorder.
//
// # Determinism
//
// The generator starts from state 0 unless [WithSeed] says otherwise, so two
// runs with the same settings produce identical images and statistics.
package montepi
