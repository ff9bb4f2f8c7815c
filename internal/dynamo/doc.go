// Package dynamo provides the core primitives shared by the memristor
// simulation engine.
//
// The package defines the small vocabulary every other core package speaks:
//
//   - [Params]: named scalar parameter values for one run
//   - [ParameterInfo]: static metadata describing one tunable parameter
//   - [Signal]: input voltage as a pure function of time
//   - [Window]: boundary window F(x, i) bounding the state drift rate
//   - [Model]: a device model exposing Current and StateDerivative
//
// # Example
//
//	model := physics.NewHPLabs()
//	v, _ := signal.New(signal.Sine, signal.Params{Vp: 1, Vn: 1, Frequency: 1}, 2)
//	w, _ := window.New(window.Joglekar, 7, 1)
//	dx := model.StateDerivative(0.25, 0.1, v, params, w)
//
// # Thread Safety
//
// Everything here is immutable once built. Models hold no state, so a single
// Model value may be shared by concurrent simulation runs.
package dynamo
