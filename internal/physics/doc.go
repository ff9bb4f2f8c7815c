// Package physics provides the memristor device models.
//
// Each model implements [dynamo.Model] and is selected by its string id:
//
//   - [HPLabs] ("hp_labs"): linear ion-drift model of the HP Labs TiO2 device
//   - [Yakopcic] ("yakopcic"): generalized threshold model with an
//     exponential state-boundary window
//
// Models are stateless. Parameters arrive as a [dynamo.Params] map on every
// call and must contain every name listed by Parameters(); a missing entry
// reads as zero and generally produces NaN or Inf.
//
// # Example
//
//	m := physics.NewYakopcic()
//	p := dynamo.Defaults(m.Parameters())
//	i := m.Current(0.1, 0.5, p)
package physics
