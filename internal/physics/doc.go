// Package physics models the two-link hinged pendulum.
//
// [DoublePendulum] implements the [dynamo.System] interface with the
// closed-form Lagrangian equations of motion, and [dynamo.Hamiltonian]
// for energy diagnostics. The [Link] type carries only physical state;
// presentation attributes (colors) belong to the rendering layer.
//
// # Energy Conservation
//
//	dyn := physics.NewDoublePendulum()
//	e0 := dyn.Energy(dyn.StateVector())
//
// A fixed-step RK4 run keeps the drift small for small dt but does not
// conserve energy exactly.
package physics
