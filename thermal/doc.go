// Package thermal computes the steady heat loss of an insulated pipe run.
//
// The loss per metre is found by a fixed point on the outer surface
// temperature Ts. For a guess of Ts the resistances in series are
//
//	R_wall = ln(r2/r1) / (2π k_pipe)
//	R_ins  = ln(r3/r2) / (2π k_ins(T_mean))
//	R_out  = 1 / ((h_conv + h_rad) · π · D3)
//
// where h_conv blends forced (Hilpert) and free (Churchill–Chu) convection
// as Nu = (Nu_f³ + Nu_n³)^(1/3), and h_rad = εσ(Ts² + Ta²)(Ts + Ta). The
// loss q = ΔT / ΣR then gives a new surface temperature Ta + q·R_out, and
// successive guesses are accelerated with the secant method.
package thermal
