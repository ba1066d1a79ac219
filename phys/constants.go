// Package phys holds the physical constants used throughout the solver.
// Values are CODATA 2018.
package phys

const (
	FundamentalCharge  = 1.602176634e-19  // elementary charge [C]
	BoltzmannEV        = 8.617333262e-5   // Boltzmann constant [eV/K]
	VacuumPermittivity = 8.8541878128e-12 // vacuum permittivity [F/m]
)

// EVToJoules converts an energy in electronvolts to joules.
func EVToJoules(ev float64) float64 { return ev * FundamentalCharge }

// ThermalVoltage returns kT/e at the given temperature [V].
func ThermalVoltage(temp float64) float64 { return BoltzmannEV * temp }
