// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.19
//

package aerocalc

const (
	PI      = 3.1415926535897932    // Pi
	C       = 2.99792458e8          // Speed of light [m/s]
	G0      = 9.80665               // Standard gravity [m/s^2]
	GAMMA   = 1.4                   // Specific heat ratio of air
	R_AIR   = 287.05287             // Specific gas constant of air [J/(kg K)]
	MU_E    = 3.986004418e14        // Earth's gravitational parameter [m^3/s^2]
	Re      = 6378137.0             // Earth's radius [m]
	H0      = 70.0                  // Hubble constant [km/s/Mpc]
	MPC     = 3.0856775814913673e22 // Megaparsec [m]
	T0_ISA  = 288.15                // ISA sea level temperature [K]
	P0_ISA  = 101325.0              // ISA sea level pressure [Pa]
	RHO_ISA = 1.225                 // ISA sea level density [kg/m^3]
)

// Solver limits shared by the Newton iterations
const (
	MAX_ITER          = 100   // Maximum number of iterations for every iterative solver
	ISEN_TOL          = 1e-8  // Convergence threshold of the isentropic inverse solvers
	PITOT_TOL         = 1e-5  // Convergence threshold of the pitot inversion
	OBLIQUE_TOL       = 1e-8  // Convergence threshold of the θ-β-M solver [rad]
	OBLIQUE_MAX_STEP  = 15.0  // Maximum Newton step of the θ-β-M solver [deg]
	OBLIQUE_DAMPING   = 0.85  // Damping factor of the θ-β-M Newton step
	THETA_TOL         = 1e-6  // Tolerance on the deflection angle around 0 and θmax [deg]
	SCAN_STEPS        = 1000  // Number of cells of the θmax scan
	GOLDEN_TOL        = 1e-9  // Bracket width of the θmax refinement [rad]
	CRIT_PT_RATIO     = 0.01  // Total pressure ratio defining the critical Mach number
	CRIT_MACH_MAX     = 100.0 // Upper bound of the critical Mach number search
	CRIT_MACH_TOL     = 1e-4  // Bracket width of the critical Mach number search
	MAX_DOWNSTREAM_M1 = 50.0  // Downstream Mach above this multiple of M1 is treated as solver failure
)
