package avl

import (
	"fmt"
	"os"
	"strings"
)

// SweepConfig describes a flight-condition sweep: either a range of
// angles of attack or a fixed lift-coefficient target solved at each
// listed alpha.
type SweepConfig struct {
	AlphaMin  float64
	AlphaMax  float64
	AlphaStep float64

	// CLTarget, when set, constrains CL and lets AVL find alpha.
	CLTarget *float64

	Mach float64
}

// Alphas expands the sweep range into the case list. The bounds are
// inclusive; a non-positive step yields a single case at AlphaMin.
func (c SweepConfig) Alphas() []float64 {
	if c.AlphaStep <= 0 {
		return []float64{c.AlphaMin}
	}
	var out []float64
	// Half-step slack keeps the upper bound inclusive under float
	// accumulation.
	for a := c.AlphaMin; a <= c.AlphaMax+c.AlphaStep/2; a += c.AlphaStep {
		out = append(out, a)
	}
	return out
}

// BuildRunFile renders an AVL .run file with one case per sweep point,
// in the exact parameter layout AVL's CASE loader expects.
func BuildRunFile(cfg SweepConfig) string {
	var b strings.Builder
	for i, alpha := range cfg.Alphas() {
		writeRunCase(&b, i+1, alpha, cfg)
	}
	return b.String()
}

// WriteRunFile writes the sweep to path and returns the number of cases.
func WriteRunFile(path string, cfg SweepConfig) (int, error) {
	contents := BuildRunFile(cfg)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return 0, &SerializationError{Path: path, Err: err}
	}
	return len(cfg.Alphas()), nil
}

func writeRunCase(b *strings.Builder, index int, alpha float64, cfg SweepConfig) {
	fmt.Fprintf(b, "---------------------------------------------\n")
	fmt.Fprintf(b, " Run case %2d:  alpha = %6.2f deg\n\n", index, alpha)

	if cfg.CLTarget == nil {
		fmt.Fprintf(b, " alpha        ->  alpha       = %12.5f\n", alpha)
	} else {
		fmt.Fprintf(b, " alpha        ->  CL          = %12.5f\n", *cfg.CLTarget)
	}
	fmt.Fprintf(b, " beta         ->  beta        =   0.00000\n")
	fmt.Fprintf(b, " pb/2V        ->  pb/2V       =   0.00000\n")
	fmt.Fprintf(b, " qc/2V        ->  qc/2V       =   0.00000\n")
	fmt.Fprintf(b, " rb/2V        ->  rb/2V       =   0.00000\n")
	fmt.Fprintf(b, "\n")

	fmt.Fprintf(b, " alpha     = %12.5f     deg\n", alpha)
	fmt.Fprintf(b, " beta      =   0.00000     deg\n")
	fmt.Fprintf(b, " pb/2V     =   0.00000\n")
	fmt.Fprintf(b, " qc/2V     =   0.00000\n")
	fmt.Fprintf(b, " rb/2V     =   0.00000\n")
	if cfg.CLTarget == nil {
		fmt.Fprintf(b, " CL        =   0.00000\n")
	} else {
		fmt.Fprintf(b, " CL        = %12.5f\n", *cfg.CLTarget)
	}
	fmt.Fprintf(b, " CDo       =   0.00000\n")
	fmt.Fprintf(b, " bank      =   0.00000     deg\n")
	fmt.Fprintf(b, " elevation =   0.00000     deg\n")
	fmt.Fprintf(b, " heading   =   0.00000     deg\n")
	fmt.Fprintf(b, " Mach      = %12.5f\n", cfg.Mach)
	fmt.Fprintf(b, " velocity  =   0.00000     ft/s\n")
	fmt.Fprintf(b, " density   =  0.0023769     slug/ft^3\n")
	fmt.Fprintf(b, " grav.acc. =  32.17400     ft/s^2\n")
	fmt.Fprintf(b, " turn_rad. =   0.00000     ft\n")
	fmt.Fprintf(b, " load_fac. =   1.00000\n")
	fmt.Fprintf(b, " X_cg      =   0.00000     ft\n")
	fmt.Fprintf(b, " Y_cg      =   0.00000     ft\n")
	fmt.Fprintf(b, " Z_cg      =   0.00000     ft\n")
	fmt.Fprintf(b, " mass      =   1.00000     slug\n")
	fmt.Fprintf(b, " Ixx       =   1.00000     slug-ft^2\n")
	fmt.Fprintf(b, " Iyy       =   1.00000     slug-ft^2\n")
	fmt.Fprintf(b, " Izz       =   1.00000     slug-ft^2\n")
	fmt.Fprintf(b, " Ixy       =   0.00000     slug-ft^2\n")
	fmt.Fprintf(b, " Iyz       =   0.00000     slug-ft^2\n")
	fmt.Fprintf(b, " Izx       =   0.00000     slug-ft^2\n")
	fmt.Fprintf(b, " visc CL_a =   0.00000\n")
	fmt.Fprintf(b, " visc CL_u =   0.00000\n")
	fmt.Fprintf(b, " visc CM_a =   0.00000\n")
	fmt.Fprintf(b, " visc CM_u =   0.00000\n")
	fmt.Fprintf(b, "\n")
}
