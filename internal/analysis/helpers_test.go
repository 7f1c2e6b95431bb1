package analysis

import (
	"github.com/user/classex_explore_go/internal/parser"
)

var (
	testKs        = []float64{1e-4, 1e-3, 1e-2, 1e-1, 1}
	testRedshifts = []float64{100, 10, 1, 0.5, 0}
	testLogTaus   = []float64{2, 4, 6, 6.5, 7}
)

// syntheticFile builds a perturbation file whose transfer functions are
// linear in log conformal time: T_f(k_i, lt) = value(f, i) + slope(f) * lt.
// omegas holds one density fraction history per title.
func syntheticFile(titles []string, omegas [][]float64, value func(f, i int) float64, slope func(f int) float64) *parser.PerturbFile {
	p := parser.NewPerturbFile("synthetic")
	p.Wavenumbers = append([]float64(nil), testKs...)
	p.Redshifts = append([]float64(nil), testRedshifts...)
	p.LogConformalTimes = append([]float64(nil), testLogTaus...)
	p.Titles = titles

	nk, nt := len(testKs), len(testLogTaus)
	p.Transfer = make([]float64, len(titles)*nk*nt)
	for f := range titles {
		for i := 0; i < nk; i++ {
			for j, lt := range testLogTaus {
				p.Transfer[(f*nk+i)*nt+j] = value(f, i) + slope(f)*lt
			}
		}
	}
	for _, row := range omegas {
		p.Omegas = append(p.Omegas, row...)
	}

	p.Background[parser.GrowthFactorName] = []float64{0.01, 0.1, 0.6, 0.8, 1}
	p.Background[parser.GrowthRateName] = []float64{1, 1, 0.9, 0.7, 0.5}
	p.Background[parser.GrowthRatePrimeName] = []float64{0, 0, -0.01, -0.02, -0.03}
	p.Background[parser.HubbleRateName] = []float64{50, 2, 0.2, 0.1, 0.07}
	p.Background[parser.HubbleRatePrimeName] = []float64{-1, -0.1, -0.01, 0, 0}
	p.Background[parser.OmegaMatterName] = []float64{0.99, 0.99, 0.8, 0.6, 0.31}
	p.Background[parser.OmegaRadiationName] = []float64{0.01, 0.001, 1e-4, 1e-4, 1e-4}
	return p
}

func defaultTitles() []string { return []string{"d_cdm", "d_b", "t_b", "d_g"} }

func defaultOmegas() [][]float64 {
	return [][]float64{
		{0.8, 0.8, 0.65, 0.5, 0.26},
		{0.15, 0.15, 0.12, 0.1, 0.05},
		{0, 0, 0, 0, 0},
		{0.05, 0.01, 1e-3, 1e-4, 5e-5},
	}
}

func defaultFile() *parser.PerturbFile {
	return syntheticFile(defaultTitles(), defaultOmegas(),
		func(f, i int) float64 { return float64(10*(f+1) + i) },
		func(f int) float64 { return 0.5 * float64(f+1) })
}

// unitFile has T = 1 everywhere.
func unitFile(titles []string) *parser.PerturbFile {
	omegas := make([][]float64, len(titles))
	for f := range omegas {
		omegas[f] = []float64{0.1, 0.1, 0.1, 0.1, 0.1}
	}
	return syntheticFile(titles, omegas,
		func(int, int) float64 { return 1 },
		func(int) float64 { return 0 })
}
