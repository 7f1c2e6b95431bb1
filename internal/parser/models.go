package parser

// Group and dataset names of the perturbation file layout.
const (
	PerturbGroup = "Perturb"
	HeaderGroup  = "Header"

	WavenumbersName       = "Wavenumbers"
	RedshiftsName         = "Redshifts"
	LogConformalTimesName = "Log conformal times"
	TransferFunctionsName = "Transfer functions"
	OmegasName            = "Omegas"

	FunctionTitlesAttr = "FunctionTitles"
)

// Background series stored per time sample in the Perturb group.
const (
	GrowthFactorName    = "Growth factors (D)"
	GrowthRateName      = "Logarithmic growth rates (f)"
	GrowthRatePrimeName = "Logarithmic growth rate conformal derivatives (f')"
	HubbleRateName      = "Hubble rates"
	HubbleRatePrimeName = "Hubble rate conformal time derivatives"
	OmegaMatterName     = "Omega matter"
	OmegaRadiationName  = "Omega radiation"
)

// BackgroundSeries lists the background datasets in table order.
var BackgroundSeries = []string{
	GrowthFactorName, GrowthRateName, GrowthRatePrimeName,
	HubbleRateName, HubbleRatePrimeName, OmegaMatterName, OmegaRadiationName,
}

// PerturbFile holds the raw arrays of a perturbation file exactly as stored.
// Multi-dimensional arrays are flattened in row-major order:
// Transfer[(f*KSize + i)*TauSize + j] and Omegas[f*TauSize + j].
type PerturbFile struct {
	Path              string
	Wavenumbers       []float64
	Redshifts         []float64
	LogConformalTimes []float64
	Transfer          []float64
	Omegas            []float64
	Titles            []string
	Background        map[string][]float64 // keyed by the names in BackgroundSeries
	Warnings          []string             // non-fatal problems met while reading
}

// NewPerturbFile initializes an empty PerturbFile.
func NewPerturbFile(path string) *PerturbFile {
	return &PerturbFile{
		Path:       path,
		Background: make(map[string][]float64),
		Warnings:   make([]string, 0),
	}
}

// KSize is the number of wavenumbers.
func (p *PerturbFile) KSize() int { return len(p.Wavenumbers) }

// TauSize is the number of time samples.
func (p *PerturbFile) TauSize() int { return len(p.LogConformalTimes) }

// NumFunctions is the number of transfer function titles.
func (p *PerturbFile) NumFunctions() int { return len(p.Titles) }
