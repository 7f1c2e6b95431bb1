package analysis

// PerturbAtRedshift interpolates every function to redshift z on the full
// wavenumber grid. Columns are "k" followed by the function titles.
func (d *Dataset) PerturbAtRedshift(z float64) (*Table, error) {
	lt, err := d.timeline.LogConformalTime(z)
	if err != nil {
		return nil, err
	}

	b := NewTableBuilder(len(d.Wavenumbers)).Add("k", d.Wavenumbers)
	for f, s := range d.surfaces {
		values, err := s.AtTime(lt, d.Wavenumbers)
		if err != nil {
			return nil, err
		}
		b.Add(d.Titles[f], values)
	}
	return b.Build()
}

// PerturbAtWavenumber interpolates every function to wavenumber k at each
// stored time sample. Columns are "z", "conformal_time" and the function
// titles.
func (d *Dataset) PerturbAtWavenumber(k float64) (*Table, error) {
	if err := checkDomain("k", k, d.Wavenumbers[0], d.Wavenumbers[len(d.Wavenumbers)-1]); err != nil {
		return nil, err
	}

	b := NewTableBuilder(len(d.LogConformalTimes)).
		Add("z", d.Redshifts).
		Add("conformal_time", d.ConformalTimes)
	for f, s := range d.surfaces {
		values, err := s.AtWavenumber(d.LogConformalTimes, k)
		if err != nil {
			return nil, err
		}
		b.Add(d.Titles[f], values)
	}
	return b.Build()
}
