package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/scigolib/hdf5"
)

// ErrNotFound is returned when a dataset or attribute is absent from the file.
var ErrNotFound = errors.New("not found")

// source is the read-only view of a hierarchical store that decodePerturb
// needs. Paths are slash separated without a leading slash, e.g.
// "Perturb/Wavenumbers".
type source interface {
	Float64s(path string) ([]float64, error)
	StringsAttr(group, name string) ([]string, error)
}

// hdf5Source indexes every group and dataset of an open HDF5 file by path.
type hdf5Source struct {
	datasets map[string]*hdf5.Dataset
	groups   map[string]*hdf5.Group
}

func newHDF5Source(file *hdf5.File) *hdf5Source {
	src := &hdf5Source{
		datasets: make(map[string]*hdf5.Dataset),
		groups:   make(map[string]*hdf5.Group),
	}
	file.Walk(func(path string, obj hdf5.Object) {
		switch v := obj.(type) {
		case *hdf5.Group:
			src.groups[normalizePath(path)] = v
		case *hdf5.Dataset:
			src.datasets[normalizePath(path)] = v
		}
	})
	return src
}

func (s *hdf5Source) Float64s(path string) ([]float64, error) {
	ds, ok := s.datasets[path]
	if !ok {
		return nil, fmt.Errorf("dataset '%s': %w", path, ErrNotFound)
	}
	data, err := ds.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset '%s': %w", path, err)
	}
	return data, nil
}

func (s *hdf5Source) StringsAttr(group, name string) ([]string, error) {
	g, ok := s.groups[group]
	if !ok {
		return nil, fmt.Errorf("group '%s': %w", group, ErrNotFound)
	}
	attrs, err := g.Attributes()
	if err != nil {
		return nil, fmt.Errorf("failed to read attributes of '%s': %w", group, err)
	}
	for _, attr := range attrs {
		if attr.Name != name {
			continue
		}
		value, err := attr.ReadValue()
		if err != nil {
			return nil, fmt.Errorf("failed to read attribute '%s/%s': %w", group, name, err)
		}
		return decodeStrings(value)
	}
	return nil, fmt.Errorf("attribute '%s/%s': %w", group, name, ErrNotFound)
}

// ParsePerturbFile reads a perturbation file written by the Boltzmann solver
// export. The file is opened read-only and closed before returning.
func ParsePerturbFile(path string) (*PerturbFile, error) {
	file, err := hdf5.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open perturbation file: %w", err)
	}
	defer file.Close()

	p := NewPerturbFile(path)
	if err := decodePerturb(newHDF5Source(file), p); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// decodePerturb fills p from src and checks that the flattened array
// lengths agree with the axis sizes.
func decodePerturb(src source, p *PerturbFile) error {
	required := []struct {
		name string
		dst  *[]float64
	}{
		{WavenumbersName, &p.Wavenumbers},
		{RedshiftsName, &p.Redshifts},
		{LogConformalTimesName, &p.LogConformalTimes},
		{TransferFunctionsName, &p.Transfer},
		{OmegasName, &p.Omegas},
	}
	for _, r := range required {
		data, err := src.Float64s(PerturbGroup + "/" + r.name)
		if err != nil {
			return err
		}
		*r.dst = data
	}

	titles, err := src.StringsAttr(HeaderGroup, FunctionTitlesAttr)
	if err != nil {
		return err
	}
	p.Titles = titles

	for _, name := range BackgroundSeries {
		data, err := src.Float64s(PerturbGroup + "/" + name)
		if errors.Is(err, ErrNotFound) {
			p.Warnings = append(p.Warnings, fmt.Sprintf("Warning: background series '%s' not present.", name))
			continue
		}
		if err != nil {
			return err
		}
		if len(data) != len(p.LogConformalTimes) {
			p.Warnings = append(p.Warnings, fmt.Sprintf("Warning: background series '%s' has %d samples, expected %d. Ignored.", name, len(data), len(p.LogConformalTimes)))
			continue
		}
		p.Background[name] = data
	}

	return checkShapes(p)
}

func checkShapes(p *PerturbFile) error {
	nk, nt, nf := p.KSize(), p.TauSize(), p.NumFunctions()
	if nk == 0 || nt == 0 {
		return fmt.Errorf("empty axis: %d wavenumbers, %d times", nk, nt)
	}
	if len(p.Redshifts) != nt {
		return fmt.Errorf("'%s' has %d samples but '%s' has %d", RedshiftsName, len(p.Redshifts), LogConformalTimesName, nt)
	}
	if len(p.Transfer) != nf*nk*nt {
		return fmt.Errorf("'%s' has %d values, expected %d functions x %d wavenumbers x %d times", TransferFunctionsName, len(p.Transfer), nf, nk, nt)
	}
	if len(p.Omegas) != nf*nt {
		return fmt.Errorf("'%s' has %d values, expected %d functions x %d times", OmegasName, len(p.Omegas), nf, nt)
	}
	seen := make(map[string]bool, nf)
	for _, title := range p.Titles {
		if seen[title] {
			return fmt.Errorf("duplicate function title '%s'", title)
		}
		seen[title] = true
	}
	return nil
}

// decodeStrings converts an attribute value holding fixed- or variable-length
// strings into UTF-8 text, dropping NUL padding.
func decodeStrings(value interface{}) ([]string, error) {
	var out []string
	switch v := value.(type) {
	case []string:
		out = append(out, v...)
	case string:
		out = append(out, v)
	case [][]byte:
		for _, b := range v {
			out = append(out, string(b))
		}
	case []byte:
		out = append(out, string(v))
	case []interface{}:
		for _, item := range v {
			s, err := decodeStrings(item)
			if err != nil {
				return nil, err
			}
			out = append(out, s...)
		}
	default:
		return nil, fmt.Errorf("unsupported string attribute type %T", value)
	}
	for i, s := range out {
		out[i] = strings.TrimRight(s, "\x00 ")
	}
	return out, nil
}

func normalizePath(path string) string {
	return strings.Trim(path, "/")
}
