package site

import (
	"sort"

	"github.com/j-m-dean/goscses/defect"
)

// Set is an ordered collection of sites.
type Set struct {
	Sites []*Site
}

// NewSet wraps sites into a Set.
func NewSet(sites []*Site) *Set { return &Set{Sites: sites} }

// Len returns the number of sites.
func (s *Set) Len() int { return len(s.Sites) }

// Subset returns the sites sharing the given site label, in order.
func (s *Set) Subset(label string) *Set {
	var sub []*Site
	for _, st := range s.Sites {
		if st.Label == label {
			sub = append(sub, st)
		}
	}
	return &Set{Sites: sub}
}

// Labels returns the distinct site labels in first-seen order.
func (s *Set) Labels() []string {
	seen := make(map[string]bool)
	var l []string
	for _, st := range s.Sites {
		if !seen[st.Label] {
			seen[st.Label] = true
			l = append(l, st.Label)
		}
	}
	return l
}

// UniqueX returns the sorted unique site positions.
func (s *Set) UniqueX() []float64 {
	seen := make(map[float64]bool)
	var xs []float64
	for _, st := range s.Sites {
		if !seen[st.X] {
			seen[st.X] = true
			xs = append(xs, st.X)
		}
	}
	sort.Float64s(xs)
	return xs
}

// SortByX orders the sites by ascending position.
func (s *Set) SortByX() {
	sort.SliceStable(s.Sites, func(i, j int) bool { return s.Sites[i].X < s.Sites[j].X })
}

// Species returns the distinct defect species hosted by the set, in
// first-seen order.
func (s *Set) Species() []*defect.Species {
	seen := make(map[*defect.Species]bool)
	var sp []*defect.Species
	for _, st := range s.Sites {
		for _, d := range st.Defects {
			if !seen[d.Species] {
				seen[d.Species] = true
				sp = append(sp, d.Species)
			}
		}
	}
	return sp
}

// SpeciesWithLabel returns the hosted species of the given label.
func (s *Set) SpeciesWithLabel(label string) *defect.Species {
	for _, sp := range s.Species() {
		if sp.Label == label {
			return sp
		}
	}
	return nil
}

// Copy deep-copies the set. Species shared between sites remain shared
// within the copy, so mole-fraction adjustments stay coherent without
// touching the original.
func (s *Set) Copy() *Set {
	fresh := make(map[*defect.Species]*defect.Species)
	sites := make([]*Site, len(s.Sites))
	for i, st := range s.Sites {
		scaling := make([]float64, len(st.Scaling))
		copy(scaling, st.Scaling)
		defects := make([]*defect.AtSite, len(st.Defects))
		for j, d := range st.Defects {
			sp, ok := fresh[d.Species]
			if !ok {
				cp := *d.Species
				sp = &cp
				fresh[d.Species] = sp
			}
			defects[j] = &defect.AtSite{Species: sp, Energy: d.Energy}
		}
		sites[i] = &Site{
			Label:   st.Label,
			X:       st.X,
			Valence: st.Valence,
			Scaling: scaling,
			Defects: defects,
		}
	}
	return &Set{Sites: sites}
}
