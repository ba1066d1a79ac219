// Package prep reads and prepares the structural input for a
// space-charge calculation: parsing site data files, deriving grid
// limits from the boundary-adjacent sites, and building the defect site
// set the solver runs on.
package prep

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/maseology/mmio"
)

// ErrInputFormat reports a sites data line that does not match the
// expected syntax.
var ErrInputFormat = errors.New("prep: invalid site input line")

// DefaultClusterThreshold is the site spacing [m] under which two
// planes are treated as one.
const DefaultClusterThreshold = 1e-10

const (
	labelPattern = `[A-Za-z_][A-Za-z0-9_]*`
	floatPattern = `[-+]?[0-9]+\.?[0-9]*(?:[eE][-+]?[0-9]+)?`
)

var siteLine = regexp.MustCompile(`^\s*` + labelPattern +
	`\s+` + floatPattern +
	`\s+` + floatPattern +
	`(?:\s+` + labelPattern + `\s+` + floatPattern + `)+\s*$`)

// DefectData is one defect species' segregation energy at a site.
type DefectData struct {
	Label  string
	Energy float64 // [eV]
}

// SiteData is one parsed line of a sites data file:
//
//	label valence x {defect_label defect_energy}+
type SiteData struct {
	Label   string
	Valence float64
	X       float64 // [m]
	Defects []DefectData
}

// ValidSiteDataLine reports whether line matches the sites file syntax.
func ValidSiteDataLine(line string) bool {
	return siteLine.MatchString(line)
}

// ParseSiteData parses one sites file line.
func ParseSiteData(line string) (*SiteData, error) {
	if !ValidSiteDataLine(line) {
		return nil, fmt.Errorf(" prep.ParseSiteData %q: %w", line, ErrInputFormat)
	}
	f := strings.Fields(line)
	valence, err := strconv.ParseFloat(f[1], 64)
	if err != nil {
		return nil, fmt.Errorf(" prep.ParseSiteData %q: %w", line, ErrInputFormat)
	}
	x, err := strconv.ParseFloat(f[2], 64)
	if err != nil {
		return nil, fmt.Errorf(" prep.ParseSiteData %q: %w", line, ErrInputFormat)
	}
	sd := &SiteData{
		Label:   f[0],
		Valence: valence,
		X:       x,
		Defects: make([]DefectData, 0, (len(f)-3)/2),
	}
	for i := 3; i < len(f); i += 2 {
		e, err := strconv.ParseFloat(f[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf(" prep.ParseSiteData %q: %w", line, ErrInputFormat)
		}
		sd.Defects = append(sd.Defects, DefectData{Label: f[i], Energy: e})
	}
	return sd, nil
}

// InputString renders the site back into its sites file form.
func (sd *SiteData) InputString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %g %g", sd.Label, sd.Valence, sd.X)
	for _, d := range sd.Defects {
		fmt.Fprintf(&b, " %s %g", d.Label, d.Energy)
	}
	return b.String()
}

// SitesDataFromFile parses a sites data file, keeps the sites strictly
// inside (xmin, xmax), sorts them ascending by position and clusters
// near-coincident positions onto their cluster mean.
func SitesDataFromFile(fp string, xmin, xmax, clusterThreshold float64) ([]*SiteData, error) {
	lns, err := mmio.ReadTextLines(fp)
	if err != nil {
		return nil, fmt.Errorf(" prep.SitesDataFromFile %s: %v", fp, err)
	}
	var data []*SiteData
	for _, ln := range lns {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		sd, err := ParseSiteData(ln)
		if err != nil {
			return nil, fmt.Errorf(" prep.SitesDataFromFile %s: %w", fp, err)
		}
		if sd.X > xmin && sd.X < xmax {
			data = append(data, sd)
		}
	}
	sort.SliceStable(data, func(i, j int) bool { return data[i].X < data[j].X })
	ClusterSimilarSites(data, clusterThreshold)
	return data, nil
}

// ClusterSimilarSites reassigns each site's position to the mean of its
// cluster, clusters being runs of sorted positions whose consecutive
// gaps are within the threshold. Input order is preserved.
func ClusterSimilarSites(data []*SiteData, threshold float64) {
	if len(data) < 2 {
		return
	}
	xs := make([]float64, len(data))
	for i, sd := range data {
		xs[i] = sd.X
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	means := make(map[float64]float64) // position -> cluster mean
	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i == len(sorted) || sorted[i]-sorted[i-1] > threshold {
			sum := 0.
			for _, x := range sorted[start:i] {
				sum += x
			}
			mean := sum / float64(i-start)
			for _, x := range sorted[start:i] {
				means[x] = mean
			}
			start = i
		}
	}
	for i, sd := range data {
		sd.X = means[xs[i]]
	}
}
