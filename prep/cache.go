package prep

import (
	"encoding/gob"
	"fmt"
	"math"
	"os"

	"github.com/maseology/mmio"
)

// SaveGobSitesData writes a parsed sites file cache.
func SaveGobSitesData(fp string, data []*SiteData) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" prep.SaveGobSitesData %v", err)
	}
	if err := gob.NewEncoder(f).Encode(data); err != nil {
		return fmt.Errorf(" prep.SaveGobSitesData %v", err)
	}
	f.Close()
	return nil
}

// LoadGobSitesData reads a parsed sites file cache.
func LoadGobSitesData(fp string) ([]*SiteData, error) {
	var data []*SiteData
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(f).Decode(&data); err != nil {
		f.Close()
		return nil, err
	}
	f.Close()
	return data, nil
}

// LoadSitesData parses the whole sites file, preferring the .gob cache
// beside it and writing one after a fresh parse. The cache only serves
// the default clustering threshold; callers window the result through
// NewStructureData.
func LoadSitesData(fp string, clusterThreshold float64) ([]*SiteData, error) {
	gfp := fp + ".gob"
	cacheable := clusterThreshold == DefaultClusterThreshold
	if cacheable {
		if _, ok := mmio.FileExists(gfp); ok {
			if data, err := LoadGobSitesData(gfp); err == nil {
				return data, nil
			}
		}
	}
	data, err := SitesDataFromFile(fp, math.Inf(-1), math.Inf(1), clusterThreshold)
	if err != nil {
		return nil, err
	}
	if cacheable {
		if err := SaveGobSitesData(gfp, data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// StructureDataFromFile parses a sites file and splits it at the
// calculation window.
func StructureDataFromFile(fp string, xmin, xmax float64, system string, clusterThreshold float64) (*StructureData, error) {
	data, err := LoadSitesData(fp, clusterThreshold)
	if err != nil {
		return nil, err
	}
	return NewStructureData(data, xmin, xmax, system)
}
