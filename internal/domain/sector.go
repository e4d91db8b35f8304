package domain

// SectorType classifies a sector name into one of the two supported
// record families.
type SectorType string

const (
	SectorTypeOilGas   SectorType = "Oil & Gas"
	SectorTypeLandfill SectorType = "Landfill"
)

// Sector names recognized per sector type. These lists are fixed reference
// data; an unrecognized name cannot be classified and is fatal for the caller.
var (
	OilGasSectors = []string{
		"Oil & Gas",
		"Oil and Gas Production",
		"Natural Gas Transmission",
		"Natural Gas Distribution",
		"Refining",
	}

	LandfillSectors = []string{
		"Landfill",
		"Municipal Solid Waste Landfill",
		"Industrial Landfill",
		"Composting",
	}
)

// ClassifySector maps a sector name to its sector type.
func ClassifySector(sector string) (SectorType, bool) {
	for _, name := range OilGasSectors {
		if name == sector {
			return SectorTypeOilGas, true
		}
	}
	for _, name := range LandfillSectors {
		if name == sector {
			return SectorTypeLandfill, true
		}
	}
	return "", false
}

// Source is one row of the sources table: the foreign-key side of sector
// resolution.
type Source struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
}
