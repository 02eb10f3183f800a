package fts

import "sort"

// friendlyNames maps block name and parameter tag to a human-readable
// description. The table covers the commonly inspected parameters; tags not
// listed here are still decoded, they just render without a description.
var friendlyNames = map[string]map[string]string{
	"Data Parameters": {
		"DPF": "Data Point Format",
		"FXV": "Frequency of First Point",
		"LXV": "Frequency of Last Point",
		"DAT": "Date of Measurement",
		"TIM": "Time of Measurement",
	},
	"Acquisition Parameters": {
		"AQM": "Acquisition Mode",
		"HFW": "Wanted High Frequency Limit",
		"LFW": "Wanted Low Frequency Limit",
		"NSS": "Sample Scans",
		"RES": "Resolution",
	},
	"FT Parameters": {
		"APF": "Apodization Function",
		"PHR": "Phase Resolution",
		"ZFF": "Zero Filling Factor",
	},
	"Optic Parameters": {
		"APT": "Aperture Setting",
		"BMS": "Beamsplitter Setting",
		"CHN": "Measurement Channel",
		"DTC": "Detector Setting",
		"HPF": "High Pass Filter",
		"LPF": "Low Pass Filter",
		"OPF": "Optical Filter Setting",
		"PGN": "Preamplifier Gain",
		"SRC": "Source Setting",
		"VEL": "Scanner Velocity",
	},
	"Instrument Parameters": {
		"HFL": "High Folding Limit",
		"LFL": "Low Folding Limit",
		"LWN": "Laser Wavenumber",
		"GFW": "Number of Good FW Scans",
		"GBW": "Number of Good BW Scans",
		"BFW": "Number of Bad FW Scans",
		"BBW": "Number of Bad BW Scans",
		"PKA": "Peak Amplitude",
		"PKL": "Peak Location",
	},
}

// FriendlyName returns the human-readable description of a parameter, or ""
// when none is known. Kind-suffixed block names ("Data Parameters SpSm")
// fall back to their base entry.
func FriendlyName(blockName, tag string) string {
	if m, ok := friendlyNames[blockName]; ok {
		return m[tag]
	}
	for base, m := range friendlyNames {
		if len(blockName) > len(base) && blockName[:len(base)] == base {
			return m[tag]
		}
	}
	return ""
}

// HeaderRow is one line of a header report.
type HeaderRow struct {
	Block       string
	Tag         string
	Description string
	Value       Value
}

// HeaderReport returns every decoded parameter as ordered rows: blocks in
// name order, tags in name order within each block.
func (f *File) HeaderReport() []HeaderRow {
	blocks := make([]string, 0, len(f.header))
	for name := range f.header {
		blocks = append(blocks, name)
	}
	sort.Strings(blocks)

	var rows []HeaderRow
	for _, block := range blocks {
		tags := make([]string, 0, len(f.header[block]))
		for tag := range f.header[block] {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		for _, tag := range tags {
			rows = append(rows, HeaderRow{
				Block:       block,
				Tag:         tag,
				Description: FriendlyName(block, tag),
				Value:       f.header[block][tag],
			})
		}
	}
	return rows
}
