package roomcsv

// Profile describes the header layout of a room inventory spreadsheet.
// Supporting another layout is adding a Profile to profiles.
type Profile struct {
	Name      string
	NumberCol string
	FloorCol  string
	TypeCol   string
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	return []string{p.NumberCol, p.FloorCol, p.TypeCol}
}

// profiles is the ordered list of layouts tried during auto-detection.
var profiles = []Profile{
	{
		Name:      "english",
		NumberCol: "number",
		FloorCol:  "floor",
		TypeCol:   "room_type",
	},
	{
		Name:      "portuguese",
		NumberCol: "Número",
		FloorCol:  "Piso",
		TypeCol:   "Tipo de quarto",
	},
}
