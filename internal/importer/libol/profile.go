package libol

// Profile describes the column layout of a LIBOL holdings export format.
// Adding a new format is just adding a new Profile to the profiles slice.
type Profile struct {
	Name       string
	EditionCol string
	NumberCol  string
	PriceCol   string
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	return []string{p.EditionCol, p.NumberCol, p.PriceCol}
}

// profiles is the ordered list of export formats to try during auto-detection.
// More specific profiles should come first to avoid false matches.
var profiles = []Profile{
	{
		Name:       "holdings",
		EditionCol: "edition_code",
		NumberCol:  "copy_number",
		PriceCol:   "price",
	},
	{
		// Legacy exports with Vietnamese headers, usually windows-1258.
		Name:       "kho",
		EditionCol: "Mã ấn bản",
		NumberCol:  "Số bản sao",
		PriceCol:   "Giá bìa",
	},
}
