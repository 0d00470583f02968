package models

// WasteTypeID identifies an entry of the waste catalog.
type WasteTypeID string

const (
	WastePlastic    WasteTypeID = "plastic"
	WastePaper      WasteTypeID = "paper"
	WasteMetal      WasteTypeID = "metal"
	WasteOrganic    WasteTypeID = "organic"
	WasteElectronic WasteTypeID = "electronic"
	WasteGlass      WasteTypeID = "glass"
)

// WasteType is a catalog entry with the points it is worth in a projection.
type WasteType struct {
	ID     WasteTypeID
	Label  string
	Points int
}

var wasteCatalog = []WasteType{
	{ID: WastePlastic, Label: "Plastic", Points: 100},
	{ID: WastePaper, Label: "Paper", Points: 80},
	{ID: WasteMetal, Label: "Metal", Points: 150},
	{ID: WasteOrganic, Label: "Organic Waste", Points: 60},
	{ID: WasteElectronic, Label: "Electronic Waste", Points: 200},
	{ID: WasteGlass, Label: "Glass", Points: 90},
}

// WasteTypes returns the catalog in display order.
func WasteTypes() []WasteType {
	out := make([]WasteType, len(wasteCatalog))
	copy(out, wasteCatalog)
	return out
}

// LookupWasteType finds a catalog entry by id.
func LookupWasteType(id WasteTypeID) (WasteType, bool) {
	for _, w := range wasteCatalog {
		if w.ID == id {
			return w, true
		}
	}
	return WasteType{}, false
}
