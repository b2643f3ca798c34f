package entity

// FacilityKind distinguishes the two directory datasets.
type FacilityKind string

const (
	FacilityMedical        FacilityKind = "medical"
	FacilityLawEnforcement FacilityKind = "law-enforcement"
)

// Facility is a physical service location. Records are loaded once at process
// start and shared read-only across all concurrent cases.
type Facility struct {
	Kind     FacilityKind `json:"kind"`
	Name     string       `json:"name"`
	Address  string       `json:"address"`
	Phone    string       `json:"phone"`
	District string       `json:"district"`
	Lat      float64      `json:"lat"`
	Lon      float64      `json:"lon"`
}
