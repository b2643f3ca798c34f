package directory

import (
	"bytes"
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"frontline-citizen-be/internal/entity"
)

//go:embed data/*.csv
var datasets embed.FS

const earthRadiusKm = 6371.0

// Directory is an immutable, in-memory geo index of service facilities.
// It is loaded once at process start and safe for unbounded concurrent reads.
type Directory struct {
	byKind map[entity.FacilityKind][]entity.Facility
}

// Load reads the embedded facility datasets.
func Load() (*Directory, error) {
	hospitals, err := loadDataset("data/hospital.csv", entity.FacilityMedical)
	if err != nil {
		return nil, fmt.Errorf("load hospital dataset: %w", err)
	}
	stations, err := loadDataset("data/police_station.csv", entity.FacilityLawEnforcement)
	if err != nil {
		return nil, fmt.Errorf("load police dataset: %w", err)
	}

	return New(append(hospitals, stations...)), nil
}

// New builds a directory from an explicit facility list. Load order is
// preserved per kind; ties in distance resolve to the earliest entry.
func New(facilities []entity.Facility) *Directory {
	byKind := make(map[entity.FacilityKind][]entity.Facility)
	for _, f := range facilities {
		byKind[f.Kind] = append(byKind[f.Kind], f)
	}
	return &Directory{byKind: byKind}
}

// Nearest returns the facility of the given kind closest to (lat, lon) by
// great-circle distance. With either coordinate missing it returns the first
// facility in load order; with no facilities of the kind it returns nil.
func (d *Directory) Nearest(kind entity.FacilityKind, lat, lon *float64) *entity.Facility {
	facilities := d.byKind[kind]
	if len(facilities) == 0 {
		return nil
	}
	if lat == nil || lon == nil {
		first := facilities[0]
		return &first
	}

	best := 0
	bestDist := Haversine(*lat, *lon, facilities[0].Lat, facilities[0].Lon)
	for i := 1; i < len(facilities); i++ {
		dist := Haversine(*lat, *lon, facilities[i].Lat, facilities[i].Lon)
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}

	found := facilities[best]
	return &found
}

// Count reports how many facilities of a kind are loaded.
func (d *Directory) Count(kind entity.FacilityKind) int {
	return len(d.byKind[kind])
}

// Haversine computes the great-circle distance in kilometers between two
// coordinates on a sphere of radius 6371 km.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dlat := toRadians(lat2 - lat1)
	dlon := toRadians(lon2 - lon1)
	a := math.Pow(math.Sin(dlat/2), 2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Pow(math.Sin(dlon/2), 2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func loadDataset(name string, kind entity.FacilityKind) ([]entity.Facility, error) {
	raw, err := datasets.ReadFile(name)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[h] = i
	}
	for _, required := range []string{"name", "address", "phone", "district", "lat", "lon"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("dataset %s is missing column %q", name, required)
		}
	}

	var facilities []entity.Facility
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		lat, err := strconv.ParseFloat(row[col["lat"]], 64)
		if err != nil {
			return nil, fmt.Errorf("row %q: bad lat: %w", row[col["name"]], err)
		}
		lon, err := strconv.ParseFloat(row[col["lon"]], 64)
		if err != nil {
			return nil, fmt.Errorf("row %q: bad lon: %w", row[col["name"]], err)
		}

		facilities = append(facilities, entity.Facility{
			Kind:     kind,
			Name:     row[col["name"]],
			Address:  row[col["address"]],
			Phone:    row[col["phone"]],
			District: row[col["district"]],
			Lat:      lat,
			Lon:      lon,
		})
	}
	return facilities, nil
}
