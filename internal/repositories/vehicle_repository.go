package repositories

import (
	"encoding/json"
	"fmt"
	"os"

	"carconvo/internal/models/domain_models"
	"carconvo/pkg/utils"
)

// VehicleRepository serves the vehicle catalog. The catalog is loaded once at
// startup and never mutated, so implementations need no locking; the match
// engine depends on All() returning vehicles in stable insertion order.
type VehicleRepository interface {
	All() []domain_models.Vehicle
	GetByID(id string) (domain_models.Vehicle, bool)
}

type jsonVehicleRepository struct {
	vehicles []domain_models.Vehicle
	byID     map[string]int
}

type vehicleFile struct {
	Cars []domain_models.Vehicle `json:"cars"`
}

// NewJSONVehicleRepository reads the vehicle catalog from a JSON document.
// An empty catalog is a startup failure, not something to serve with.
func NewJSONVehicleRepository(path string) (VehicleRepository, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", utils.ErrEmptyCatalog, path, err)
	}

	var file vehicleFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", utils.ErrEmptyCatalog, path, err)
	}

	return newVehicleRepository(file.Cars)
}

// NewStaticVehicleRepository wraps an in-memory vehicle list. Used by the
// Postgres source after its one-shot load, and by tests.
func NewStaticVehicleRepository(vehicles []domain_models.Vehicle) (VehicleRepository, error) {
	return newVehicleRepository(vehicles)
}

func newVehicleRepository(vehicles []domain_models.Vehicle) (VehicleRepository, error) {
	if len(vehicles) == 0 {
		return nil, fmt.Errorf("%w: no vehicles loaded", utils.ErrEmptyCatalog)
	}

	byID := make(map[string]int, len(vehicles))
	for i, v := range vehicles {
		if v.ID == "" {
			return nil, fmt.Errorf("%w: vehicle %d has no id", utils.ErrEmptyCatalog, i)
		}
		if _, dup := byID[v.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate vehicle id %q", utils.ErrEmptyCatalog, v.ID)
		}
		if v.BasicInfo.MSRP < 0 {
			return nil, fmt.Errorf("%w: vehicle %q has negative msrp", utils.ErrEmptyCatalog, v.ID)
		}
		byID[v.ID] = i
	}

	return &jsonVehicleRepository{vehicles: vehicles, byID: byID}, nil
}

func (r *jsonVehicleRepository) All() []domain_models.Vehicle {
	return r.vehicles
}

func (r *jsonVehicleRepository) GetByID(id string) (domain_models.Vehicle, bool) {
	i, ok := r.byID[id]
	if !ok {
		return domain_models.Vehicle{}, false
	}
	return r.vehicles[i], true
}
