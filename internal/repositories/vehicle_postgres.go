package repositories

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"carconvo/internal/models/db_models"
	"carconvo/internal/models/domain_models"
	"carconvo/pkg/utils"
)

// NewPostgresVehicleRepository performs a one-shot load of the vehicles table
// and serves the result from memory. The database is only a catalog source;
// nothing is written back during a session.
func NewPostgresVehicleRepository(db *gorm.DB) (VehicleRepository, error) {
	var rows []db_models.Vehicle
	if err := db.Order("sort_order asc").Find(&rows).Error; err != nil {
		log.Printf("Error loading vehicle catalog from postgres: %v", err)
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	vehicles := make([]domain_models.Vehicle, 0, len(rows))
	for _, row := range rows {
		v, err := row.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrEmptyCatalog, err)
		}
		vehicles = append(vehicles, v)
	}

	return NewStaticVehicleRepository(vehicles)
}
