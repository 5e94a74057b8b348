package mapping

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"larana.GO/model/entity/catalog"
	"larana.GO/model/repository"
)

type MappingRepository struct {
	db *gorm.DB
}

func NewMappingRepository(db *gorm.DB) *MappingRepository {
	return &MappingRepository{db: db}
}

// Load returns the saved mapping set for source, or repository.ErrNotFound.
func (r *MappingRepository) Load(source string) ([]catalog.FieldMapping, error) {
	var set catalog.FieldMappingSet
	err := r.db.First(&set, "source = ?", source).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s mappings: %w", source, err)
	}
	return []catalog.FieldMapping(set.Mappings), nil
}

// Save upserts the mapping set for source.
func (r *MappingRepository) Save(source string, mappings []catalog.FieldMapping) error {
	set := catalog.FieldMappingSet{Source: source, Mappings: mappings}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source"}},
		DoUpdates: clause.AssignmentColumns([]string{"mappings", "updated_at"}),
	}).Create(&set).Error
	if err != nil {
		return fmt.Errorf("save %s mappings: %w", source, err)
	}
	return nil
}

// Reset deletes the saved set so callers fall back to defaults.
func (r *MappingRepository) Reset(source string) error {
	if err := r.db.Delete(&catalog.FieldMappingSet{}, "source = ?", source).Error; err != nil {
		return fmt.Errorf("reset %s mappings: %w", source, err)
	}
	return nil
}
