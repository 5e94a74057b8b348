package catalog

import (
	"time"

	"gorm.io/datatypes"
)

// Mapping sources.
const (
	SourceOzon        = "ozon"
	SourceSpreadsheet = "spreadsheet"
)

// FieldMapping routes one external field (dotted path allowed) to a catalog field.
type FieldMapping struct {
	SourceField  string `json:"sourceField"`
	CatalogField string `json:"catalogField"`
	Enabled      bool   `json:"enabled"`
}

// FieldMappingSet is the saved mapping set for one source.
type FieldMappingSet struct {
	Source    string                            `gorm:"column:source;primaryKey;type:varchar(32)" json:"source"`
	Mappings  datatypes.JSONSlice[FieldMapping] `gorm:"column:mappings" json:"mappings"`
	UpdatedAt time.Time                         `gorm:"column:updated_at" json:"updatedAt"`
}

func (FieldMappingSet) TableName() string {
	return "catalog_field_mappings"
}
