package catalog

// Models lists the catalog tables for AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&Product{},
		&Bundle{},
		&BundleItem{},
		&FieldMappingSet{},
	}
}
