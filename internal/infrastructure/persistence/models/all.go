package models

// All returns every model for schema migration.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&TokenModel{},
		&NotebookModel{},
		&ExecutionModel{},
		&AnalysisModel{},
		&PackageModel{},
	}
}
