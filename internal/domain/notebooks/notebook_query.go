package notebooks

// NotebookQuery represents filters, pagination and sorting for listing notebooks
type NotebookQuery struct {
	// Title matches notebooks whose title contains it
	Title string `validate:"omitempty,max=255"`

	Limit  int `validate:"omitempty,min=0,max=1000"`
	Offset int `validate:"omitempty,min=0"`

	SortBy    string `validate:"omitempty,oneof=title date_time_created date_time_updated"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewNotebookQuery creates a query ordered by last update, newest first
func NewNotebookQuery() *NotebookQuery {
	return &NotebookQuery{
		SortBy:    "date_time_updated",
		SortOrder: "desc",
	}
}

// Validate for validating NotebookQuery struct
func (q *NotebookQuery) Validate() error {
	return validate(q)
}
