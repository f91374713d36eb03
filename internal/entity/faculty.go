package entity

type Faculty struct {
	ID    int    `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Color string `json:"color" db:"color"`
}

type CreateFacultyParams struct {
	Name  string `query:"name"`
	Color string `query:"color"`
}

type FacultyFilter struct {
	Color       string `query:"color"`
	FacultyName string `query:"facultyName"`
}
