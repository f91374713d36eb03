package entity

type Student struct {
	ID        int    `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Age       int    `json:"age" db:"age"`
	FacultyID *int   `json:"faculty_id,omitempty" db:"faculty_id"`
}

type CreateStudentParams struct {
	Name string `query:"name"`
	Age  int    `query:"age"`
}

type AgeRangeRequest struct {
	From int `query:"from"`
	To   int `query:"to"`
}
