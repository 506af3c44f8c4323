package domain

// Employee represents an employee record owned by the remote service
type Employee struct {
	ID     string `json:"id"`
	Name   string `json:"employee_name"`
	Salary *int   `json:"employee_salary"`
	Age    *int   `json:"employee_age"`
	Title  string `json:"employee_title"`
	Email  string `json:"employee_email"`
}

// HasName reports whether the employee carries a usable name.
func (e Employee) HasName() bool {
	return e.Name != ""
}

// HasSalary reports whether the employee carries a salary.
func (e Employee) HasSalary() bool {
	return e.Salary != nil
}

// CreateEmployeeRequest is the body sent to the remote service to create an employee.
// Salary and Age are pointers so a missing value can be told apart from zero.
type CreateEmployeeRequest struct {
	Name   string `json:"name"   validate:"notblank"`
	Salary *int   `json:"salary" validate:"required,gt=0"`
	Age    *int   `json:"age"    validate:"required,gte=16,lte=75"`
	Title  string `json:"title"  validate:"notblank"`
}

// DeleteEmployeeRequest is the body of the remote delete call, which keys on name.
type DeleteEmployeeRequest struct {
	Name string `json:"name"`
}

// Envelope wraps every payload returned by the remote service.
// A nil Data means the payload was absent.
type Envelope[T any] struct {
	Data   *T     `json:"data"`
	Status string `json:"status"`
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
