package directory

import (
	"cmp"
	"slices"
	"strings"

	"github.com/vietddude/employees/internal/core/domain"
)

// TopEarnersLimit is the size of the top earners view.
const TopEarnersLimit = 10

// SearchByName returns the employees whose name contains term, ignoring case.
// Input order is preserved and employees without a name never match.
func SearchByName(employees []domain.Employee, term string) []domain.Employee {
	needle := strings.ToLower(term)
	matches := make([]domain.Employee, 0)
	for _, e := range employees {
		if !e.HasName() {
			continue
		}
		if strings.Contains(strings.ToLower(e.Name), needle) {
			matches = append(matches, e)
		}
	}
	return matches
}

// HighestSalary returns the largest salary present, or 0 when none is.
func HighestSalary(employees []domain.Employee) int {
	highest, found := 0, false
	for _, e := range employees {
		if !e.HasSalary() {
			continue
		}
		if !found || *e.Salary > highest {
			highest, found = *e.Salary, true
		}
	}
	return highest
}

// TopN returns the names of the n best paid employees, highest first.
// Employees without a salary are skipped; equal salaries keep input order.
func TopN(employees []domain.Employee, n int) []string {
	if n <= 0 {
		return []string{}
	}

	paid := make([]domain.Employee, 0, len(employees))
	for _, e := range employees {
		if e.HasSalary() {
			paid = append(paid, e)
		}
	}

	slices.SortStableFunc(paid, func(a, b domain.Employee) int {
		return cmp.Compare(*b.Salary, *a.Salary)
	})

	if len(paid) > n {
		paid = paid[:n]
	}
	names := make([]string, len(paid))
	for i, e := range paid {
		names[i] = e.Name
	}
	return names
}
