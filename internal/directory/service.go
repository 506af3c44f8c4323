// Package directory composes validation, retrying remote calls and
// aggregation into the employee operations exposed to callers.
package directory

import (
	"context"
	"log/slog"

	"github.com/vietddude/employees/internal/core/domain"
	"github.com/vietddude/employees/internal/core/validate"
	"github.com/vietddude/employees/internal/infra/retry"
)

// Remote is the data source the service reads from and writes to.
// Each method performs exactly one remote call.
type Remote interface {
	FetchAll(ctx context.Context) ([]domain.Employee, error)
	FetchOne(ctx context.Context, id string) (domain.Employee, error)
	Create(ctx context.Context, req domain.CreateEmployeeRequest) (domain.Employee, error)
	DeleteByName(ctx context.Context, name string) error
}

// Service exposes the employee directory operations.
type Service struct {
	remote  Remote
	retrier *retry.Controller
	log     *slog.Logger
}

// NewService creates a Service. Every network-touching method is retried with
// the retrier's policy.
func NewService(remote Remote, retrier *retry.Controller, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		remote:  remote,
		retrier: retrier,
		log:     log.With("component", "directory"),
	}
}

// ListAll returns every employee.
func (s *Service) ListAll(ctx context.Context) ([]domain.Employee, error) {
	s.log.Info("Fetching all employees")

	employees, err := s.fetchAll(ctx, "list_all")
	if err != nil {
		return nil, err
	}

	s.log.Info("Retrieved employees", "count", len(employees))
	return employees, nil
}

// GetByID returns one employee.
func (s *Service) GetByID(ctx context.Context, id string) (domain.Employee, error) {
	if err := validate.ID(id); err != nil {
		s.log.Warn("Rejected employee id", "id", id, "error", err)
		return domain.Employee{}, err
	}

	return retry.Do(ctx, s.retrier, "get_by_id", func(ctx context.Context) (domain.Employee, error) {
		return s.remote.FetchOne(ctx, id)
	})
}

// SearchByName returns employees whose name contains term, ignoring case.
func (s *Service) SearchByName(ctx context.Context, term string) ([]domain.Employee, error) {
	employees, err := s.fetchAll(ctx, "search_by_name")
	if err != nil {
		return nil, err
	}

	matches := SearchByName(employees, term)
	s.log.Info("Searched employees by name", "term", term, "matches", len(matches))
	return matches, nil
}

// HighestSalary returns the highest salary, or 0 when there is none.
func (s *Service) HighestSalary(ctx context.Context) (int, error) {
	employees, err := s.fetchAll(ctx, "highest_salary")
	if err != nil {
		return 0, err
	}
	return HighestSalary(employees), nil
}

// TopTenEarners returns the names of the ten highest paid employees.
func (s *Service) TopTenEarners(ctx context.Context) ([]string, error) {
	employees, err := s.fetchAll(ctx, "top_ten_earners")
	if err != nil {
		return nil, err
	}
	return TopN(employees, TopEarnersLimit), nil
}

// Create validates req and asks the remote service to create the employee.
// Only a rate-limited rejection is retried: the remote refused the request
// outright, so nothing was created.
func (s *Service) Create(ctx context.Context, req domain.CreateEmployeeRequest) (domain.Employee, error) {
	if err := validate.CreateRequest(req); err != nil {
		s.log.Warn("Rejected create request", "error", err)
		return domain.Employee{}, err
	}

	created, err := retry.Do(ctx, s.retrier, "create", func(ctx context.Context) (domain.Employee, error) {
		return s.remote.Create(ctx, req)
	})
	if err != nil {
		return domain.Employee{}, err
	}

	s.log.Info("Created employee", "id", created.ID, "name", created.Name)
	return created, nil
}

// DeleteByID deletes the employee with the given id and returns its name.
// The name is resolved first because the remote deletion keys on name; both
// calls run in sequence inside one retried unit.
func (s *Service) DeleteByID(ctx context.Context, id string) (string, error) {
	if err := validate.ID(id); err != nil {
		s.log.Warn("Rejected employee id", "id", id, "error", err)
		return "", err
	}

	name, err := retry.Do(ctx, s.retrier, "delete_by_id", func(ctx context.Context) (string, error) {
		employee, err := s.remote.FetchOne(ctx, id)
		if err != nil {
			return "", err
		}
		if err := s.remote.DeleteByName(ctx, employee.Name); err != nil {
			return "", err
		}
		return employee.Name, nil
	})
	if err != nil {
		return "", err
	}

	s.log.Info("Deleted employee", "id", id, "name", name)
	return name, nil
}

func (s *Service) fetchAll(ctx context.Context, name string) ([]domain.Employee, error) {
	return retry.Do(ctx, s.retrier, name, s.remote.FetchAll)
}
