package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/staffhub/employee-api/internal/core/domain"
	"github.com/staffhub/employee-api/internal/core/ports"
)

// EmployeeService implements the profile CRUD surface on top of the
// credential store.
type EmployeeService struct {
	repo   ports.EmployeeRepository
	logger zerolog.Logger
}

func NewEmployeeService(repo ports.EmployeeRepository, logger zerolog.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, logger: logger}
}

// canListEmployees is the single policy decision for the admin-only listing.
// A denial maps to ErrAdminAccess, which the boundary renders as a 500 — the
// status the existing contract exposes. Swapping in a 403 means changing this
// one function's error.
func canListEmployees(caller *domain.Employee) error {
	if caller == nil || !caller.IsAdmin {
		return domain.ErrAdminAccess
	}
	return nil
}

func (s *EmployeeService) Get(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return employee.Sanitized(), nil
}

func (s *EmployeeService) GetAll(ctx context.Context, caller *domain.Employee) ([]*domain.Employee, error) {
	if err := canListEmployees(caller); err != nil {
		s.logger.Warn().Str("employee_id", callerID(caller)).Msg("non-admin attempted employee listing")
		return nil, err
	}

	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch employees")
		return nil, err
	}

	out := make([]*domain.Employee, len(employees))
	for i, e := range employees {
		out[i] = e.Sanitized()
	}
	return out, nil
}

func (s *EmployeeService) Update(ctx context.Context, employeeID string, fields ports.UpdateEmployeeFields) (*domain.Employee, error) {
	if fields.Empty() {
		return nil, domain.ErrNoUpdateFields
	}

	updated, err := s.repo.UpdateFields(ctx, employeeID, fields)
	if err != nil {
		s.logger.Error().Err(err).Str("employee_id", employeeID).Msg("failed to update employee")
		return nil, domain.ErrUpdateFailed
	}

	s.logger.Info().Str("employee_id", employeeID).Msg("employee updated")
	return updated.Sanitized(), nil
}

func (s *EmployeeService) Delete(ctx context.Context, employeeID string) error {
	if err := s.repo.Delete(ctx, employeeID); err != nil {
		s.logger.Error().Err(err).Str("employee_id", employeeID).Msg("failed to delete employee")
		return domain.ErrDeleteFailed
	}
	s.logger.Info().Str("employee_id", employeeID).Msg("employee deleted")
	return nil
}

// DeleteByID deletes an arbitrary employee record. The route exposing this
// performs no authentication; see DESIGN.md for the flagged defect.
func (s *EmployeeService) DeleteByID(ctx context.Context, employeeID string) error {
	if employeeID == "" {
		return domain.ErrMissingEmployeeID
	}
	if err := s.repo.Delete(ctx, employeeID); err != nil {
		s.logger.Error().Err(err).Str("employee_id", employeeID).Msg("failed to delete employee by id")
		return domain.ErrDeleteFailed
	}
	s.logger.Info().Str("employee_id", employeeID).Msg("employee deleted by id")
	return nil
}

func callerID(e *domain.Employee) string {
	if e == nil {
		return ""
	}
	return e.ID
}
