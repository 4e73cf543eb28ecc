package employee

import (
	"errors"

	employeeerrors "go-gemtrack/internal/employee/errors"
	"go-gemtrack/internal/shared/dbtx"

	"gorm.io/gorm"
)

const uniqueEmployeeID = "uq_employees_user_employee_code"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	// employees carry a single unique index, so a translated duplicate without
	// a constraint name is still an employee id collision.
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		dbtx.IsUniqueViolation(err, uniqueEmployeeID) ||
		dbtx.IsUniqueViolation(err, "employees.employee_code") {
		return employeeerrors.ErrEmployeeIDAlreadyExists
	}
	if dbtx.IsForeignKeyViolation(err) {
		return employeeerrors.ErrEmployeeInUse
	}

	return err
}
