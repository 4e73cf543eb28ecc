package report

import (
	"errors"

	reporterrors "go-gemtrack/internal/report/errors"
	"go-gemtrack/internal/shared/dbtx"

	"gorm.io/gorm"
)

const uniqueReportID = "uq_reports_user_report_id"

func mapRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return reporterrors.ErrReportNotFound
	case dbtx.IsUniqueViolation(err, uniqueReportID),
		dbtx.IsUniqueViolation(err, "reports.report_id"):
		return reporterrors.ErrReportIDAlreadyExists
	case dbtx.IsForeignKeyViolation(err):
		return reporterrors.ErrPacketsNotFound
	default:
		return err
	}
}
