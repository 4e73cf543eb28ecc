package tenant

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const OwnerColumn = "user_id"

// Scope restricts a statement to rows owned by userID. The column is qualified
// with the statement table so joins and preloads stay unambiguous.
func Scope(userID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: OwnerColumn},
			Value:  userID,
		})
	}
}

// ValidID reports whether id can be looked up at all. Malformed ids are
// answered with NotFound by callers, same as another user's ids.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
