package query

import "github.com/shopspring/decimal"

type FieldType int

const (
	String FieldType = iota + 1
	Number
	Integer
	Enum
	UUID
	Time
)

func (t FieldType) String() string {
	switch t {
	case String:
		return "string"
	case Number:
		return "number"
	case Integer:
		return "integer"
	case Enum:
		return "enum"
	case UUID:
		return "uuid"
	case Time:
		return "time"
	default:
		return "unknown"
	}
}

// Field declares one listable attribute of an entity: how it is named on the
// wire, which column backs it and what a filter value must look like.
type Field struct {
	Name       string
	Column     string
	Type       FieldType
	Filterable bool
	Sortable   bool

	MaxLen   int
	Values   []string
	positive bool
	step     decimal.Decimal
}

func newField(name, column string, t FieldType) Field {
	return Field{Name: name, Column: column, Type: t, Filterable: true, Sortable: true}
}

func Text(name, column string, maxLen int) Field {
	f := newField(name, column, String)
	f.MaxLen = maxLen
	return f
}

func Decimal(name, column string) Field {
	return newField(name, column, Number)
}

func Int(name, column string) Field {
	return newField(name, column, Integer)
}

func OneOf(name, column string, values ...string) Field {
	f := newField(name, column, Enum)
	f.Values = values
	return f
}

func ID(name, column string) Field {
	return newField(name, column, UUID)
}

func Timestamp(name, column string) Field {
	return newField(name, column, Time)
}

// Positive requires filter values greater than zero.
func (f Field) Positive() Field {
	f.positive = true
	return f
}

// Step requires decimal filter values to be a multiple of step, e.g. "0.0001".
func (f Field) Step(step string) Field {
	f.step = decimal.RequireFromString(step)
	return f
}

// SortOnly keeps the field out of filters.
func (f Field) SortOnly() Field {
	f.Filterable = false
	return f
}

func (f Field) FilterOnly() Field {
	f.Sortable = false
	return f
}

func (f Field) allows(v string) bool {
	for _, allowed := range f.Values {
		if allowed == v {
			return true
		}
	}
	return false
}
