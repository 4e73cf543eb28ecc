package query

// Schema is the explicit per-entity table consumed by Bind, Compile and List.
// createdAt and updatedAt are always sortable.
type Schema struct {
	Entity      string
	fields      map[string]Field
	names       []string
	defaultSort []Sort
}

func NewSchema(entity string, defaultSort []Sort, fields ...Field) *Schema {
	s := &Schema{
		Entity:      entity,
		fields:      make(map[string]Field, len(fields)+2),
		defaultSort: defaultSort,
	}
	for _, f := range fields {
		s.add(f)
	}
	if _, ok := s.fields["createdAt"]; !ok {
		s.add(Timestamp("createdAt", "created_at").SortOnly())
	}
	if _, ok := s.fields["updatedAt"]; !ok {
		s.add(Timestamp("updatedAt", "updated_at").SortOnly())
	}
	return s
}

func (s *Schema) add(f Field) {
	if _, exists := s.fields[f.Name]; !exists {
		s.names = append(s.names, f.Name)
	}
	s.fields[f.Name] = f
}

func (s *Schema) Field(name string) (Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Names lists field names in declaration order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *Schema) DefaultSort() []Sort {
	out := make([]Sort, len(s.defaultSort))
	copy(out, s.defaultSort)
	return out
}

// Desc and Asc build default sort entries.
func Desc(field string) Sort { return Sort{Field: field, Desc: true} }
func Asc(field string) Sort  { return Sort{Field: field} }
