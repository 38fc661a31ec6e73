package csvmap

import (
	"fmt"
	"sync"
)

// Positions is the committed field → CSV column index map handed to the
// ingestion pipeline. It may omit optional fields; the pipeline defaults
// them.
type Positions map[Field]int

// Mapping tracks which semantic field each CSV column has been assigned
// to. One Mapping exists per draft guest list; concurrent requests may
// share it, so all access is serialized on its mutex.
//
// Invariant: at most one column per field and at most one field per
// column. Reassigning a field moves it; reassigning a column replaces its
// field.
type Mapping struct {
	mu        sync.Mutex
	order     []int         // display order of column indices
	fields    map[int]Field // column index -> assigned field
	positions Positions     // assigned field -> column index
}

// NewMapping creates an unassigned mapping over columnCount CSV columns.
func NewMapping(columnCount int) *Mapping {
	m := &Mapping{
		order:     make([]int, 0, columnCount),
		fields:    make(map[int]Field),
		positions: make(Positions),
	}
	for i := 0; i < columnCount; i++ {
		m.order = append(m.order, i)
	}
	return m
}

// Assign binds a CSV column to a semantic field. If the field was bound
// to a different column, that binding is cleared first; if the column
// carried a different field, that field becomes unassigned. The last
// Assign for a field always wins.
func (m *Mapping) Assign(column int, field Field) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if column < 0 || column >= len(m.order) {
		return fmt.Errorf("column index %d out of range", column)
	}
	if !field.valid() {
		return fmt.Errorf("invalid field %d", int(field))
	}

	if prev, ok := m.positions[field]; ok && prev != column {
		delete(m.fields, prev)
	}
	if prevField, ok := m.fields[column]; ok && prevField != field {
		delete(m.positions, prevField)
	}

	m.fields[column] = field
	m.positions[field] = column
	m.reorder(column, field)
	return nil
}

// reorder moves the assigned column so mapped columns appear in field
// priority order; unmapped columns keep their relative order after them.
func (m *Mapping) reorder(column int, field Field) {
	// Remove the column from its current slot.
	for i, c := range m.order {
		if c == column {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	// Insert before the first column mapped to a later field.
	insert := len(m.order)
	for i, c := range m.order {
		if f, ok := m.fields[c]; ok && f > field {
			insert = i
			break
		}
	}

	m.order = append(m.order, 0)
	copy(m.order[insert+1:], m.order[insert:])
	m.order[insert] = column
}

// IsComplete reports whether every required field has been assigned.
func (m *Mapping) IsComplete() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, f := range Fields() {
		if !f.Required() {
			continue
		}
		if _, ok := m.positions[f]; !ok {
			return false
		}
	}
	return true
}

// Commit returns a copy of the current position map. The copy is what
// gets transmitted to the ingestion pipeline; later Assign calls do not
// affect it.
func (m *Mapping) Commit() Positions {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(Positions, len(m.positions))
	for f, c := range m.positions {
		out[f] = c
	}
	return out
}

// ColumnOrder returns the display order of column indices.
func (m *Mapping) ColumnOrder() []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]int, len(m.order))
	copy(out, m.order)
	return out
}

// FieldFor returns the field assigned to a column, if any.
func (m *Mapping) FieldFor(column int) (Field, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.fields[column]
	return f, ok
}
