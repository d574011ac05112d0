package board

// GroupingKey assigns a record to a column. Returning ok=false means the
// key is undefined for that record, which Build treats as a
// ConfigurationError: the host must route every record somewhere, e.g.
// by mapping missing values to a fallback column inside its key func.
type GroupingKey func(Record) (ColumnID, bool)

// ByField returns a GroupingKey that groups records by a Meta field.
// The key is undefined for records where the field is missing or empty.
func ByField(name string) GroupingKey {
	return func(r Record) (ColumnID, bool) {
		v, ok := r.Meta[name]
		if !ok || v == "" {
			return "", false
		}
		return ColumnID(v), true
	}
}

// ColumnSpec declares a column the board should have, in caller order,
// whether or not any record lands in it.
type ColumnSpec struct {
	ID    ColumnID
	Title string
}

// Build partitions records into columns and returns a fresh board.
//
// Column order is the columns slice order, followed by any grouping key
// values encountered in the input but not declared, in first-seen order
// (those columns use the key value as their title). Within a column,
// records keep their input order; nothing is re-sorted.
//
// columns may be nil, in which case every column is first-seen.
//
// Build validates its input and returns a *ConfigurationError for a nil
// key func, an empty or duplicate record id, a duplicate column
// declaration, or a record the key is undefined for.
func Build(id string, records []Record, key GroupingKey, columns []ColumnSpec) (*Board, error) {
	if key == nil {
		return nil, &ConfigurationError{Message: "nil grouping key"}
	}

	b := &Board{ID: id}
	index := make(map[ColumnID]int, len(columns))

	for _, spec := range columns {
		if spec.ID == "" {
			return nil, &ConfigurationError{Message: "column spec with empty id"}
		}
		if _, dup := index[spec.ID]; dup {
			return nil, &ConfigurationError{Message: "duplicate column spec " + string(spec.ID)}
		}
		title := spec.Title
		if title == "" {
			title = string(spec.ID)
		}
		index[spec.ID] = len(b.Columns)
		b.Columns = append(b.Columns, Column{ID: spec.ID, Title: title})
	}

	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			return nil, &ConfigurationError{Message: "record with empty id"}
		}
		if seen[rec.ID] {
			return nil, &ConfigurationError{Message: "duplicate record id", RecordID: rec.ID}
		}
		seen[rec.ID] = true

		colID, ok := key(rec)
		if !ok || colID == "" {
			return nil, &ConfigurationError{Message: "grouping key undefined", RecordID: rec.ID}
		}

		at, exists := index[colID]
		if !exists {
			// Undeclared key: append a column in first-seen order.
			at = len(b.Columns)
			index[colID] = at
			b.Columns = append(b.Columns, Column{ID: colID, Title: string(colID)})
		}

		card := Card{ID: rec.ID, Title: rec.Title, ColumnID: colID}
		if len(rec.Meta) > 0 {
			card.Meta = make(map[string]string, len(rec.Meta))
			for k, v := range rec.Meta {
				card.Meta[k] = v
			}
		}
		b.Columns[at].Cards = append(b.Columns[at].Cards, card)
	}

	return b, nil
}
