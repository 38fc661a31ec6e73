// Package csvmap implements the interactive half of the CSV import flow:
// parsing a bounded preview of an uploaded file and tracking which CSV
// column the user has assigned to which guest field.
//
// CSV handling here is deliberately naive: lines split on newline, cells
// split on comma, no quoting or escaping. Expected inputs are simple
// spreadsheet exports; quoted commas are a documented limitation.
package csvmap

// Field is one of the semantic guest fields a CSV column can be mapped to.
type Field int

// Fields in priority order. Order matters: it drives the display order of
// mapped columns and the required-field check.
const (
	FieldFirstName Field = iota
	FieldLastName
	FieldTickets
	FieldEmail
	FieldNotes
	numFields
)

// Fields lists all semantic fields in priority order.
func Fields() []Field {
	return []Field{FieldFirstName, FieldLastName, FieldTickets, FieldEmail, FieldNotes}
}

// ParseField parses the wire name of a field ("firstName", "lastName",
// "tickets", "email", "notes"). Unknown names report ok=false; callers
// skip them, matching the import surface which ignores unrecognized keys.
func ParseField(s string) (Field, bool) {
	switch s {
	case "firstName":
		return FieldFirstName, true
	case "lastName":
		return FieldLastName, true
	case "tickets":
		return FieldTickets, true
	case "email":
		return FieldEmail, true
	case "notes":
		return FieldNotes, true
	default:
		return 0, false
	}
}

// String returns the wire name of the field.
func (f Field) String() string {
	switch f {
	case FieldFirstName:
		return "firstName"
	case FieldLastName:
		return "lastName"
	case FieldTickets:
		return "tickets"
	case FieldEmail:
		return "email"
	case FieldNotes:
		return "notes"
	default:
		return "unknown"
	}
}

// Column returns the guests table column the field is ingested into.
func (f Field) Column() string {
	switch f {
	case FieldFirstName:
		return "first_name"
	case FieldLastName:
		return "last_name"
	case FieldTickets:
		return "num_tickets"
	case FieldEmail:
		return "email"
	case FieldNotes:
		return "notes"
	default:
		return ""
	}
}

// Required reports whether the field must be mapped before ingestion can
// be confirmed. Only the first name is required.
func (f Field) Required() bool {
	return f == FieldFirstName
}

// valid reports whether f is one of the defined fields.
func (f Field) valid() bool {
	return f >= 0 && f < numFields
}
