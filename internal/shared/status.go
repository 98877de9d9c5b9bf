package shared

// Status is the two-valued lifecycle of every record. Rows are never
// physically deleted; "deleting" flips the status to inactive.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Valid reports whether s is one of the two known states.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// ParseStatus maps a query-string value onto a Status filter. Empty input
// returns nil, meaning "no status filter".
func ParseStatus(raw string) *Status {
	switch Status(raw) {
	case StatusActive, StatusInactive:
		s := Status(raw)
		return &s
	default:
		return nil
	}
}
