package entities

// Status is the reading status of a session.
type Status string

const (
	StatusToRead   Status = "to-read"
	StatusReadNext Status = "read-next"
	StatusReading  Status = "reading"
	StatusRead     Status = "read"
	StatusDNF      Status = "dnf"
)

// statusRank orders the statuses that participate in linear progression.
// StatusDNF is deliberately absent: abandonment is a terminal branch with
// its own transition rules, not a point on this scale.
var statusRank = map[Status]int{
	StatusToRead:   0,
	StatusReadNext: 1,
	StatusReading:  2,
	StatusRead:     3,
}

// Rank returns the ordinal position of a linear status. ok is false for
// StatusDNF and for unknown values.
func (s Status) Rank() (int, bool) {
	rank, ok := statusRank[s]
	return rank, ok
}

// Valid reports whether s is one of the five recognised statuses.
func (s Status) Valid() bool {
	if _, ok := statusRank[s]; ok {
		return true
	}
	return s == StatusDNF
}

// AllStatuses lists every recognised status value.
func AllStatuses() []Status {
	return []Status{StatusToRead, StatusReadNext, StatusReading, StatusRead, StatusDNF}
}
