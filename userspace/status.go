package userspace

// Status is the ordinary outcome of a credential or session operation.
// It is meaningful only when the accompanying error is nil.
type Status int

const (
	StatusOK Status = iota
	StatusNotFound
	StatusExpired
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not found"
	case StatusExpired:
		return "expired"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}
