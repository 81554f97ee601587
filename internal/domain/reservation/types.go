package reservation

type Status string

const (
	StatusActive   Status = "active"
	StatusReleased Status = "released"
	StatusConsumed Status = "consumed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusReleased, StatusConsumed:
		return true
	default:
		return false
	}
}

// Terminal statuses never transition back to active.
func (s Status) IsTerminal() bool {
	return s == StatusReleased || s == StatusConsumed
}
