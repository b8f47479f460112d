package purchase

type Status string

const (
	StatusPending    Status = "pending"
	StatusPaid       Status = "paid"
	StatusInTransit  Status = "in_transit"
	StatusDelivering Status = "delivering"
	StatusReceived   Status = "received"
	StatusCancelled  Status = "cancelled"
)

// step is the position of a status on the delivery path.
var step = map[Status]int{
	StatusPending:    0,
	StatusPaid:       1,
	StatusInTransit:  2,
	StatusDelivering: 3,
	StatusReceived:   4,
}

func (s Status) IsValid() bool {
	_, ok := step[s]
	return ok || s == StatusCancelled
}

func (s Status) IsTerminal() bool {
	return s == StatusReceived || s == StatusCancelled
}

// CanTransitionTo reports whether a purchase may move from s to to.
// Moves only go forward along the delivery path, possibly skipping steps,
// and any open purchase may be cancelled.
func (s Status) CanTransitionTo(to Status) bool {
	if !s.IsValid() || !to.IsValid() || s == to || s.IsTerminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return step[to] > step[s]
}
