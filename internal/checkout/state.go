package checkout

type State string

const (
	StateIdle                State = "idle"
	StateValidatingAddress   State = "validating_address"
	StateProcessingPayment   State = "processing_payment"
	StateCreatingOrder       State = "creating_order"
	StateSendingConfirmation State = "sending_confirmation"
	StateDone                State = "done"
)

var transitions = map[State][]State{
	StateIdle:                {StateValidatingAddress},
	StateValidatingAddress:   {StateProcessingPayment, StateIdle},
	StateProcessingPayment:   {StateCreatingOrder, StateIdle},
	StateCreatingOrder:       {StateSendingConfirmation, StateIdle},
	StateSendingConfirmation: {StateDone},
	StateDone:                {},
}

// CanTransitionTo reports whether the machine may move from s to next.
func (s State) CanTransitionTo(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s State) IsTerminal() bool {
	return s == StateDone
}

func (s State) String() string {
	return string(s)
}
