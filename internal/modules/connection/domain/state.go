package domain

// Signal is one lifecycle notification delivered by the session.
type Signal struct {
	Kind   SignalKind
	Reason DisconnectReason // set when Kind is closed
}

func Opened() Signal { return Signal{Kind: SignalKindOpened} }

func Closed(reason DisconnectReason) Signal {
	return Signal{Kind: SignalKindClosed, Reason: reason}
}

func Paired() Signal { return Signal{Kind: SignalKindPaired} }

// Terminal reports whether a close for this reason must never be retried.
// Logged out, replaced by another client, banned or outdated sessions do
// not recover by connecting again.
func (r DisconnectReason) Terminal() bool {
	switch r {
	case DisconnectReasonLoggedOut, DisconnectReasonStreamReplaced,
		DisconnectReasonBanned, DisconnectReasonClientOutdated:
		return true
	}
	return false
}

// Transition returns the state that follows sig and the action to take.
// attempts is the number of reconnects made since the session was last
// open; once it reaches maxAttempts a close becomes terminal.
func Transition(state ConnectionState, sig Signal, attempts, maxAttempts int) (ConnectionState, Action) {
	if state == ConnectionStateDisconnectedTerminal {
		return state, ActionNone
	}

	switch sig.Kind {
	case SignalKindOpened:
		return ConnectionStateConnected, ActionNone
	case SignalKindClosed:
		if sig.Reason.Terminal() || attempts >= maxAttempts {
			return ConnectionStateDisconnectedTerminal, ActionStop
		}
		return ConnectionStateDisconnectedRetryable, ActionReconnect
	default:
		return state, ActionNone
	}
}
