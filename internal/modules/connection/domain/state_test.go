package domain

import "testing"

func TestTransition(t *testing.T) {
	tests := []struct {
		name       string
		state      ConnectionState
		sig        Signal
		attempts   int
		wantState  ConnectionState
		wantAction Action
	}{
		{"open from connecting", ConnectionStateConnecting, Opened(), 0, ConnectionStateConnected, ActionNone},
		{"open after retry", ConnectionStateDisconnectedRetryable, Opened(), 3, ConnectionStateConnected, ActionNone},
		{"transient close", ConnectionStateConnected, Closed(DisconnectReasonConnectionLost), 0, ConnectionStateDisconnectedRetryable, ActionReconnect},
		{"unknown reason retries", ConnectionStateConnected, Closed(DisconnectReasonUnknown), 0, ConnectionStateDisconnectedRetryable, ActionReconnect},
		{"failed reconnect retries", ConnectionStateDisconnectedRetryable, Closed(DisconnectReasonConnectFailure), 2, ConnectionStateDisconnectedRetryable, ActionReconnect},
		{"logged out", ConnectionStateConnected, Closed(DisconnectReasonLoggedOut), 0, ConnectionStateDisconnectedTerminal, ActionStop},
		{"stream replaced", ConnectionStateConnected, Closed(DisconnectReasonStreamReplaced), 0, ConnectionStateDisconnectedTerminal, ActionStop},
		{"banned", ConnectionStateConnected, Closed(DisconnectReasonBanned), 0, ConnectionStateDisconnectedTerminal, ActionStop},
		{"attempts exhausted", ConnectionStateDisconnectedRetryable, Closed(DisconnectReasonConnectFailure), 5, ConnectionStateDisconnectedTerminal, ActionStop},
		{"terminal is absorbing", ConnectionStateDisconnectedTerminal, Opened(), 0, ConnectionStateDisconnectedTerminal, ActionNone},
		{"terminal ignores close", ConnectionStateDisconnectedTerminal, Closed(DisconnectReasonConnectionLost), 0, ConnectionStateDisconnectedTerminal, ActionNone},
		{"paired keeps state", ConnectionStateConnecting, Paired(), 0, ConnectionStateConnecting, ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, action := Transition(tt.state, tt.sig, tt.attempts, 5)
			if state != tt.wantState || action != tt.wantAction {
				t.Errorf("Transition() = (%s, %s), want (%s, %s)", state, action, tt.wantState, tt.wantAction)
			}
		})
	}
}

func TestDisconnectReasonTerminal(t *testing.T) {
	for _, name := range DisconnectReasonNames() {
		r := DisconnectReason(name)
		want := r == DisconnectReasonLoggedOut || r == DisconnectReasonStreamReplaced ||
			r == DisconnectReasonBanned || r == DisconnectReasonClientOutdated
		if r.Terminal() != want {
			t.Errorf("%s.Terminal() = %v, want %v", r, r.Terminal(), want)
		}
	}
}
