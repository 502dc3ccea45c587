//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// ConnectionState is the supervisor's view of the session
// ENUM(connecting,connected,disconnected_retryable,disconnected_terminal)
type ConnectionState string

// SignalKind is a lifecycle notification from the session
// ENUM(opened,closed,paired)
type SignalKind string

// DisconnectReason tells why the session closed
// ENUM(unknown,connection_lost,connect_failure,logged_out,stream_replaced,banned,client_outdated)
type DisconnectReason string

// Action is what the supervisor must do after a transition
// ENUM(none,reconnect,stop)
type Action string
