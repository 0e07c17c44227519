package presence

// ConnectInput holds the user coming online
type ConnectInput struct {
	UserID string
}

// DisconnectInput holds the user going offline
type DisconnectInput struct {
	UserID string
}
