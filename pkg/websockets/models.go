package websockets

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeSessionUpdate is for messages that update the wallet session view.
	MessageTypeSessionUpdate MessageType = "sessionUpdate"
	// MessageTypeListingsUpdate is for messages that replace the listing cache.
	MessageTypeListingsUpdate MessageType = "listingsUpdate"
	// MessageTypeBalanceUpdate is for messages that update the holding balance.
	MessageTypeBalanceUpdate MessageType = "balanceUpdate"
)

// Message represents a generic WebSocket message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}
