package core

// Tick is a discrete simulation step.
type Tick int64

// AgentID identifies an agent in the downstream simulation.
type AgentID int

// Message is a unit of communication between agents.
type Message struct {
	Sender    AgentID
	Recipient AgentID
	Sent      Tick // Tick during which the message was sent
	Payload   any
}

// VisibleAt reports whether the recipient may observe the message at tick t.
// A message sent during tick t is never visible before tick t+1.
func (m Message) VisibleAt(t Tick) bool {
	return t > m.Sent
}

// MessagingAgent is the capability an agent exposes to communicate with
// other agents in the simulation that consumes generated problems.
//
// Implementations must buffer received messages so that a message sent
// during tick t is not available to the recipient until tick t+1.
// This package provides no implementation.
type MessagingAgent interface {
	// Location returns the agent's current position.
	Location() Position

	// CommunicationRange is the furthest distance (m) the agent can reach.
	CommunicationRange() float64

	// SetCommunicationRange changes the communication range.
	SetCommunicationRange(r float64)

	// Send issues a message.
	Send(msg Message)

	// Receive accepts a message issued by another agent.
	Receive(msg Message)
}
