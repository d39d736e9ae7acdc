// Package views renders value objects into the shapes written on the wire.
package views

import "github.com/bionicotaku/lingo-services-greeting/internal/models/vo"

// GreetingReply is the JSON document written for every request.
// Field order is the serialization order.
type GreetingReply struct {
	Status  string `json:"status"`
	Content string `json:"content"`
}

// NewGreetingReply converts a Greeting value object into its reply shape.
func NewGreetingReply(g vo.Greeting) GreetingReply {
	return GreetingReply{Status: g.Status, Content: g.Content}
}
