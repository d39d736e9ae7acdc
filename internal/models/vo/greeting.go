// Package vo defines view objects exposed to upper layers.
package vo

const (
	// GreetingStatus is the machine-readable outcome carried by every greeting.
	GreetingStatus = "success"
	// GreetingContent is the human-readable message carried by every greeting.
	GreetingContent = "Hello from Rust-Trends.com - size optimization rust binaries"
)

// Greeting is the fixed payload returned for every request. It carries no
// per-request or per-client information.
type Greeting struct {
	Status  string
	Content string
}

// NewGreeting returns a fresh Greeting value.
func NewGreeting() Greeting {
	return Greeting{Status: GreetingStatus, Content: GreetingContent}
}
