// Package models contains data types and constants for the Uplyft chat client.
package models

// Backend endpoint
const (
	DefaultEndpoint = "http://localhost:5000/chat"
)

// Session storage keys
const (
	KeyUserName  = "userName"
	KeyUserEmail = "userEmail"
)

// Display defaults used when a session field is absent
const (
	DefaultUserName  = "User"
	DefaultUserEmail = "user@example.com"
)

// Federated sign-in placeholder identity
const (
	FederatedUserName  = "Google User"
	FederatedUserEmail = "user@gmail.com"
)

// Fixed chat texts
const (
	// ErrorReply is the bot message shown for every failed exchange
	ErrorReply = "⚠️ Error: Could not connect to the server."

	// GreetingReply seeds every new conversation
	GreetingReply = "Hello! I'm Uplyft AI, your intelligent assistant. How can I help you today?"

	// GreetingID is the fixed ID of the seeded greeting
	GreetingID = "1"
)

// Branding
const (
	AppName     = "Uplyft AI Assistant"
	ChatTitle   = "Uplyft AI Support Assistant"
	AppTagline  = "Your Smart AI Chat Partner for Quick Help & Product Discovery"
	AppSubtitle = "Seamless, responsive, and personalized — powered by AI."
)

// Features shown on the landing view
var Features = []string{
	"Instant Responses",
	"Smart Suggestions",
	"24/7 Available",
}

// QuickActions shown in the chat sidebar
var QuickActions = []string{
	"Ask about AI capabilities",
	"Get help with a task",
	"Explore features",
}
