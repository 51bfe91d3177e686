// Package messaging talks to the chat provider: outbound text and document
// messages, plus the inbound webhook payload shape.
package messaging

import "context"

// InboundMessage is a single user message delivered by the chat provider's
// webhook.
type InboundMessage struct {
	Identity    string `json:"identity"`
	RawText     string `json:"text"`
	DisplayName string `json:"displayName,omitempty"`
}

// Gateway sends messages to a chat identity.
type Gateway interface {
	SendText(ctx context.Context, identity, text string) error
	SendDocument(ctx context.Context, identity, url, caption string) error
}
