package domain

import (
	"time"

	catalogDomain "github.com/annaclara1997/event-buddy-project/internal/catalog/domain"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message é uma entrada do transcript da conversa.
type Message struct {
	Role   Role                  `json:"role"`
	Text   string                `json:"text"`
	Events []catalogDomain.Event `json:"events,omitempty"`
	At     time.Time             `json:"at"`
}

// Conversation é o transcript append-only de uma sessão de chat.
// Pertence ao caller; o motor de intenção não guarda estado próprio
// além dele.
type Conversation struct {
	messages []Message
}

func (c *Conversation) Append(m Message) {
	c.messages = append(c.messages, m)
}

// Messages devolve uma cópia, para que o caller não possa mutar o
// histórico por fora.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) Len() int {
	return len(c.messages)
}

// Clear esvazia o transcript (botão "limpar conversa").
func (c *Conversation) Clear() {
	c.messages = nil
}
