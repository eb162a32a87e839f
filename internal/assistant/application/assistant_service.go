package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/annaclara1997/event-buddy-project/internal/assistant/domain"
	catalogDomain "github.com/annaclara1997/event-buddy-project/internal/catalog/domain"

	"go.uber.org/zap"
)

var ErrEmptyUtterance = errors.New("empty utterance")

// AssistantService envolve o motor de resolução puro com o que a sessão
// precisa: transcript e o atraso de "pensamento" simulado. O atraso é
// apenas latência percebida, não correção — zero desliga-o.
type AssistantService struct {
	thinkingDelay time.Duration
	log           *zap.Logger
}

func NewAssistantService(thinkingDelay time.Duration, log *zap.Logger) *AssistantService {
	return &AssistantService{thinkingDelay: thinkingDelay, log: log}
}

// Ask resolve um enunciado contra o snapshot e acrescenta o par
// pergunta/resposta ao transcript. A resolução em si nunca falha; só o
// contexto cancelado durante o atraso interrompe.
func (s *AssistantService) Ask(ctx context.Context, conv *domain.Conversation, utterance string, snap *catalogDomain.Snapshot, now time.Time) (domain.Reply, error) {
	if strings.TrimSpace(utterance) == "" {
		return domain.Reply{}, ErrEmptyUtterance
	}

	if conv != nil {
		conv.Append(domain.Message{Role: domain.RoleUser, Text: utterance, At: now})
	}

	if s.thinkingDelay > 0 {
		select {
		case <-time.After(s.thinkingDelay):
		case <-ctx.Done():
			return domain.Reply{}, ctx.Err()
		}
	}

	displayName := ""
	if snap != nil {
		displayName = snap.DisplayName
	}

	reply := domain.Resolve(utterance, snap, displayName, now)

	if conv != nil {
		conv.Append(domain.Message{
			Role:   domain.RoleAssistant,
			Text:   reply.Text,
			Events: reply.Events,
			At:     now,
		})
	}

	s.log.Debug("assistant reply",
		zap.Int("matched_events", len(reply.Events)),
	)
	return reply, nil
}
