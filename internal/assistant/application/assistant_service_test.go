package application

import (
	"context"
	"testing"
	"time"

	"github.com/annaclara1997/event-buddy-project/internal/assistant/domain"
	catalogDomain "github.com/annaclara1997/event-buddy-project/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestAsk_AppendsQuestionAndAnswerToTranscript(t *testing.T) {
	service := NewAssistantService(0, zap.NewNop())
	conv := &domain.Conversation{}
	snap := catalogDomain.NewSnapshot(1, "u1", "Ana", nil, nil, nil)
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	reply, err := service.Ask(context.Background(), conv, "Olá!", snap, now)
	assert.NoError(t, err)
	assert.Equal(t, "Bom dia, Ana! Como posso ajudar você a encontrar eventos interessantes?", reply.Text)

	msgs := conv.Messages()
	assert.Len(t, msgs, 2)
	assert.Equal(t, domain.RoleUser, msgs[0].Role)
	assert.Equal(t, "Olá!", msgs[0].Text)
	assert.Equal(t, domain.RoleAssistant, msgs[1].Role)
	assert.Equal(t, reply.Text, msgs[1].Text)
}

func TestAsk_EmptyUtteranceIsRejected(t *testing.T) {
	service := NewAssistantService(0, zap.NewNop())
	conv := &domain.Conversation{}

	_, err := service.Ask(context.Background(), conv, "   ", nil, time.Now())
	assert.ErrorIs(t, err, ErrEmptyUtterance)
	assert.Equal(t, 0, conv.Len(), "entrada rejeitada não entra no transcript")
}

func TestAsk_ContextCancelledDuringThinkingDelay(t *testing.T) {
	service := NewAssistantService(5*time.Second, zap.NewNop())
	conv := &domain.Conversation{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Ask(ctx, conv, "eventos hoje", nil, time.Now())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, conv.Len(), "a pergunta já tinha sido registada")
}

func TestAsk_NilConversationStillResolves(t *testing.T) {
	service := NewAssistantService(0, zap.NewNop())

	reply, err := service.Ask(context.Background(), nil, "ajuda", nil, time.Now())
	assert.NoError(t, err)
	assert.Contains(t, reply.Text, "Por localização")
}

func TestConversation_ClearEmptiesTranscript(t *testing.T) {
	conv := &domain.Conversation{}
	conv.Append(domain.Message{Role: domain.RoleUser, Text: "oi"})
	conv.Append(domain.Message{Role: domain.RoleAssistant, Text: "olá"})
	assert.Equal(t, 2, conv.Len())

	conv.Clear()
	assert.Equal(t, 0, conv.Len())
	assert.Empty(t, conv.Messages())
}
