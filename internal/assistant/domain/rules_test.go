package domain

import (
	"testing"
	"time"

	catalogDomain "github.com/annaclara1997/event-buddy-project/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
)

func testSnapshot() *catalogDomain.Snapshot {
	events := []catalogDomain.Event{
		{ID: "e1", Title: "Concerto no Parque", Location: "Lisboa", Category: "Música", Date: "2026-09-12"},
		{ID: "e2", Title: "Feira de Tech", Location: "Porto", Category: "Tech", Date: "2026-08-30"},
		{ID: "e3", Title: "Noite de Fado", Location: "Lisboa", Category: "Música", Date: "2026-08-30"},
		{ID: "e4", Title: "Workshop sem data", Location: "Coimbra", Category: "Educação"},
	}
	return catalogDomain.NewSnapshot(1, "u1", "Ana", events, []string{"e1"}, nil)
}

func resolveAt(t *testing.T, utterance string, hour int) Reply {
	t.Helper()
	now := time.Date(2026, 8, 29, hour, 0, 0, 0, time.UTC)
	return Resolve(utterance, testSnapshot(), "Ana", now)
}

func TestResolve_GreetingWinsOverLocation(t *testing.T) {
	// "Olá, eventos em Lisboa?" contém "ola" e "lisboa"; a saudação vem
	// primeiro na cadeia, logo ganha.
	reply := resolveAt(t, "Olá, eventos em Lisboa?", 10)
	assert.Equal(t, "Bom dia, Ana! Como posso ajudar você a encontrar eventos interessantes?", reply.Text)
	assert.Empty(t, reply.Events)
}

func TestSalutation_FollowsHourOfDay(t *testing.T) {
	assert.Equal(t, "Bom dia", Salutation(time.Date(2026, 8, 29, 11, 59, 0, 0, time.UTC)))
	assert.Equal(t, "Boa tarde", Salutation(time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Boa tarde", Salutation(time.Date(2026, 8, 29, 17, 59, 0, 0, time.UTC)))
	assert.Equal(t, "Boa noite", Salutation(time.Date(2026, 8, 29, 18, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Boa noite", Salutation(time.Date(2026, 8, 29, 23, 30, 0, 0, time.UTC)))
}

func TestResolve_LocationFiltersSnapshot(t *testing.T) {
	reply := resolveAt(t, "que eventos ha em lisboa?", 15)
	assert.Equal(t, "Encontrei 2 evento(s) em Lisboa. Aqui estão as opções disponíveis:", reply.Text)
	assert.Len(t, reply.Events, 2)
	assert.Equal(t, "e1", reply.Events[0].ID)
	assert.Equal(t, "e3", reply.Events[1].ID)
}

func TestResolve_LocationWithoutMatches(t *testing.T) {
	empty := catalogDomain.NewSnapshot(1, "u1", "Ana", nil, nil, nil)
	reply := Resolve("eventos no porto", empty, "Ana", time.Now())
	assert.Equal(t, "Não encontrei eventos no Porto no momento. Posso ajudar com outra localização?", reply.Text)
	assert.Empty(t, reply.Events)
}

func TestResolve_CategoryMatchesDespiteAccents(t *testing.T) {
	// categoria do evento guardada como "Música"; query sem acentos
	reply := resolveAt(t, "tens eventos de musica?", 15)
	assert.Equal(t, "Encontrei 2 evento(s) de música:", reply.Text)
	assert.Len(t, reply.Events, 2)
}

func TestResolve_TodaySkipsDatelessEvents(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)
	reply := Resolve("o que ha hoje?", testSnapshot(), "Ana", now)
	assert.Equal(t, "Eventos para hoje (2026-08-30):", reply.Text)
	assert.Len(t, reply.Events, 2)
	for _, e := range reply.Events {
		assert.NotEqual(t, "e4", e.ID, "evento sem data não pode fazer match")
	}
}

func TestResolve_TodayWithoutMatches(t *testing.T) {
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	reply := Resolve("eventos hoje", testSnapshot(), "Ana", now)
	assert.Equal(t, "Não há eventos marcados para hoje. Gostaria de ver eventos dos próximos dias?", reply.Text)
	assert.Empty(t, reply.Events)
}

func TestResolve_UpcomingPicksEarliestFuture(t *testing.T) {
	reply := resolveAt(t, "qual o proximo evento?", 15)
	assert.Len(t, reply.Events, 1)
	assert.Equal(t, "e2", reply.Events[0].ID, "e2 e e3 têm a mesma data; a ordem do catálogo desempata")
	assert.Equal(t, "O próximo evento é \"Feira de Tech\" em Porto, no dia 2026-08-30.", reply.Text)
}

func TestResolve_UpcomingSkipsUnreadableDates(t *testing.T) {
	events := []catalogDomain.Event{
		{ID: "e1", Title: "Data partida", Location: "Lisboa", Date: "amanhã"},
		{ID: "e2", Title: "Válido", Location: "Porto", Date: "2026-10-01"},
	}
	snap := catalogDomain.NewSnapshot(1, "u1", "Ana", events, nil, nil)
	now := time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)

	reply := Resolve("proximo evento", snap, "Ana", now)
	assert.Len(t, reply.Events, 1)
	assert.Equal(t, "e2", reply.Events[0].ID)
}

func TestResolve_UpcomingWithoutFutureEvents(t *testing.T) {
	now := time.Date(2027, 1, 1, 9, 0, 0, 0, time.UTC)
	reply := Resolve("proximos eventos", testSnapshot(), "Ana", now)
	assert.Equal(t, "Não há eventos futuros disponíveis no momento.", reply.Text)
	assert.Empty(t, reply.Events)
}

func TestResolve_FallbackOnUnknownUtterance(t *testing.T) {
	reply := resolveAt(t, "algo aleatorio xyz", 15)
	assert.Equal(t, FallbackReply().Text, reply.Text)
	assert.Empty(t, reply.Events)
}

func TestResolve_NilSnapshotNeverPanics(t *testing.T) {
	reply := Resolve("eventos em lisboa", nil, "", time.Now())
	assert.NotEmpty(t, reply.Text)
	assert.Empty(t, reply.Events)
}

func TestResolve_IsDeterministic(t *testing.T) {
	now := time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)
	snap := testSnapshot()
	first := Resolve("eventos de tech no porto", snap, "Ana", now)
	second := Resolve("eventos de tech no porto", snap, "Ana", now)
	assert.Equal(t, first, second)
}
