package domain

import (
	"fmt"
	"strings"
	"time"

	catalogDomain "github.com/annaclara1997/event-buddy-project/internal/catalog/domain"
)

// Query é a entrada já normalizada de uma resolução de intenção.
type Query struct {
	Normalized  string
	Snapshot    *catalogDomain.Snapshot
	DisplayName string
	Now         time.Time
}

// Reply é a saída: texto de resposta e, opcionalmente, a sublista de
// eventos que a regra filtrou do snapshot.
type Reply struct {
	Text   string                `json:"text"`
	Events []catalogDomain.Event `json:"events"`
}

// Rule é um par (predicado, handler). O predicado testa apenas contenção
// de palavras-chave no texto normalizado.
type Rule struct {
	Name   string
	Match  func(normalized string) bool
	Handle func(q Query) Reply
}

// Rules devolve a cadeia de regras na sua ordem fixa de prioridade.
// A ordem é significativa: a primeira regra cujo predicado acerta ganha
// e as seguintes nem são avaliadas. Nomeadamente, uma saudação ganha
// sempre a uma localização ("Olá, eventos em Lisboa?" é saudação).
func Rules() []Rule {
	return []Rule{
		{
			Name:   "greeting",
			Match:  matchAny("ola", "oi", "bom dia", "boa tarde", "boa noite"),
			Handle: handleGreeting,
		},
		{
			Name:   "thanks",
			Match:  matchAny("obrigado", "obrigada"),
			Handle: staticReply("De nada! Fico feliz em ajudar. Há mais alguma coisa que gostaria de saber sobre os eventos?"),
		},
		{
			Name:  "location-lisboa",
			Match: matchAny("lisboa"),
			Handle: locationHandler("lisboa",
				"Encontrei %d evento(s) em Lisboa. Aqui estão as opções disponíveis:",
				"Não encontrei eventos em Lisboa no momento. Gostaria de verificar outras cidades?"),
		},
		{
			Name:  "location-porto",
			Match: matchAny("porto"),
			Handle: locationHandler("porto",
				"Encontrei %d evento(s) no Porto. Veja as opções:",
				"Não encontrei eventos no Porto no momento. Posso ajudar com outra localização?"),
		},
		{
			Name:   "today",
			Match:  matchAny("data", "dia", "hoje"),
			Handle: handleToday,
		},
		{
			Name:   "upcoming",
			Match:  matchAny("proximo", "futuro"),
			Handle: handleUpcoming,
		},
		{
			Name:  "category-musica",
			Match: matchAny("musica"),
			Handle: categoryHandler("musica",
				"Encontrei %d evento(s) de música:",
				"Não há eventos de música disponíveis no momento."),
		},
		{
			Name:  "category-desporto",
			Match: matchAny("desporto", "esporte"),
			Handle: categoryHandler("desporto",
				"Encontrei %d evento(s) de desporto:",
				"Não há eventos de desporto disponíveis no momento."),
		},
		{
			Name:  "category-culinaria",
			Match: matchAny("culinaria", "comida"),
			Handle: categoryHandler("culinaria",
				"Encontrei %d evento(s) de culinária:",
				"Não há eventos de culinária disponíveis no momento."),
		},
		{
			Name:  "category-tech",
			Match: matchAny("tech", "tecnologia"),
			Handle: categoryHandler("tech",
				"Encontrei %d evento(s) de tecnologia:",
				"Não há eventos de tecnologia disponíveis no momento."),
		},
		{
			Name:  "category-arte",
			Match: matchAny("arte"),
			Handle: categoryHandler("arte",
				"Encontrei %d evento(s) de arte:",
				"Não há eventos de arte disponíveis no momento."),
		},
		{
			Name:  "category-educacao",
			Match: matchAny("educacao"),
			Handle: categoryHandler("educacao",
				"Encontrei %d evento(s) de educação:",
				"Não há eventos de educação disponíveis no momento."),
		},
		{
			Name:  "help",
			Match: matchAny("ajuda", "help"),
			Handle: staticReply("Posso ajudar você a encontrar eventos de várias formas:\n\n" +
				"• Por localização: \"eventos em Lisboa\" ou \"eventos no Porto\"\n" +
				"• Por data: \"eventos hoje\" ou \"próximos eventos\"\n" +
				"• Por categoria: \"eventos de música\", \"eventos de desporto\", etc.\n\n" +
				"O que gostaria de procurar?"),
		},
	}
}

// FallbackReply é a resposta default quando nenhuma regra acerta.
func FallbackReply() Reply {
	return Reply{
		Text: "Não entendi completamente sua pergunta. Posso ajudar você a encontrar eventos por:\n\n" +
			"• Localização (Lisboa, Porto)\n" +
			"• Data (hoje, próximos)\n" +
			"• Categoria (música, desporto, culinária, tech, arte, educação)\n\n" +
			"Tente reformular sua pergunta ou digite \"ajuda\" para mais informações.",
		Events: []catalogDomain.Event{},
	}
}

// Resolve é puro e determinístico: para o mesmo (utterance, snapshot,
// displayName, now) a resposta é sempre idêntica. Nunca falha; registos
// malformados são excluídos pelos handlers, não abortam a resolução.
func Resolve(utterance string, snap *catalogDomain.Snapshot, displayName string, now time.Time) Reply {
	q := Query{
		Normalized:  Normalize(utterance),
		Snapshot:    snap,
		DisplayName: displayName,
		Now:         now,
	}
	for _, rule := range Rules() {
		if rule.Match(q.Normalized) {
			return rule.Handle(q)
		}
	}
	return FallbackReply()
}

// ---------------- Predicados ----------------

func matchAny(keywords ...string) func(string) bool {
	return func(normalized string) bool {
		for _, kw := range keywords {
			if strings.Contains(normalized, kw) {
				return true
			}
		}
		return false
	}
}

// ---------------- Handlers ----------------

func snapshotEvents(q Query) []catalogDomain.Event {
	if q.Snapshot == nil {
		return nil
	}
	return q.Snapshot.Events
}

// Salutation devolve a saudação pela hora local de now.
func Salutation(now time.Time) string {
	switch hora := now.Hour(); {
	case hora < 12:
		return "Bom dia"
	case hora < 18:
		return "Boa tarde"
	default:
		return "Boa noite"
	}
}

func handleGreeting(q Query) Reply {
	name := q.DisplayName
	if name == "" {
		name = catalogDomain.DefaultDisplayName
	}
	return Reply{
		Text:   fmt.Sprintf("%s, %s! Como posso ajudar você a encontrar eventos interessantes?", Salutation(q.Now), name),
		Events: []catalogDomain.Event{},
	}
}

func staticReply(text string) func(Query) Reply {
	return func(Query) Reply {
		return Reply{Text: text, Events: []catalogDomain.Event{}}
	}
}

func locationHandler(key, foundTmpl, emptyText string) func(Query) Reply {
	return func(q Query) Reply {
		var found []catalogDomain.Event
		for _, e := range snapshotEvents(q) {
			if strings.Contains(Normalize(e.Location), key) {
				found = append(found, e)
			}
		}
		if len(found) == 0 {
			return Reply{Text: emptyText, Events: []catalogDomain.Event{}}
		}
		return Reply{Text: fmt.Sprintf(foundTmpl, len(found)), Events: found}
	}
}

func categoryHandler(key, foundTmpl, emptyText string) func(Query) Reply {
	return func(q Query) Reply {
		var found []catalogDomain.Event
		for _, e := range snapshotEvents(q) {
			if strings.Contains(Normalize(e.Category), key) {
				found = append(found, e)
			}
		}
		if len(found) == 0 {
			return Reply{Text: emptyText, Events: []catalogDomain.Event{}}
		}
		return Reply{Text: fmt.Sprintf(foundTmpl, len(found)), Events: found}
	}
}

func handleToday(q Query) Reply {
	today := q.Now.Format("2006-01-02")
	var found []catalogDomain.Event
	for _, e := range snapshotEvents(q) {
		// eventos sem campo "date" nunca fazem match, são excluídos
		if e.OccursOn(q.Now) {
			found = append(found, e)
		}
	}
	if len(found) == 0 {
		return Reply{
			Text:   "Não há eventos marcados para hoje. Gostaria de ver eventos dos próximos dias?",
			Events: []catalogDomain.Event{},
		}
	}
	return Reply{Text: fmt.Sprintf("Eventos para hoje (%s):", today), Events: found}
}

// handleUpcoming escolhe o evento futuro de data mínima. Empates são
// desfeitos pela ordem do catálogo (a seleção é estável); eventos com
// data ausente ou ilegível são saltados em vez de abortar.
func handleUpcoming(q Query) Reply {
	var (
		next    catalogDomain.Event
		nextAt  time.Time
		hasNext bool
	)
	for _, e := range snapshotEvents(q) {
		at, ok := e.ParsedDate()
		if !ok || !at.After(q.Now) {
			continue
		}
		if !hasNext || at.Before(nextAt) {
			next, nextAt, hasNext = e, at, true
		}
	}
	if !hasNext {
		return Reply{Text: "Não há eventos futuros disponíveis no momento.", Events: []catalogDomain.Event{}}
	}
	return Reply{
		Text:   fmt.Sprintf("O próximo evento é %q em %s, no dia %s.", next.Title, next.Location, next.Date),
		Events: []catalogDomain.Event{next},
	}
}
