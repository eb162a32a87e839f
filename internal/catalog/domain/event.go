package domain

import (
	"strings"
	"time"

	sharedDomain "github.com/annaclara1997/event-buddy-project/internal/shared/domain"
)

// Event representa um evento do catálogo. Os nomes dos campos seguem os
// documentos de produção: "datetime" é a string de apresentação,
// "date" é a data ISO usada nos filtros do assistente.
type Event struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Datetime     string   `json:"datetime"`
	Date         string   `json:"date"`
	Location     string   `json:"location"`
	Category     string   `json:"category"`
	ImageURL     string   `json:"imageUrl"`
	Participants []string `json:"participants"`
	Favorites    []string `json:"favorites"`
}

// EventFromFields descodifica um documento de forma defensiva: campos
// ausentes ou com tipo errado ficam com o valor zero, nunca abortam a
// descodificação. Registos deste género são filtrados mais tarde, regra
// a regra, e não à entrada.
func EventFromFields(id string, fields map[string]any) Event {
	return Event{
		ID:           id,
		Title:        stringField(fields, "title"),
		Description:  stringField(fields, "description"),
		Datetime:     stringField(fields, "datetime"),
		Date:         stringField(fields, "date"),
		Location:     stringField(fields, "location"),
		Category:     stringField(fields, "category"),
		ImageURL:     stringField(fields, "imageUrl"),
		Participants: sharedDomain.StringsField(fields, "participants"),
		Favorites:    sharedDomain.StringsField(fields, "favorites"),
	}
}

func stringField(fields map[string]any, key string) string {
	if fields == nil {
		return ""
	}
	if s, ok := fields[key].(string); ok {
		return s
	}
	return ""
}

// ParsedDate devolve a data do evento. ok=false quando o campo "date"
// está ausente ou não é interpretável; quem chama deve excluir o evento
// do filtro em vez de falhar.
func (e Event) ParsedDate() (time.Time, bool) {
	if e.Date == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, e.Date); err == nil {
		return t, true
	}
	// só a parte da data, ex. "2026-09-12" ou "2026-09-12T19:30"
	day := e.Date
	if len(day) > 10 {
		day = day[:10]
	}
	if t, err := time.Parse("2006-01-02", day); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// OccursOn compara apenas o dia de calendário, tal como o filtro
// "hoje" originalmente comparava o prefixo ISO da data.
func (e Event) OccursOn(day time.Time) bool {
	return strings.HasPrefix(e.Date, day.Format("2006-01-02"))
}
