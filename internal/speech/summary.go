package speech

import (
	"fmt"
	"strings"

	"eisen/internal/model"

	"golang.org/x/text/language"
)

const DefaultLocale = "pt-BR"

// Locale is a selectable voice.
type Locale struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
}

var locales = []Locale{
	{Tag: "pt-BR", Label: "Português (Brasil)"},
	{Tag: "pt-PT", Label: "Português (Portugal)"},
	{Tag: "en-US", Label: "English (US)"},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(locales))
	for i, l := range locales {
		tags[i] = language.MustParse(l.Tag)
	}
	return language.NewMatcher(tags)
}()

// Locales lists the voices offered by the surfaces, default first.
func Locales() []Locale { return append([]Locale(nil), locales...) }

// NormalizeLocale maps any BCP 47 string to the closest supported voice.
// Unparsable or empty input yields DefaultLocale.
func NormalizeLocale(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLocale
	}
	tag, err := language.Parse(s)
	if err != nil {
		return DefaultLocale
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return DefaultLocale
	}
	return locales[idx].Tag
}

func isEnglish(locale string) bool {
	base, _ := language.MustParse(NormalizeLocale(locale)).Base()
	return base.String() == "en"
}

// UrgentSummary is the spoken "today" briefing for the given urgent tasks.
func UrgentSummary(locale string, urgent []model.Task) string {
	en := isEnglish(locale)
	if len(urgent) == 0 {
		if en {
			return "Great news! You have no urgent tasks for today. Good job!"
		}
		return "Ótima notícia! Você não tem nenhuma tarefa urgente para hoje. Bom trabalho!"
	}

	var b strings.Builder
	n := len(urgent)
	plural := ""
	if n > 1 {
		plural = "s"
	}
	if en {
		fmt.Fprintf(&b, "Hello! You have %d urgent task%s for today. They are: ", n, plural)
	} else {
		fmt.Fprintf(&b, "Olá! Você tem %d tarefa%s urgente%s para hoje. São elas: ", n, plural, plural)
	}
	for i, t := range urgent {
		fmt.Fprintf(&b, "%d. %s. ", i+1, t.Title)
	}
	return strings.TrimSpace(b.String())
}

// GroupSummary describes similarity groups by their first task.
func GroupSummary(locale string, groups [][]model.Task) string {
	en := isEnglish(locale)
	var b strings.Builder
	if en {
		fmt.Fprintf(&b, "I found %d groups of tasks. ", len(groups))
	} else {
		fmt.Fprintf(&b, "Encontrei %d grupos de tarefas. ", len(groups))
	}
	for i, g := range groups {
		if len(g) == 0 {
			continue
		}
		if en {
			fmt.Fprintf(&b, "Group %d seems to be about %s and has %d tasks. ", i+1, g[0].Title, len(g))
		} else {
			fmt.Fprintf(&b, "O grupo %d parece ser sobre %s e contém %d tarefas. ", i+1, g[0].Title, len(g))
		}
	}
	return strings.TrimSpace(b.String())
}
