package frontend

import (
	"fmt"
	"sort"

	"github.com/gutocz/CartonildosFRONT/internal/protocol"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

type cardKind int

const (
	cardQuestion cardKind = iota
	cardAnswer
)

// renderCard draws a single card. Presentation only; whether the click
// does anything is decided by the caller through clickable/onClick.
func renderCard(content string, kind cardKind, clickable bool, onClick app.EventHandler) app.UI {
	class := "card answer-card"
	if kind == cardQuestion {
		class = "card question-card"
	}
	if clickable {
		class += " clickable"
	} else {
		class += " disabled"
	}

	card := app.Div().Class(class).Body(
		app.P().Class("card-text").Text(content),
	)
	if clickable && onClick != nil {
		card = card.OnClick(onClick)
	}
	return card
}

// renderScoreBoard draws the roster sorted by points, crowning the round
// master.
func renderScoreBoard(scores []protocol.UserScore, roundMaster string) app.UI {
	sorted := make([]protocol.UserScore, len(scores))
	copy(sorted, scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Points > sorted[j].Points
	})

	var items []app.UI
	for _, score := range sorted {
		name := score.Username
		if score.Username == roundMaster {
			name = "👑 " + name
		}
		items = append(items, app.Li().Class("score-item").Body(
			app.Span().Class("username").Text(name),
			app.Span().Class("points").Text(fmt.Sprintf("%d pts", score.Points)),
		))
	}

	return app.Div().Class("score-container").Body(
		app.H2().Text("Placar"),
		app.Ul().Class("score-list").Body(items...),
	)
}

// renderAlert draws the dismissible error banner, or nothing when the
// message is empty.
func renderAlert(message string, onClose app.EventHandler) app.UI {
	if message == "" {
		return app.Text("")
	}
	return app.Div().Class("error-container").Body(
		app.P().Class("error-message").Text(message),
		app.Button().Class("close-button").Text("×").OnClick(onClose),
	)
}

// sortedOwners returns the table keys in a stable order, so cards do not
// jump around between renders.
func sortedOwners(table map[string]protocol.TableCard) []string {
	owners := make([]string, 0, len(table))
	for owner := range table {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	return owners
}
