package frontend

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// TopBar shows the product name, who we are and the connection status.
type TopBar struct {
	app.Compo
}

func (t *TopBar) Render() app.UI {
	status := "Desconectado"
	statusClass := "status offline"
	if State.Chan.IsConnected() {
		status = "Conectado"
		statusClass = "status online"
	}

	right := []app.UI{
		app.Li().Body(app.Span().Class(statusClass).Text(status)),
	}
	if me := State.Game.View().Me.Username; me != "" {
		right = append(right, app.Li().Body(app.Strong().Text(me)))
	}

	return app.Nav().Class("top-bar").Body(
		app.Ul().Body(
			app.Li().Body(app.Strong().Text("Cartonildos")),
		),
		app.Ul().Body(right...),
	)
}
