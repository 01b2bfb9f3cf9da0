package frontend

import (
	"strings"

	"github.com/gutocz/CartonildosFRONT/internal/chat"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// Chat renders the room chat. History lives in the global state's feed so
// it survives navigation; this component only displays and sends.
type Chat struct {
	app.Compo
	input    string
	onUpdate func()
}

func (c *Chat) OnMount(ctx app.Context) {
	klog.V(1).Infof("Chat component: OnMount called")
	c.onUpdate = func() {
		ctx.Dispatch(func(ctx app.Context) {})
	}
	State.Listeners["chat"] = c.onUpdate
}

func (c *Chat) OnDismount() {
	delete(State.Listeners, "chat")
}

func (c *Chat) onInput(ctx app.Context, e app.Event) {
	c.input = ctx.JSSrc().Get("value").String()
}

func (c *Chat) onSend(ctx app.Context, e app.Event) {
	e.PreventDefault()
	text := strings.TrimSpace(c.input)
	if text == "" {
		return
	}
	State.SendChat(text)
	c.input = ""
}

func (c *Chat) Render() app.UI {
	var lines []app.UI
	for _, entry := range State.Chat.Entries() {
		class := "message other"
		switch entry.Kind {
		case chat.KindMine:
			class = "message my"
		case chat.KindSystem:
			class = "message system"
		}
		lines = append(lines, app.Div().Class(class).Text(entry.Text))
	}

	return app.Div().Class("chat-container").Body(
		app.Div().Class("messages-box").Body(lines...),
		app.Form().Class("input-area").OnSubmit(c.onSend).Body(
			app.Input().
				Type("text").
				Placeholder("Digite sua mensagem...").
				Value(c.input).
				OnInput(c.onInput),
			app.Button().Type("submit").Text("Enviar"),
		),
	)
}
