package frontend

import (
	"strings"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// Lobby is the entry screen: pick a nick and join the room.
type Lobby struct {
	app.Compo
	onUpdate func()
}

func (l *Lobby) OnAppUpdate(ctx app.Context) {
	klog.Infof("Lobby component: App update available, reloading...")
	ctx.Reload()
}

func (l *Lobby) OnMount(ctx app.Context) {
	klog.V(1).Infof("Lobby component: OnMount called")
	l.onUpdate = func() {
		ctx.Dispatch(func(ctx app.Context) {
			v := State.Game.View()
			if v.Joined {
				klog.Infof("Lobby component: joined, navigating to game")
				ctx.Navigate("/game")
				return
			}
			if v.Notice != "" {
				// The join was rejected; let the user try another nick.
				State.Joining = false
			}
		})
	}
	State.Listeners["lobby"] = l.onUpdate

	if err := State.Connect(); err != nil {
		klog.Errorf("Lobby component: connect failed: %v", err)
	}
}

func (l *Lobby) OnDismount() {
	delete(State.Listeners, "lobby")
}

func (l *Lobby) onNameChange(ctx app.Context, e app.Event) {
	State.PendingName = ctx.JSSrc().Get("value").String()
}

func (l *Lobby) onJoin(ctx app.Context, e app.Event) {
	e.PreventDefault()
	name := strings.TrimSpace(State.PendingName)
	if name == "" {
		State.Game.SetNotice("O nome de usuário não pode ser vazio.")
		return
	}
	State.JoinRoom(name)
}

func (l *Lobby) onDismissNotice(ctx app.Context, e app.Event) {
	State.DismissNotice()
}

func (l *Lobby) Render() app.UI {
	connected := State.Chan.IsConnected()

	buttonText := "Conectando..."
	if connected {
		buttonText = "Entrar na Sala"
		if State.Joining {
			buttonText = "Entrando..."
		}
	}

	notice := State.Game.View().Notice

	return app.Main().Class("container").Body(
		renderAlert(notice, l.onDismissNotice),
		app.Article().Class("join-box").Body(
			app.Header().Body(
				app.H1().Text("Cartonildos"),
				app.P().Text("Entre em uma sala para jogar"),
			),
			app.Form().OnSubmit(l.onJoin).Body(
				app.Input().
					Type("text").
					ID("nick").
					Name("nick").
					Placeholder("Digite seu nick...").
					MaxLength(20).
					Value(State.PendingName).
					Disabled(State.Joining).
					AutoComplete(false).
					OnInput(l.onNameChange),
				app.Button().
					Type("submit").
					Disabled(!connected || State.Joining).
					Text(buttonText),
			),
		),
	)
}
