package frontend

import (
	"fmt"

	"github.com/gutocz/CartonildosFRONT/internal/gamestate"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// Game is the in-room screen: scoreboard, question, table, hand and chat.
type Game struct {
	app.Compo
	onUpdate func()
}

func (g *Game) OnAppUpdate(ctx app.Context) {
	klog.Infof("Game component: App update available, not reloading mid-game")
}

func (g *Game) OnMount(ctx app.Context) {
	klog.V(1).Infof("Game component: OnMount called")
	g.onUpdate = func() {
		ctx.Dispatch(func(ctx app.Context) {
			if !State.Chan.IsConnected() {
				klog.Infof("Game component: connection gone, back to lobby")
				ctx.Navigate("/")
			}
		})
	}
	State.Listeners["game"] = g.onUpdate

	if !State.Game.View().Joined {
		ctx.Navigate("/")
		return
	}
	State.RequestIdentity()
}

func (g *Game) OnDismount() {
	delete(State.Listeners, "game")
}

func (g *Game) onStartClick(ctx app.Context, e app.Event) {
	State.ToggleStartRestart()
}

func (g *Game) onDismissNotice(ctx app.Context, e app.Event) {
	State.DismissNotice()
}

func (g *Game) handCardClick(cardContent string) app.EventHandler {
	return func(ctx app.Context, e app.Event) {
		State.PlayCard(cardContent)
	}
}

func (g *Game) tableCardClick(owner string) app.EventHandler {
	return func(ctx app.Context, e app.Event) {
		State.ClickTableCard(owner)
	}
}

func (g *Game) renderMain(v *gamestate.View) app.UI {
	var banner app.UI = app.Text("")
	if v.Winner != nil {
		banner = app.Div().Class("winner-announcement").Body(
			app.H2().Text(fmt.Sprintf("%s venceu a rodada!", v.Winner.Winner)),
		)
	}

	if !v.GameRunning {
		var waiting app.UI = app.Text("")
		if v.Winner == nil {
			waiting = app.Div().Class("waiting-room").Body(
				app.H2().Text("Aguardando o líder iniciar o jogo..."),
				app.P().Body(
					app.Text("O líder da sala é: "),
					app.Strong().Text(v.Leader),
				),
			)
		}
		return app.Div().Class("main-content").Body(banner, waiting)
	}

	var tableCards []app.UI
	for _, owner := range sortedOwners(v.Table) {
		card := v.Table[owner]
		content := "Pronta"
		if card.Revealed {
			content = card.CardContent
		}
		tableCards = append(tableCards, renderCard(
			content, cardAnswer, v.CanJudge(), g.tableCardClick(owner),
		))
	}

	return app.Div().Class("main-content").Body(
		banner,
		app.Div().Class("question-area").Body(
			renderCard(v.Question, cardQuestion, false, nil),
		),
		app.Div().Class("table-area").Body(tableCards...),
	)
}

func (g *Game) renderHand(v *gamestate.View) app.UI {
	var handCards []app.UI
	for _, cardContent := range v.Me.Hand {
		handCards = append(handCards, renderCard(
			cardContent, cardAnswer, v.CanPlayCard(), g.handCardClick(cardContent),
		))
	}
	return app.Div().Class("hand-area").Body(handCards...)
}

func (g *Game) Render() app.UI {
	v := State.Game.View()

	if !v.Joined {
		return app.Main().Class("container").Body(
			app.Div().Aria("busy", "true").Text("Voltando para o lobby..."),
		)
	}

	startButtonText := "Começar Jogo"
	if v.GameRunning {
		startButtonText = "Reiniciar Jogo"
	}

	var startButton app.UI = app.Text("")
	if v.IsLeader() {
		startButton = app.Button().
			Class("control-button").
			Text(startButtonText).
			OnClick(g.onStartClick)
	}

	return app.Main().Class("container page-grid").Body(
		&TopBar{},
		renderAlert(v.Notice, g.onDismissNotice),
		app.Div().Class("left-panel").Body(
			renderScoreBoard(v.Scores, v.RoundMaster),
			startButton,
		),
		g.renderMain(v),
		g.renderHand(v),
		app.Div().Class("right-panel").Body(
			&Chat{},
		),
	)
}
