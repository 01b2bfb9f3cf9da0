package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gutocz/CartonildosFRONT/internal/frontend"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// serve hosts the go-app shell and static assets, and blocks until the
// context is canceled. All game traffic flows directly between the
// browser and the game server at cfg.wsURL; nothing here touches game
// state.
func serve(ctx context.Context, cfg *Config) error {
	// Register the same routes the WASM side uses, so the server knows how
	// to prerender them.
	app.Route("/", func() app.Composer { return &frontend.Lobby{} })
	app.Route("/game", func() app.Composer { return &frontend.Game{} })
	frontend.InitState()

	version := cfg.version
	if version == "" {
		// A random version makes clients drop their cached WASM after
		// every restart, which is what you want during development.
		version = uuid.NewString()
		klog.Infof("serve: no version pinned, using %s", version)
	}

	h := &app.Handler{
		Name:        "Cartonildos",
		Description: "Um jogo de cartas para preencher lacunas, em tempo real",
		Lang:        "pt-BR",
		Version:     version,
		Env: map[string]string{
			"CARTONILDOS_WS_URL": cfg.wsURL,
		},
		Styles: []string{
			"/web/css/pico.min.css",
			"/web/css/cartonildos.css",
		},
	}

	mux := http.NewServeMux()
	mux.Handle("/web/", http.StripPrefix("/web/", http.FileServer(http.Dir("web/"))))
	mux.Handle("/", h)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.bind, cfg.port),
		Handler: mux,
	}

	go func() {
		klog.Infof("serve: listening on http://%s (game server: %s)", srv.Addr, cfg.wsURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			klog.Errorf("serve: server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	klog.Infof("serve: shutting down")
	return srv.Shutdown(shutdownCtx)
}
