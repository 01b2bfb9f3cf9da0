package main

import (
	"flag"
	"os"

	"github.com/gutocz/CartonildosFRONT/internal/frontend"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

func main() {
	// Initialize klog for WASM, forcing logs to stderr (console)
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	fs.Set("logtostderr", "true")
	klog.SetOutput(os.Stderr)
	klog.Infof("WASM started!")

	app.Route("/", func() app.Composer { return &frontend.Lobby{} })
	app.Route("/game", func() app.Composer { return &frontend.Game{} })

	// Initialize the global app state manager
	frontend.InitState()

	// When building for WEB (GOOS=js GOARCH=wasm), this runs the frontend.
	app.RunWhenOnBrowser()
}
