package main

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

// Config holds the serving options for the client shell. The game server
// itself lives elsewhere; wsURL tells the browser where to find it.
type Config struct {
	bind    string
	port    int
	wsURL   string
	version string
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if !strings.HasPrefix(c.wsURL, "ws://") && !strings.HasPrefix(c.wsURL, "wss://") {
		return fmt.Errorf("invalid websocket url (must start with ws:// or wss://): %s", c.wsURL)
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CARTONILDOS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "cartonildos-front",
		Short:         "Serves the Cartonildos browser client (go-app shell + WASM).",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: CARTONILDOS_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8000, "port to listen on (env: CARTONILDOS_PORT)")
	fs.StringVar(&cfg.wsURL, "ws-url", "ws://localhost:8080", "game server websocket url handed to the client (env: CARTONILDOS_WS_URL)")
	fs.StringVar(&cfg.version, "app-version", "", "client bundle version; empty forces a fresh WASM on every restart (env: CARTONILDOS_APP_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	return cmd
}

func main() {
	klog.InitFlags(nil)

	// Local development keeps the websocket url in a .env file.
	if err := godotenv.Load(); err != nil {
		klog.V(1).Infof("no .env file loaded: %v", err)
	}

	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}
