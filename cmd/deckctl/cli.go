package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ytget/deck-mobile/internal/board"
	"github.com/ytget/deck-mobile/internal/config"
	"github.com/ytget/deck-mobile/internal/deck"
	"github.com/ytget/deck-mobile/internal/logger"
	"github.com/ytget/deck-mobile/internal/store"
)

// cli holds the flags and the services built from them
type cli struct {
	out io.Writer

	// configDirs replaces the default deck.yaml search path when set
	configDirs []string

	server   string
	user     string
	password string
	token    string
	timeout  time.Duration
	verbose  bool

	boot    *config.Bootstrap
	log     *zap.Logger
	store   *store.Store
	service *board.Service
}

func newCLI(out io.Writer) *cli {
	return &cli{out: out}
}

// setup loads the configuration, lets flags override it and builds the services
func (c *cli) setup(cmd *cobra.Command) error {
	var (
		boot *config.Bootstrap
		err  error
	)
	if c.configDirs != nil {
		boot, err = config.LoadBootstrapFrom(c.configDirs...)
	} else {
		boot, err = config.LoadBootstrap()
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("server") {
		boot.Server = c.server
	}
	if flags.Changed("user") {
		boot.User = c.user
	}
	if flags.Changed("password") {
		boot.Password = c.password
	}
	if flags.Changed("token") {
		boot.Token = c.token
	}
	if flags.Changed("timeout") {
		boot.Timeout = c.timeout
	}
	if c.verbose {
		boot.Log.Level = zapcore.DebugLevel.String()
	}
	if err := boot.Validate(); err != nil {
		return err
	}
	c.boot = boot

	c.log = logger.New(&boot.Log)
	c.store = store.New()
	client := deck.NewClient(
		func() deck.Credentials {
			session := c.store.Session()
			return deck.Credentials{Server: session.Server, Token: session.Token}
		},
		deck.WithTimeout(boot.Timeout),
		deck.WithLogger(c.log.Named("deck")),
	)
	c.service = board.NewService(client, client, c.store, nil,
		board.WithLogger(c.log),
		board.WithPrefetchConcurrency(boot.PrefetchConcurrency),
	)
	return nil
}

// signIn establishes the session from a token or by logging in
func (c *cli) signIn(ctx context.Context) error {
	if c.boot.Server == "" {
		return fmt.Errorf("no server configured (use --server or DECK_SERVER)")
	}

	if c.boot.Token != "" {
		server, err := deck.NormalizeServerURL(c.boot.Server)
		if err != nil {
			return err
		}
		c.store.SetSession(server, c.boot.Token)
		return nil
	}

	if !c.boot.HasCredentials() {
		return fmt.Errorf("no credentials configured (use --token, or --user and --password)")
	}
	return c.service.Login(ctx, c.boot.Server, c.boot.User, c.boot.Password)
}

func (c *cli) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
