package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ytget/deck-mobile/internal/model"
)

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "deckctl",
		Short:         "Manage Deck boards from the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}
	root.SetOut(c.out)

	flags := root.PersistentFlags()
	flags.StringVar(&c.server, "server", "", "Server address (or DECK_SERVER)")
	flags.StringVar(&c.user, "user", "", "User name (or DECK_USER)")
	flags.StringVar(&c.password, "password", "", "Password or app-password (or DECK_PASSWORD)")
	flags.StringVar(&c.token, "token", "", "Authorization header value from 'deckctl login' (or DECK_TOKEN)")
	flags.DurationVar(&c.timeout, "timeout", 0, "Request timeout (or DECK_TIMEOUT in seconds)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newLoginCmd(c),
		newLogoutCmd(c),
		newBoardsCmd(c),
		newStacksCmd(c),
		newCardsCmd(c),
	)
	return root
}

func newLoginCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Obtain an app-password and print the token to reuse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.boot.Token = ""
			if err := c.signIn(cmd.Context()); err != nil {
				return err
			}
			session := c.store.Session()
			c.printf("DECK_SERVER=%q\nDECK_TOKEN=%q\n", session.Server, session.Token)
			return nil
		},
	}
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the app-password of the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.signIn(cmd.Context()); err != nil {
				return err
			}
			if err := c.service.Logout(cmd.Context()); err != nil {
				return err
			}
			c.printf("Logged out\n")
			return nil
		},
	}
}

func newBoardsCmd(c *cli) *cobra.Command {
	boards := &cobra.Command{
		Use:   "boards",
		Short: "List and create boards",
	}

	var withCards bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List boards that are neither archived nor deleted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := c.signIn(ctx); err != nil {
				return err
			}
			if err := c.service.LoadBoards(ctx); err != nil {
				return err
			}
			if withCards {
				if err := c.service.PrefetchStacks(ctx); err != nil {
					return err
				}
			}

			w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCOLOR\tCARDS")
			for _, b := range c.store.Boards() {
				cards := "-"
				if withCards {
					cards = strconv.Itoa(b.CardCount())
				}
				fmt.Fprintf(w, "%d\t%s\t#%s\t%s\n", b.ID, b.GetDisplayTitle(), b.Color, cards)
			}
			return w.Flush()
		},
	}
	list.Flags().BoolVar(&withCards, "cards", false, "Load stacks concurrently and count cards")

	create := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a board with a random color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.signIn(cmd.Context()); err != nil {
				return err
			}
			created, err := c.service.CreateBoard(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			c.printf("Created board %d %q (#%s)\n", created.ID, created.Title, created.Color)
			return nil
		},
	}

	boards.AddCommand(list, create)
	return boards
}

func newStacksCmd(c *cli) *cobra.Command {
	stacks := &cobra.Command{
		Use:   "stacks",
		Short: "List and create the stacks of a board",
	}

	list := &cobra.Command{
		Use:   "list <board-id>",
		Short: "List the stacks of a board with their cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID, err := parseID("board-id", args[0])
			if err != nil {
				return err
			}
			b, err := c.loadBoard(cmd, boardID)
			if err != nil {
				return err
			}
			if len(b.Stacks) == 0 {
				c.printf("Board %d has no stack\n", boardID)
				return nil
			}
			for _, stack := range b.Stacks {
				c.printf("%d %s (%d)\n", stack.ID, stack.Title, len(stack.Cards))
				for _, card := range stack.Cards {
					c.printf("  %d %s\n", card.ID, card.GetDisplayTitle())
				}
			}
			return nil
		},
	}

	create := &cobra.Command{
		Use:   "create <board-id> <title>",
		Short: "Append a stack to a board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID, err := parseID("board-id", args[0])
			if err != nil {
				return err
			}
			if _, err := c.loadBoard(cmd, boardID); err != nil {
				return err
			}
			created, err := c.service.CreateStack(cmd.Context(), boardID, args[1])
			if err != nil {
				return err
			}
			c.printf("Created stack %d %q\n", created.ID, created.Title)
			return nil
		},
	}

	stacks.AddCommand(list, create)
	return stacks
}

func newCardsCmd(c *cli) *cobra.Command {
	cards := &cobra.Command{
		Use:   "cards",
		Short: "Create and move cards",
	}

	var description string
	create := &cobra.Command{
		Use:   "create <board-id> <stack-id> <title>",
		Short: "Create a card in a stack",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args[:2], "board-id", "stack-id")
			if err != nil {
				return err
			}
			if _, err := c.loadBoard(cmd, ids[0]); err != nil {
				return err
			}
			created, err := c.service.CreateCard(cmd.Context(), ids[0], ids[1], args[2], description)
			if err != nil {
				return err
			}
			c.printf("Created card %d %q\n", created.ID, created.Title)
			return nil
		},
	}
	create.Flags().StringVarP(&description, "description", "d", "", "Card description (Markdown)")

	move := &cobra.Command{
		Use:   "move <board-id> <card-id> <stack-id>",
		Short: "Move a card to the top of another stack",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args, "board-id", "card-id", "stack-id")
			if err != nil {
				return err
			}
			boardID, cardID, toStackID := ids[0], ids[1], ids[2]

			b, err := c.loadBoard(cmd, boardID)
			if err != nil {
				return err
			}
			fromStackID, found := stackOfCard(b, cardID)
			if !found {
				return fmt.Errorf("card %d is not on board %d", cardID, boardID)
			}
			if _, ok := b.Stack(toStackID); !ok {
				return fmt.Errorf("stack %d is not on board %d", toStackID, boardID)
			}

			if err := c.service.MoveCard(cmd.Context(), boardID, fromStackID, toStackID, cardID); err != nil {
				return err
			}
			c.printf("Moved card %d from stack %d to stack %d\n", cardID, fromStackID, toStackID)
			return nil
		},
	}

	cards.AddCommand(create, move)
	return cards
}

// loadBoard signs in and fetches the board with its stacks
func (c *cli) loadBoard(cmd *cobra.Command, boardID int) (model.Board, error) {
	ctx := cmd.Context()
	if err := c.signIn(ctx); err != nil {
		return model.Board{}, err
	}
	if err := c.service.LoadBoards(ctx); err != nil {
		return model.Board{}, err
	}
	if _, ok := c.store.Board(boardID); !ok {
		return model.Board{}, fmt.Errorf("board %d not found", boardID)
	}
	if _, err := c.service.LoadBoard(ctx, boardID); err != nil {
		return model.Board{}, err
	}
	b, _ := c.store.Board(boardID)
	return b, nil
}

func stackOfCard(b model.Board, cardID int) (int, bool) {
	for _, stack := range b.Stacks {
		if card, _ := stack.Card(cardID); card != nil {
			return stack.ID, true
		}
	}
	return 0, false
}

func parseID(name, value string) (int, error) {
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	return id, nil
}

func parseIDs(values []string, names ...string) ([]int, error) {
	ids := make([]int, len(values))
	for i, value := range values {
		id, err := parseID(names[i], value)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
