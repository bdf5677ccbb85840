package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/picbot"
	"github.com/aretw0/picbot/internal/presentation/tui"
	"github.com/aretw0/picbot/pkg/domain"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the bot interactively on the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		store, locker, cleanup, err := buildStore(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		channel := newConsoleChannel()

		opts := []picbot.Option{
			picbot.WithStore(store),
			picbot.WithChannel(channel),
			picbot.WithClassifier(buildClassifier(cfg)),
			picbot.WithSearcher(buildSearcher(cfg)),
			picbot.WithLogger(logger),
		}
		if locker != nil {
			opts = append(opts, picbot.WithLocker(locker))
		}

		bot, err := picbot.New(opts...)
		if err != nil {
			return err
		}

		conversationID, _ := cmd.Flags().GetString("conversation")
		if conversationID == "" {
			conversationID = uuid.NewString()
		}

		out := termenv.NewOutput(os.Stdout)
		prompt := out.String("you> ").Bold().String()

		tui.PrintBanner()
		fmt.Printf("Conversation %s. Type 'exit' to quit.\n", conversationID)

		scanner := bufio.NewScanner(os.Stdin)
		ctx := context.Background()
		for {
			fmt.Print(prompt)
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "exit" || line == "quit" {
				break
			}

			err := bot.HandleActivity(ctx, domain.Activity{
				Kind:           domain.ActivityMessage,
				Utterance:      line,
				ConversationID: conversationID,
			})
			if err != nil {
				logger.Error("turn failed", "err", err)
				fmt.Println("(something went wrong, see logs)")
			}
		}
		return scanner.Err()
	},
}

// consoleChannel renders bot replies to stdout, through glamour when the
// output is a terminal.
type consoleChannel struct {
	render func(string) string
}

func newConsoleChannel() *consoleChannel {
	c := &consoleChannel{}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		c.render = tui.NewRenderer()
	}
	return c
}

func (c *consoleChannel) Send(ctx context.Context, reply domain.Reply) error {
	text := tui.FormatReply(reply)
	if c.render != nil {
		text = c.render(text)
	}

	fmt.Printf("bot> %s\n", text)
	return nil
}

func init() {
	chatCmd.Flags().String("conversation", "", "Conversation ID to resume (default: a fresh UUID)")
	rootCmd.AddCommand(chatCmd)
}
