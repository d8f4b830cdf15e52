//go:build !test

/* bot_runtime.go
 * Contains runtime-only Discord bot methods that use *discordgo.Session directly.
 * Delegates to testable handlers in handlers.go to avoid code duplication.
 */

package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
)

// Run starts the Discord bot and listens for messages until ctx is cancelled
func (b *Bot) Run(ctx context.Context) error {
	discord, err := discordgo.New("Bot " + b.BotToken)
	if err != nil {
		return fmt.Errorf("failed to create discord session: %w", err)
	}
	discord.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentMessageContent

	discord.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		b.newMessageHandler(ctx, s, m, s.State.User.ID)
	})

	if err := discord.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	defer discord.Close()

	log.Info("Pickems Bot started")
	<-ctx.Done()
	log.Info("Pickems Bot stopping")
	return nil
}
