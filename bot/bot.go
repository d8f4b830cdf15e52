/* bot.go
 * Contains the Bot struct and the helpers shared by the command handlers. Requires a discord bot token and ApiPtr,
 * both of which are passed in from main.go
 */

package bot

import (
	"fmt"
	"strings"

	"pickems-tracker/api/api"

	"github.com/go-andiamo/splitter"
)

// CommandPrefix starts every bot command
const CommandPrefix = "&"

type Bot struct {
	BotToken string
	APIPtr   *api.API
	Limiter  *UserLimiter

	admins map[string]bool
}

// NewBot creates a bot. Admins are matched against a user's id or username
func NewBot(botToken string, apiPtr *api.API, admins []string, limiter *UserLimiter) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if apiPtr == nil {
		return nil, fmt.Errorf("api is required but none was provided")
	}
	if limiter == nil {
		limiter = NewUserLimiter(0, 1)
	}

	adminSet := make(map[string]bool, len(admins))
	for _, admin := range admins {
		if admin = strings.TrimSpace(admin); admin != "" {
			adminSet[admin] = true
		}
	}

	return &Bot{
		BotToken: botToken,
		APIPtr:   apiPtr,
		Limiter:  limiter,
		admins:   adminSet,
	}, nil
}

// isAdmin reports whether the author may run operator commands
func (b *Bot) isAdmin(userID string, username string) bool {
	return b.admins[userID] || b.admins[username]
}

// commandName returns the lower-cased command word of a message, e.g. "pick" for "&pick 1 Team A",
// or "" if the message is not a command
func commandName(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, CommandPrefix) {
		return ""
	}
	word, _, _ := strings.Cut(content[len(CommandPrefix):], " ")
	return strings.ToLower(word)
}

// commandArgs returns everything after the command word
func commandArgs(content string) string {
	_, args, _ := strings.Cut(strings.TrimSpace(content), " ")
	return strings.TrimSpace(args)
}

// splitArgs splits command arguments on sep while keeping "quoted team names" together. Using splitter instead of
// strings.Split means a name such as "Faze Clan" is one argument, not two
func splitArgs(sep rune, args string) ([]string, error) {
	argSplitter, err := splitter.NewSplitter(sep, splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return nil, err
	}
	parts, err := argSplitter.Split(args)
	if err != nil {
		return nil, err
	}

	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			fields = append(fields, part)
		}
	}
	return fields, nil
}

// unquote strips the straight or curly quotes users wrap multi-word names in
func unquote(s string) string {
	return strings.TrimSpace(strings.NewReplacer("\"", "", "“", "", "”", "").Replace(s))
}

// codeBlock wraps text in a discord code block
func codeBlock(body string) string {
	return "```" + body + "```"
}
