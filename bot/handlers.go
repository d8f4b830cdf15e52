/* handlers.go
 * Contains the command handlers. Each accepts the DiscordSession interface so it can be tested with a mock session
 */

package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pickems-tracker/api/api"
	"pickems-tracker/api/shared"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
)

var userCommands = []string{
	"&pick x y    : picks team y for match x",
	"&matches     : displays all current and past matches",
	"&userpicks   : displays the picks made by users per match",
	"&scores      : displays the scores in descending order for all participants",
	"&multipliers : displays the points gained per stage of the tournament",
}

var adminCommands = []string{
	"&set x y z           : sets the value z for the variable y for match x",
	"&addmatch x, y, z, a : adds x vs y in stage z for time a",
	"&endmatch x a-b      : records result a-b for match x",
}

// newMessageHandler routes messages to the appropriate handler.
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	if message.Author == nil || message.Author.ID == botUserID || message.Author.Bot {
		return
	}

	command := commandName(message.Content)
	handler, ok := b.handlers()[command]
	if !ok {
		return
	}

	if !b.Limiter.Allow(message.Author.ID) {
		log.Warn("Rate limited command", "user", message.Author.Username, "command", command)
		b.reply(session, message, fmt.Sprintf("Slow down %s, try again in a moment", message.Author.Username))
		return
	}

	b.APIPtr.Metrics.IncCommands(command)
	log.Info("Command received", "user", message.Author.Username, "command", command)
	handler(ctx, session, message)
}

type handlerFunc func(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate)

func (b *Bot) handlers() map[string]handlerFunc {
	return map[string]handlerFunc{
		"help":        b.helpMessageHandler,
		"pick":        b.pickHandler,
		"matches":     b.matchesHandler,
		"userpicks":   b.userPicksHandler,
		"scores":      b.scoresHandler,
		"multipliers": b.multipliersHandler,
		"set":         b.adminOnly(b.setHandler),
		"addmatch":    b.adminOnly(b.addMatchHandler),
		"endmatch":    b.adminOnly(b.endMatchHandler),
	}
}

// adminOnly rejects the command unless the author is in the admin list
func (b *Bot) adminOnly(next handlerFunc) handlerFunc {
	return func(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
		if !b.isAdmin(message.Author.ID, message.Author.Username) {
			b.reply(session, message, "You do not have permission to use this command")
			return
		}
		next(ctx, session, message)
	}
}

func (b *Bot) reply(session DiscordSession, message *discordgo.MessageCreate, content string) {
	if _, err := session.ChannelMessageSend(message.ChannelID, content); err != nil {
		log.Error("Failed to send message", "channel", message.ChannelID, "error", err)
	}
}

// helpMessageHandler handles the &help command
func (b *Bot) helpMessageHandler(_ context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("Commands:")
	for _, c := range userCommands {
		res.WriteString("\n" + c)
	}
	res.WriteString("\n \nCommands for admins:")
	for _, c := range adminCommands {
		res.WriteString("\n" + c)
	}
	res.WriteString("\n \nTeam names are fuzzy matched against the two teams in the match. Names that contain two or more words can be wrapped in \" (e.g. \"The MongolZ\")")
	b.reply(session, message, codeBlock(res.String()))
}

// pickHandler handles the &pick command
func (b *Bot) pickHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	args, err := splitArgs(' ', commandArgs(message.Content))
	if err != nil || len(args) < 2 {
		b.reply(session, message, "Usage: &pick x y, e.g. &pick 3 \"Team Vitality\"")
		return
	}
	number, err := strconv.Atoi(args[0])
	if err != nil {
		b.reply(session, message, fmt.Sprintf("%q is not a match number", args[0]))
		return
	}
	choice := unquote(strings.Join(args[1:], " "))

	// Usernames can change, so picks are keyed on the account id and the username is kept for display
	user := shared.User{UserID: message.Author.ID, Username: message.Author.Username}
	outcome, err := b.APIPtr.RegisterPickAs(ctx, number, user, choice)
	if err != nil {
		log.Error("Failed to register pick", "match", number, "user", message.Author.Username, "error", err)
		b.reply(session, message, "An error occurred registering your pick")
		return
	}

	switch outcome.Status {
	case api.PickAccepted:
		b.reply(session, message, fmt.Sprintf("You picked %s for match %d", outcome.Choice, number))
	case api.PickMatchNotFound:
		b.reply(session, message, fmt.Sprintf("Error, match %d does not exist", number))
	case api.PickClosed:
		b.reply(session, message, "Error, match has already started or finished")
	case api.PickInvalidChoice:
		b.reply(session, message, fmt.Sprintf("Error, %q is not %s or %s", choice, outcome.Match.Team1, outcome.Match.Team2))
	}
}

// matchesHandler handles the &matches command
func (b *Bot) matchesHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	views, err := b.APIPtr.GetMatchViews(ctx)
	if err != nil {
		log.Error("Failed to get matches", "error", err)
		b.reply(session, message, "An error occurred getting the matches")
		return
	}

	var current, done strings.Builder
	for _, v := range views {
		if v.Done {
			done.WriteString(fmt.Sprintf("\n %d: %s vs %s in %s (%s)", v.Number, v.Team1, v.Team2, v.Stage, v.Result))
			continue
		}
		state := "open for picks"
		if !v.Open() {
			state = "started"
		}
		current.WriteString(fmt.Sprintf("\n %d: %s vs %s starting at %s in %s, %s",
			v.Number, v.Team1, v.Team2, shared.FormatTimestamp(v.ScheduledTime), v.Stage, state))
	}

	res := "Current Matches:" + current.String()
	if current.Len() == 0 {
		res = "No current matches in the database"
	}
	res += "\nDone Matches:" + done.String()
	b.reply(session, message, codeBlock(res))
}

// userPicksHandler handles the &userpicks command
func (b *Bot) userPicksHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	matches, err := b.APIPtr.GetMatches(ctx)
	if err != nil {
		log.Error("Failed to get matches", "error", err)
		b.reply(session, message, "An error occurred getting the picks")
		return
	}
	picks, err := b.APIPtr.GetPicks(ctx)
	if err != nil {
		log.Error("Failed to get picks", "error", err)
		b.reply(session, message, "An error occurred getting the picks")
		return
	}

	byMatch := make(map[int][]shared.Pick)
	for _, p := range picks {
		byMatch[p.MatchNumber] = append(byMatch[p.MatchNumber], p)
	}

	var res strings.Builder
	res.WriteString("Picks per match:")
	for _, m := range matches {
		res.WriteString(fmt.Sprintf("\n \n Match %d: %s vs %s in %s", m.Number, m.Team1, m.Team2, m.Stage))
		for _, p := range byMatch[m.Number] {
			res.WriteString(fmt.Sprintf("\n  %s picked %s", p.DisplayName(), p.Choice))
		}
	}
	b.reply(session, message, codeBlock(res.String()))
}

// scoresHandler handles the &scores command. Scores are recomputed before display
func (b *Bot) scoresHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	leaderboard, err := b.APIPtr.GetLeaderboard(ctx)
	if err != nil {
		var lookupErr *shared.LookupError
		if errors.As(err, &lookupErr) {
			b.reply(session, message, fmt.Sprintf("Scores cannot be calculated: match %d is in stage %q which has no multiplier",
				lookupErr.MatchNumber, lookupErr.Stage))
			return
		}
		log.Error("Failed to get leaderboard", "error", err)
		b.reply(session, message, "An error occurred getting the scores")
		return
	}

	picks, err := b.APIPtr.GetPicks(ctx)
	if err != nil {
		log.Warn("Failed to get picks, showing user ids", "error", err)
	}
	names := displayNames(picks)

	var res strings.Builder
	res.WriteString("Scores in descending order:")
	if len(leaderboard) == 0 {
		res.WriteString("\nNobody has made a pick yet")
	}
	for i, score := range leaderboard {
		name, ok := names[score.UserID]
		if !ok {
			name = score.UserID
		}
		res.WriteString(fmt.Sprintf("\n%d: %s has a score of %d", i+1, name, score.Value))
	}
	b.reply(session, message, codeBlock(res.String()))
}

// displayNames maps each user id to the name on their most recent pick by match number
func displayNames(picks []shared.Pick) map[string]string {
	names := make(map[string]string)
	for _, p := range picks {
		names[p.UserID] = p.DisplayName()
	}
	return names
}

// multipliersHandler handles the &multipliers command
func (b *Bot) multipliersHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	multipliers, err := b.APIPtr.GetMultipliers(ctx)
	if err != nil {
		log.Error("Failed to get multipliers", "error", err)
		b.reply(session, message, "An error occurred getting the multipliers")
		return
	}

	var res strings.Builder
	res.WriteString("Multipliers:")
	for _, m := range multipliers {
		unit := "points"
		if m.Points == 1 {
			unit = "point"
		}
		res.WriteString(fmt.Sprintf("\n %-15s: %d %s", m.Stage, m.Points, unit))
	}
	b.reply(session, message, codeBlock(res.String()))
}

// setHandler handles the admin &set command
func (b *Bot) setHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	args, err := splitArgs(' ', commandArgs(message.Content))
	if err != nil || len(args) < 3 {
		b.reply(session, message, "Usage: &set x y z, e.g. &set 3 stage Semifinal")
		return
	}
	number, err := strconv.Atoi(args[0])
	if err != nil {
		b.reply(session, message, fmt.Sprintf("%q is not a match number", args[0]))
		return
	}
	field, value := args[1], unquote(strings.Join(args[2:], " "))

	m, err := b.APIPtr.ChangeMatchVariable(ctx, number, field, value)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		b.reply(session, message, fmt.Sprintf("Error, match %d does not exist", number))
	case errors.Is(err, shared.ErrInvalidInput):
		b.reply(session, message, fmt.Sprintf("Error, %s", err))
	case err != nil:
		log.Error("Failed to change match", "match", number, "field", field, "error", err)
		b.reply(session, message, "An error occurred changing the match")
	default:
		log.Info("Match changed by admin", "user", message.Author.Username, "match", m.Number, "field", field, "value", value)
		b.reply(session, message, fmt.Sprintf("Set %s to %s for match %d", strings.ToLower(field), value, m.Number))
	}
}

// addMatchHandler handles the admin &addmatch command
func (b *Bot) addMatchHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	args, err := splitArgs(',', commandArgs(message.Content))
	if err != nil || len(args) != 4 {
		b.reply(session, message, "Usage: &addmatch x, y, z, a, e.g. &addmatch Team A, Team B, Final, 2025-06-01 18:00")
		return
	}
	team1, team2, stage := unquote(args[0]), unquote(args[1]), unquote(args[2])

	scheduled, err := shared.ParseTimestamp(unquote(args[3]))
	if err != nil {
		b.reply(session, message, fmt.Sprintf("Error, %s", err))
		return
	}

	m, err := b.APIPtr.AddMatch(ctx, team1, team2, stage, scheduled)
	if errors.Is(err, shared.ErrInvalidInput) {
		b.reply(session, message, fmt.Sprintf("Error, %s", err))
		return
	}
	if err != nil {
		log.Error("Failed to add match", "error", err)
		b.reply(session, message, "An error occurred adding the match")
		return
	}

	b.reply(session, message, fmt.Sprintf("You have added match %d: %s vs %s in %s on %s",
		m.Number, m.Team1, m.Team2, m.Stage, shared.FormatTimestamp(m.ScheduledTime)))
}

// endMatchHandler handles the admin &endmatch command
func (b *Bot) endMatchHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	args, err := splitArgs(' ', commandArgs(message.Content))
	if err != nil || len(args) != 2 {
		b.reply(session, message, "Usage: &endmatch x a-b, e.g. &endmatch 3 2-1")
		return
	}
	number, err := strconv.Atoi(args[0])
	if err != nil {
		b.reply(session, message, fmt.Sprintf("%q is not a match number", args[0]))
		return
	}

	outcome, err := b.APIPtr.EndMatch(ctx, number, args[1])
	if errors.Is(err, shared.ErrInvalidInput) {
		b.reply(session, message, fmt.Sprintf("Error, %s", err))
		return
	}
	if err != nil {
		log.Error("Failed to end match", "match", number, "error", err)
		b.reply(session, message, "An error occurred ending the match")
		return
	}
	if !outcome.Found() {
		b.reply(session, message, fmt.Sprintf("Error, match %d does not exist", number))
		return
	}

	m := outcome.Match
	b.reply(session, message, fmt.Sprintf("Match %d finished %s: %s wins", m.Number, m.Result, m.Winner))
}
