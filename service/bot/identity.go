package bot

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"cardbot/service/webex"
)

// DefaultAvatarURL substitutes for bot accounts that never set an avatar.
const DefaultAvatarURL = "http://bit.ly/SparkBot-512x512"

// botDomains are the address suffixes bot accounts live under.
var botDomains = []string{"@sparkbot.io", "@webex.bot"}

// Identity resolves and memoizes the bot's own account profile. A failed
// fetch is logged and reported as nil; callers degrade instead of failing.
type Identity struct {
	client     *webex.Client
	overrideID string
	logger     *slog.Logger

	mu sync.Mutex
	me *webex.Person
}

func NewIdentity(client *webex.Client, overrideID string, logger *slog.Logger) *Identity {
	return &Identity{
		client:     client,
		overrideID: overrideID,
		logger:     logger,
	}
}

// BotInfo returns the bot's own profile, fetching it on first use. Returns
// nil when the platform cannot be reached; the identity is then retried on
// the next call.
func (i *Identity) BotInfo(ctx context.Context) *webex.Person {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.me != nil {
		return i.me
	}

	me, err := i.client.Me(ctx)
	if err != nil {
		i.logger.Error("Failed to fetch bot identity", "error", err)
		return nil
	}
	if me.Avatar == "" {
		me.Avatar = DefaultAvatarURL
	}

	i.me = me
	return me
}

// BotID prefers the operator-supplied override over the fetched identity.
func (i *Identity) BotID(ctx context.Context) string {
	if i.overrideID != "" {
		return i.overrideID
	}
	if me := i.BotInfo(ctx); me != nil {
		return me.ID
	}
	return ""
}

// Email returns the already-cached primary address without touching the
// network, so callers on the webhook path never block on a fetch.
func (i *Identity) Email() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.me.Email()
}

// CheckAccount warns when the token does not belong to a bot account. A
// missing identity skips the check entirely.
func (i *Identity) CheckAccount(ctx context.Context) {
	me := i.BotInfo(ctx)
	if me == nil {
		return
	}

	email := me.Email()
	for _, domain := range botDomains {
		if strings.HasSuffix(email, domain) {
			return
		}
	}

	i.logger.Warn("Access token does not belong to a bot account, review it at https://developer.webex.com/my-apps",
		"email", email)
}
