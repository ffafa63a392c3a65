// Command sendcard posts a single Hello card into the configured target
// space and exits. Useful for checking a token and space id without running
// the bot.
package main

import (
	"context"
	"fmt"
	"os"

	"cardbot/service/cards"
	"cardbot/service/config"
	"cardbot/service/util"
	"cardbot/service/webex"
)

func main() {
	config.LoadEnvFile()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := util.NewLogger(3)

	if cfg.TargetSpaceID == "" {
		logger.Error("TARGET_SPACE_ID is required")
		os.Exit(1)
	}

	client := webex.NewClient(cfg.AccessToken, cfg.APIBase)
	msg, err := client.CreateMessage(context.Background(), webex.CreateMessageRequest{
		RoomID:      cfg.TargetSpaceID,
		Markdown:    "card",
		Attachments: []webex.Attachment{cards.Wrap(cards.Hello)},
	})
	if err != nil {
		logger.Error("Card send failed", "roomId", cfg.TargetSpaceID, "error", err)
		os.Exit(1)
	}

	logger.Info("Card sent", "messageId", msg.ID, "roomId", msg.RoomID)
}
