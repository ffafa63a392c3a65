package bot

import (
	"context"
	"log/slog"

	"cardbot/service/webex"

	"github.com/google/uuid"
)

// registrations declares the resource/event pairs the bot wants delivered.
var registrations = map[string][]string{
	webex.ResourceAttachmentActions: {webex.EventCreated},
}

// Registrar keeps the platform-side webhook registrations pointed at the
// bot's current URL. Delete-all-then-recreate keeps restarts from
// accumulating duplicates.
type Registrar struct {
	client *webex.Client
	dryRun bool
	logger *slog.Logger
}

func NewRegistrar(client *webex.Client, dryRun bool, logger *slog.Logger) *Registrar {
	return &Registrar{client: client, dryRun: dryRun, logger: logger}
}

// Ensure replaces all existing registrations with one per declared
// resource/event pair pointing at targetURL. Individual delete or create
// failures are logged and skipped. Returns true iff at least one
// registration was created. Dry-run mode makes no network calls at all.
func (r *Registrar) Ensure(ctx context.Context, targetURL string) bool {
	if r.dryRun {
		r.logger.Debug("Dry run, skipping webhook registration", "targetUrl", targetURL)
		return false
	}

	existing, err := r.client.ListWebhooks(ctx)
	if err != nil {
		r.logger.Error("Failed to list webhooks", "error", err)
	}
	for _, wh := range existing {
		if err := r.client.DeleteWebhook(ctx, wh.ID); err != nil {
			r.logger.Error("Failed to delete webhook", "id", wh.ID, "name", wh.Name, "error", err)
			continue
		}
		r.logger.Debug("Deleted webhook", "id", wh.ID, "name", wh.Name)
	}

	created := false
	for resource, events := range registrations {
		for _, event := range events {
			wh, err := r.client.CreateWebhook(ctx, webex.CreateWebhookRequest{
				Name:      "cardbot " + resource + " " + event,
				TargetURL: targetURL,
				Resource:  resource,
				Event:     event,
				Secret:    uuid.NewString(),
			})
			if err != nil {
				r.logger.Error("Failed to create webhook",
					"resource", resource, "event", event, "targetUrl", targetURL, "error", err)
				continue
			}
			r.logger.Info("Registered webhook", "id", wh.ID, "resource", resource, "event", event, "targetUrl", targetURL)
			created = true
		}
	}
	return created
}
