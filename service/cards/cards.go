// Package cards holds the static adaptive card documents the bot can send.
package cards

import (
	"encoding/json"

	"cardbot/service/webex"
)

// ContentType tags every card attachment sent to the platform.
const ContentType = "application/vnd.microsoft.card.adaptive"

// Card is an immutable adaptive card document. Defined at process start,
// never mutated afterwards.
type Card json.RawMessage

var Hello = Card(`{
	"type": "AdaptiveCard",
	"$schema": "http://adaptivecards.io/schemas/adaptive-card.json",
	"version": "1.2",
	"body": [
		{
			"type": "TextBlock",
			"text": "Hello World!",
			"wrap": true
		}
	]
}`)

var Alert = Card(`{
	"type": "AdaptiveCard",
	"$schema": "http://adaptivecards.io/schemas/adaptive-card.json",
	"version": "1.2",
	"body": [
		{
			"type": "TextBlock",
			"text": "Alert!",
			"weight": "Bolder",
			"color": "Attention",
			"wrap": true
		}
	]
}`)

var Buttons = Card(`{
	"type": "AdaptiveCard",
	"$schema": "http://adaptivecards.io/schemas/adaptive-card.json",
	"version": "1.2",
	"body": [
		{
			"type": "TextBlock",
			"text": "Pick a button",
			"wrap": true
		}
	],
	"actions": [
		{
			"type": "Action.Submit",
			"title": "Button 1",
			"data": {"button": "1"}
		},
		{
			"type": "Action.Submit",
			"title": "Button 2",
			"data": {"button": "2"}
		}
	]
}`)

// Wrap builds a fresh attachment envelope around a card. The content bytes
// are copied so concurrent sends never alias the same document.
func Wrap(card Card) webex.Attachment {
	content := make(json.RawMessage, len(card))
	copy(content, card)
	return webex.Attachment{
		ContentType: ContentType,
		Content:     content,
	}
}
