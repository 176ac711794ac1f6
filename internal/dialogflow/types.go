// Package dialogflow holds the fulfillment webhook wire types. Only the
// fields this service reads are modelled; the NLU platform owns the full
// schema.
package dialogflow

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Intent struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type QueryResult struct {
	QueryText  string                 `json:"queryText"`
	Parameters map[string]interface{} `json:"parameters"`
	Intent     Intent                 `json:"intent"`
}

// OriginalDetectIntentRequest carries the raw transport payload. For the
// Telegram integration the platform forwards the original Telegram message
// under payload.data, which is where the numeric user id and the Unix
// send-time live.
type OriginalDetectIntentRequest struct {
	Source  string  `json:"source"`
	Payload Payload `json:"payload"`
}

type Payload struct {
	Data tgbotapi.Message `json:"data"`
}

type WebhookRequest struct {
	ResponseID                  string                      `json:"responseId"`
	Session                     string                      `json:"session"`
	QueryResult                 QueryResult                 `json:"queryResult"`
	OriginalDetectIntentRequest OriginalDetectIntentRequest `json:"originalDetectIntentRequest"`
}

// UserID returns the transport user id, or 0 when the payload carries none.
func (r *WebhookRequest) UserID() int64 {
	if r.OriginalDetectIntentRequest.Payload.Data.From == nil {
		return 0
	}
	return r.OriginalDetectIntentRequest.Payload.Data.From.ID
}

// MessageDate returns the Unix send-time of the original message.
func (r *WebhookRequest) MessageDate() int64 {
	return int64(r.OriginalDetectIntentRequest.Payload.Data.Date)
}

// MessageText returns the raw message text.
func (r *WebhookRequest) MessageText() string {
	return r.OriginalDetectIntentRequest.Payload.Data.Text
}

type Text struct {
	Text []string `json:"text"`
}

type Message struct {
	Text *Text `json:"text,omitempty"`
}

type WebhookResponse struct {
	FulfillmentMessages []Message `json:"fulfillmentMessages"`
}

// NewResponse wraps reply strings into the fulfillment response shape, one
// message per reply so ordering is preserved.
func NewResponse(replies []string) *WebhookResponse {
	resp := &WebhookResponse{FulfillmentMessages: make([]Message, 0, len(replies))}
	for _, reply := range replies {
		resp.FulfillmentMessages = append(resp.FulfillmentMessages, Message{
			Text: &Text{Text: []string{reply}},
		})
	}
	return resp
}
