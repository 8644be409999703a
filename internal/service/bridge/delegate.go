package bridge

import (
	"strings"

	"github.com/seu-repo/genie-bridge/internal/domain"
)

// AccountLinkingURL is the only link target with a platform rendering: it
// maps to a LinkAccount card. Every other link kind is dropped.
const AccountLinkingURL = "/user/register"

// TurnDelegate buffers the output events of one conversation turn and
// renders them as exactly one webhook response. The engine may emit any
// number of events per turn; the platform allows one JSON answer per
// request. Single-use: one instance per request, one writer, flushed at
// most once. Every mutator is a silent no-op after the flush.
type TurnDelegate struct {
	locale     string
	buf        strings.Builder
	card       *domain.Card
	askSpecial string
	flushed    bool
}

func NewTurnDelegate(locale string) *TurnDelegate {
	return &TurnDelegate{locale: locale}
}

func (d *TurnDelegate) writeLine(text string) {
	d.buf.WriteString(text)
	d.buf.WriteByte('\n')
}

// AppendText buffers one line of plain output.
func (d *TurnDelegate) AppendText(text string) {
	if d.flushed {
		return
	}
	d.writeLine(text)
}

// AppendCard buffers the card title as a line and replaces the stored rich
// card. Last write wins.
func (d *TurnDelegate) AppendCard(card domain.RichLink) {
	if d.flushed {
		return
	}
	d.writeLine(card.DisplayTitle)
	d.card = &domain.Card{
		Type:    domain.CardTypeSimple,
		Title:   card.DisplayTitle,
		Content: card.DisplayText,
	}
}

// AppendChoice buffers the human-readable title of one choice.
func (d *TurnDelegate) AppendChoice(idx int, payload, title, text string) {
	if d.flushed {
		return
	}
	d.writeLine(title)
}

// AppendLink turns the account-linking URL into a LinkAccount card. Other
// URL kinds have no webhook rendering and are dropped.
func (d *TurnDelegate) AppendLink(title, url string) {
	if d.flushed {
		return
	}
	if url == AccountLinkingURL {
		d.card = &domain.Card{Type: domain.CardTypeLinkAccount}
	}
}

// AppendResult buffers the message's locale-formatted display string.
func (d *TurnDelegate) AppendResult(msg domain.ResultMessage) {
	if d.flushed {
		return
	}
	d.writeLine(msg.Display(d.locale))
}

// MarkAskSpecial records that the engine awaits a specific follow-up kind.
// A non-empty kind keeps the session open after this turn.
func (d *TurnDelegate) MarkAskSpecial(kind string) {
	if d.flushed {
		return
	}
	d.askSpecial = kind
}

// Flush transitions the delegate to its terminal state and returns the
// single response for the turn. Every later call returns nil.
func (d *TurnDelegate) Flush() *domain.WebhookResponse {
	if d.flushed {
		return nil
	}
	d.flushed = true

	return &domain.WebhookResponse{
		Version:           "1.0",
		SessionAttributes: map[string]any{},
		Response: domain.ResponseBody{
			OutputSpeech: domain.OutputSpeech{
				Type: "PlainText",
				Text: d.buf.String(),
			},
			Card:             d.card,
			ShouldEndSession: d.askSpecial == "",
		},
	}
}
