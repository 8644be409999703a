package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/seu-repo/genie-bridge/internal/domain"
	"github.com/seu-repo/genie-bridge/internal/ports"
)

// TurnSubject is where engine workers listen for turn requests.
const TurnSubject = "engine.turns"

// turnRequest is published once per webhook request.
type turnRequest struct {
	ConversationID string                  `json:"conversationId"`
	User           *domain.User            `json:"user"`
	Command        *domain.CompiledCommand `json:"command"`
}

// turnEvent is one output event the engine emits while executing a turn.
// The stream ends with an "end" (or "error") event.
type turnEvent struct {
	Type    string                `json:"type"`
	Text    string                `json:"text,omitempty"`
	Card    *domain.RichLink      `json:"card,omitempty"`
	Index   int                   `json:"index,omitempty"`
	Payload string                `json:"payload,omitempty"`
	Title   string                `json:"title,omitempty"`
	URL     string                `json:"url,omitempty"`
	Message *domain.ResultMessage `json:"message,omitempty"`
	Kind    string                `json:"kind,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// NATSEngine drives conversation turns over NATS: it publishes the compiled
// command with a private reply inbox and forwards the event stream the
// engine sends back into the turn sink until the turn completes.
type NATSEngine struct {
	conn *nats.Conn
	log  *zap.Logger
}

func NewNATSEngine(url string, log *zap.Logger) (*NATSEngine, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.Info("Successfully connected to NATS", zap.String("url", url))
	return &NATSEngine{
		conn: nc,
		log:  log,
	}, nil
}

func (e *NATSEngine) Execute(ctx context.Context, conversationID string, user *domain.User, cmd *domain.CompiledCommand, sink ports.TurnSink) error {
	payload, err := json.Marshal(turnRequest{
		ConversationID: conversationID,
		User:           user,
		Command:        cmd,
	})
	if err != nil {
		return fmt.Errorf("encode turn request: %w", err)
	}

	inbox := nats.NewInbox()
	sub, err := e.conn.SubscribeSync(inbox)
	if err != nil {
		return fmt.Errorf("subscribe turn inbox: %w", err)
	}
	defer sub.Unsubscribe()

	if err := e.conn.PublishRequest(TurnSubject, inbox, payload); err != nil {
		return fmt.Errorf("publish turn request: %w", err)
	}

	for {
		msg, err := sub.NextMsgWithContext(ctx)
		if err != nil {
			return fmt.Errorf("wait for turn event: %w", err)
		}

		var event turnEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			return fmt.Errorf("decode turn event: %w", err)
		}

		switch event.Type {
		case "text":
			sink.AppendText(event.Text)
		case "card":
			if event.Card != nil {
				sink.AppendCard(*event.Card)
			}
		case "choice":
			sink.AppendChoice(event.Index, event.Payload, event.Title, event.Text)
		case "link":
			sink.AppendLink(event.Title, event.URL)
		case "result":
			if event.Message != nil {
				sink.AppendResult(*event.Message)
			}
		case "ask_special":
			sink.MarkAskSpecial(event.Kind)
		case "error":
			return fmt.Errorf("engine: %s", event.Error)
		case "end":
			return nil
		default:
			e.log.Warn("Ignoring unknown turn event",
				zap.String("type", event.Type),
				zap.String("conversation", conversationID),
			)
		}
	}
}

func (e *NATSEngine) Close() {
	e.conn.Close()
}
