package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/genie-bridge/internal/domain"
	"github.com/seu-repo/genie-bridge/internal/observability/telemetry"
	"github.com/seu-repo/genie-bridge/internal/ports"
)

// Service runs the full pipeline for one webhook request: classify,
// compile, hand the command to the engine, flush the turn.
type Service struct {
	compiler *Compiler
	engine   ports.ConversationEngine
	log      *zap.Logger
}

func NewService(compiler *Compiler, engine ports.ConversationEngine, log *zap.Logger) *Service {
	return &Service{
		compiler: compiler,
		engine:   engine,
		log:      log,
	}
}

// HandleTurn processes one request/response cycle and returns the single
// platform response for it.
func (s *Service) HandleTurn(ctx context.Context, user *domain.User, req *domain.WebhookRequest, locale string) (*domain.WebhookResponse, error) {
	start := time.Now()

	resp, err := s.handleTurn(ctx, user, req, locale)

	status := "ok"
	if err != nil {
		status = "error"
	}
	telemetry.BridgeRequestsTotal.WithLabelValues(req.Request.Type, status).Inc()
	telemetry.TurnLatency.Observe(time.Since(start).Seconds())

	return resp, err
}

func (s *Service) handleTurn(ctx context.Context, user *domain.User, req *domain.WebhookRequest, locale string) (*domain.WebhookResponse, error) {
	classification, err := Classify(req)
	if err != nil {
		return nil, err
	}

	var cmd *domain.CompiledCommand
	switch classification.Kind {
	case PathBuiltin:
		cmd = &domain.CompiledCommand{Program: classification.Program}
	case PathRawText:
		cmd = &domain.CompiledCommand{Text: classification.Text}
	case PathDBIntent:
		cmd, err = s.compiler.Compile(ctx, locale, classification.Device, classification.Intent, req.Request.Intent.Slots)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unhandled classification kind %d", classification.Kind)
	}

	delegate := NewTurnDelegate(locale)
	if err := s.engine.Execute(ctx, conversationID(req), user, cmd, delegate); err != nil {
		telemetry.EngineErrorsTotal.Inc()
		return nil, fmt.Errorf("engine turn: %w", err)
	}

	s.log.Debug("Turn completed",
		zap.String("request_type", req.Request.Type),
		zap.String("user", user.ID),
	)
	return delegate.Flush(), nil
}

// conversationID addresses the engine conversation for this session. A
// missing session id gets a generated one so the turn still runs.
func conversationID(req *domain.WebhookRequest) string {
	if req.Session.SessionID != "" {
		return "alexa:" + req.Session.SessionID
	}
	return "alexa:" + uuid.NewString()
}
