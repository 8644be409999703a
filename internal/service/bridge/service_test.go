package bridge

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/seu-repo/genie-bridge/internal/domain"
	"github.com/seu-repo/genie-bridge/internal/mocks"
	"github.com/seu-repo/genie-bridge/internal/ports"
)

func newTestService(repo *mocks.MockExampleRepository, eng *mocks.MockEngine) *Service {
	resolver := NewResolver(&mocks.MockTokenizer{}, &mocks.MockLocationResolver{}, newTestLogger())
	compiler := NewCompiler(repo, resolver, mocks.NewMockCache(), 10*time.Minute, newTestLogger())
	return NewService(compiler, eng, newTestLogger())
}

func testUser() *domain.User {
	return &domain.User{ID: "user-1", Username: "alice"}
}

func TestHandleTurn_LaunchSendsWakeup(t *testing.T) {
	var gotCmd *domain.CompiledCommand
	eng := &mocks.MockEngine{
		ExecuteFunc: func(ctx context.Context, conversationID string, user *domain.User, cmd *domain.CompiledCommand, sink ports.TurnSink) error {
			gotCmd = cmd
			sink.AppendText("Hello! How can I help?")
			return nil
		},
	}
	svc := newTestService(&mocks.MockExampleRepository{}, eng)

	req := &domain.WebhookRequest{
		Session: domain.Session{SessionID: "sess-1"},
		Request: domain.Request{Type: domain.RequestTypeLaunch},
	}

	resp, err := svc.HandleTurn(context.Background(), testUser(), req, "en-US")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotCmd == nil || gotCmd.Program != ProgramWakeup {
		t.Errorf("expected the wakeup program, got %+v", gotCmd)
	}
	if resp == nil || resp.Response.OutputSpeech.Text != "Hello! How can I help?\n" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestHandleTurn_RawCommandForwardsText(t *testing.T) {
	var gotCmd *domain.CompiledCommand
	eng := &mocks.MockEngine{
		ExecuteFunc: func(ctx context.Context, conversationID string, user *domain.User, cmd *domain.CompiledCommand, sink ports.TurnSink) error {
			gotCmd = cmd
			return nil
		},
	}
	svc := newTestService(&mocks.MockExampleRepository{}, eng)

	req := &domain.WebhookRequest{
		Session: domain.Session{SessionID: "sess-1"},
		Request: domain.Request{
			Type: domain.RequestTypeIntent,
			Intent: &domain.Intent{
				Name: domain.IntentRawCommand,
				Slots: map[string]domain.Slot{
					"command": {Name: "command", Value: "turn off everything"},
				},
			},
		},
	}

	if _, err := svc.HandleTurn(context.Background(), testUser(), req, "en-US"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotCmd == nil || gotCmd.Text != "turn off everything" {
		t.Errorf("expected the raw text command, got %+v", gotCmd)
	}
}

func TestHandleTurn_DBIntentCompilesAndExecutes(t *testing.T) {
	repo := &mocks.MockExampleRepository{
		GetByIntentNameFunc: func(ctx context.Context, language, device, name string) (*domain.CanonicalExample, error) {
			return &domain.CanonicalExample{
				ID:         3,
				TargetCode: `action (p_message : String) := @com.twitter.post(status=p_message);`,
			}, nil
		},
	}
	var gotCmd *domain.CompiledCommand
	var gotConversation string
	eng := &mocks.MockEngine{
		ExecuteFunc: func(ctx context.Context, conversationID string, user *domain.User, cmd *domain.CompiledCommand, sink ports.TurnSink) error {
			gotCmd = cmd
			gotConversation = conversationID
			sink.AppendText("Posted.")
			return nil
		},
	}
	svc := newTestService(repo, eng)

	req := &domain.WebhookRequest{
		Session: domain.Session{SessionID: "sess-7"},
		Request: domain.Request{
			Type: domain.RequestTypeIntent,
			Intent: &domain.Intent{
				Name: "com.twitter.post",
				Slots: map[string]domain.Slot{
					"p_message": {Name: "p_message", Value: "good morning"},
				},
			},
		},
	}

	resp, err := svc.HandleTurn(context.Background(), testUser(), req, "en-US")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotConversation != "alexa:sess-7" {
		t.Errorf("expected conversation id 'alexa:sess-7', got %q", gotConversation)
	}
	if gotCmd == nil || gotCmd.Code != "@com.twitter.post(status=SLOT_0)" {
		t.Errorf("unexpected compiled command %+v", gotCmd)
	}
	if resp == nil || !resp.Response.ShouldEndSession {
		t.Errorf("expected a session-ending response, got %+v", resp)
	}
}

func TestHandleTurn_MissingSessionIDGetsGeneratedConversation(t *testing.T) {
	var gotConversation string
	eng := &mocks.MockEngine{
		ExecuteFunc: func(ctx context.Context, conversationID string, user *domain.User, cmd *domain.CompiledCommand, sink ports.TurnSink) error {
			gotConversation = conversationID
			return nil
		},
	}
	svc := newTestService(&mocks.MockExampleRepository{}, eng)

	req := &domain.WebhookRequest{
		Request: domain.Request{Type: domain.RequestTypeLaunch},
	}

	if _, err := svc.HandleTurn(context.Background(), testUser(), req, "en-US"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(gotConversation, "alexa:") || len(gotConversation) <= len("alexa:") {
		t.Errorf("expected a generated 'alexa:' conversation id, got %q", gotConversation)
	}
}

func TestHandleTurn_EngineErrorPropagates(t *testing.T) {
	wantErr := errors.New("engine unavailable")
	eng := &mocks.MockEngine{
		ExecuteFunc: func(ctx context.Context, conversationID string, user *domain.User, cmd *domain.CompiledCommand, sink ports.TurnSink) error {
			return wantErr
		},
	}
	svc := newTestService(&mocks.MockExampleRepository{}, eng)

	req := &domain.WebhookRequest{
		Request: domain.Request{Type: domain.RequestTypeLaunch},
	}

	_, err := svc.HandleTurn(context.Background(), testUser(), req, "en-US")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected the engine error, got %v", err)
	}
}

func TestHandleTurn_ClassificationErrorSkipsEngine(t *testing.T) {
	var engineCalls int
	eng := &mocks.MockEngine{
		ExecuteFunc: func(ctx context.Context, conversationID string, user *domain.User, cmd *domain.CompiledCommand, sink ports.TurnSink) error {
			engineCalls++
			return nil
		},
	}
	svc := newTestService(&mocks.MockExampleRepository{}, eng)

	req := &domain.WebhookRequest{
		Request: domain.Request{Type: "AudioPlayer.PlaybackStarted"},
	}

	_, err := svc.HandleTurn(context.Background(), testUser(), req, "en-US")
	if !errors.Is(err, domain.ErrInvalidRequestKind) {
		t.Fatalf("expected ErrInvalidRequestKind, got %v", err)
	}
	if engineCalls != 0 {
		t.Errorf("expected the engine to stay untouched, got %d calls", engineCalls)
	}
}
