package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"main/dto"
	"main/usecase"

	"github.com/gin-gonic/gin"
)

type stubCompleter struct {
	completions []*usecase.Completion
	calls       int
}

func (s *stubCompleter) Complete(ctx context.Context, messages []usecase.ChatMessage, tools []usecase.ToolDefinition) (*usecase.Completion, error) {
	if s.calls >= len(s.completions) {
		return &usecase.Completion{Content: "ok"}, nil
	}
	completion := s.completions[s.calls]
	s.calls++
	return completion, nil
}

func TestChatWithoutCompleter(t *testing.T) {
	srv := newTestServer(t)
	userID, token := srv.registerAndLogin(t, "alice@example.com")

	w := srv.do(t, http.MethodPost, "/api/users/"+userID+"/chat", token, gin.H{"message": "hello"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d, want 503", w.Code)
	}
}

func TestChatMessageValidation(t *testing.T) {
	srv := newTestServer(t)
	srv.agent.Completer = &stubCompleter{}
	userID, token := srv.registerAndLogin(t, "alice@example.com")
	path := "/api/users/" + userID + "/chat"

	if w := srv.do(t, http.MethodPost, path, token, gin.H{"message": "   "}); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("blank message: status %d, want 422", w.Code)
	}
	long := strings.Repeat("a", 2001)
	if w := srv.do(t, http.MethodPost, path, token, gin.H{"message": long}); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("long message: status %d, want 422", w.Code)
	}
}

func TestChatConversationPersistence(t *testing.T) {
	srv := newTestServer(t)
	srv.agent.Completer = &stubCompleter{
		completions: []*usecase.Completion{
			{Content: "Hi! What can I do for you?"},
			{Content: "You said hello before."},
		},
	}
	userID, token := srv.registerAndLogin(t, "alice@example.com")
	path := "/api/users/" + userID + "/chat"

	w := srv.do(t, http.MethodPost, path, token, gin.H{"message": "hello"})
	if w.Code != http.StatusOK {
		t.Fatalf("first turn: status %d, body %s", w.Code, w.Body.String())
	}
	var first dto.ChatResponse
	decodeData(t, w, &first)
	if first.ConversationID == 0 {
		t.Fatal("no conversation id assigned")
	}
	if first.Response != "Hi! What can I do for you?" {
		t.Fatalf("response = %q", first.Response)
	}

	// Second turn continues the same thread
	w = srv.do(t, http.MethodPost, path, token, gin.H{
		"conversation_id": first.ConversationID,
		"message":         "do you remember me?",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("second turn: status %d", w.Code)
	}
	var second dto.ChatResponse
	decodeData(t, w, &second)
	if second.ConversationID != first.ConversationID {
		t.Fatalf("conversation id changed: %d -> %d", first.ConversationID, second.ConversationID)
	}

	// A conversation id belonging to nobody is missing, not forbidden
	w = srv.do(t, http.MethodPost, path, token, gin.H{"conversation_id": 9999, "message": "hi"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown conversation: status %d, want 404", w.Code)
	}
}

func TestChatOtherUsersConversationIsNotFound(t *testing.T) {
	srv := newTestServer(t)
	srv.agent.Completer = &stubCompleter{}
	aliceID, aliceToken := srv.registerAndLogin(t, "alice@example.com")
	bobID, bobToken := srv.registerAndLogin(t, "bob@example.com")

	w := srv.do(t, http.MethodPost, "/api/users/"+aliceID+"/chat", aliceToken, gin.H{"message": "start"})
	if w.Code != http.StatusOK {
		t.Fatalf("alice chat: status %d", w.Code)
	}
	var resp dto.ChatResponse
	decodeData(t, w, &resp)

	w = srv.do(t, http.MethodPost, "/api/users/"+bobID+"/chat", bobToken, gin.H{
		"conversation_id": resp.ConversationID,
		"message":         "snooping",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("bob on alice's conversation: status %d, want 404", w.Code)
	}
}
