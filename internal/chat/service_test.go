// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sophiachat/sophia-tui/internal/api"
	"github.com/sophiachat/sophia-tui/internal/model"
)

type staticSession struct{}

func (staticSession) Token() string { return "tok" }
func (staticSession) Clear()        {}

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewService(api.NewClient(&api.Config{BaseURL: srv.URL}, staticSession{}))
}

// =============================================================================
// SESSION LISTING
// =============================================================================

func TestListSessionsOrderedByRecency(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chats", r.URL.Path)
		w.Write([]byte(`{"data":[
			{"_id":"old","title":"Old","createdAt":"2026-08-01T10:00:00Z","updatedAt":"2026-08-01T10:00:00Z"},
			{"_id":"new","title":"New","createdAt":"2026-08-30T10:00:00Z","updatedAt":"2026-08-30T12:00:00Z"},
			{"_id":"mid","name":"Middle","createdAt":"2026-08-15T10:00:00Z","updatedAt":"2026-08-15T10:00:00Z"}
		]}`))
	})

	sessions, err := svc.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{sessions[0].ID, sessions[1].ID, sessions[2].ID})
	assert.Equal(t, "Middle", sessions[1].Title, "name is the fallback title key")
}

func TestListSessionsPreviewFallback(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"_id":"a","title":"A","lastMessage":"from lastMessage"},
			{"_id":"b","title":"B","summary":"from summary"}
		]}`))
	})

	sessions, err := svc.ListSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from lastMessage", sessions[0].LastMessagePreview)
	assert.Equal(t, "from summary", sessions[1].LastMessagePreview)
}

func TestListSessionsMissingIDIsHardError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"title":"no id"}]}`))
	})

	_, err := svc.ListSessions(context.Background())
	require.Error(t, err)
	assert.True(t, api.IsDecode(err))
}

func TestListSessionsEmpty(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	})

	sessions, err := svc.ListSessions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

// =============================================================================
// MESSAGE LOG
// =============================================================================

func TestSessionMessagesEnvelopeShape(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chats/abc/messages", r.URL.Path)
		w.Write([]byte(`{"data":[
			{"_id":"m1","role":"user","content":"Hello","createdAt":"2026-08-30T10:00:00Z"},
			{"_id":"m2","role":"assistant","content":"Hi there","mediaUrl":""}
		]}`))
	})

	messages, err := svc.SessionMessages(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, model.RoleUser, messages[0].Role)
	assert.Equal(t, "Hello", messages[0].Content)
	assert.Equal(t, model.RoleAssistant, messages[1].Role)
}

func TestSessionMessagesBareArrayShape(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id":"m1","role":"user","content":"Hello"}]`))
	})

	messages, err := svc.SessionMessages(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "m1", messages[0].ID)
}

func TestSessionMessagesUnknownRoleIsAssistant(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id":"m1","role":"model","content":"x"}]`))
	})

	messages, err := svc.SessionMessages(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAssistant, messages[0].Role)
}

func TestSessionMessagesAttachment(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id":"m1","role":"user","content":"[Hình ảnh gửi lên]","mediaUrl":"http://x/img.png"}]`))
	})

	messages, err := svc.SessionMessages(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "http://x/img.png", messages[0].AttachmentURL)
	assert.True(t, messages[0].IsImageOnly())
}

func TestSessionMessagesRejectsTransientID(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	for _, id := range []string{"", model.NewTransientID()} {
		_, err := svc.SessionMessages(context.Background(), id)
		assert.True(t, api.IsValidation(err), "id %q must be rejected locally", id)
	}
}

func TestSessionMessagesUnexpectedShapeIsHardError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`"surprise"`))
	})

	_, err := svc.SessionMessages(context.Background(), "abc")
	require.Error(t, err)
	assert.True(t, api.IsDecode(err))
}

// =============================================================================
// SENDING
// =============================================================================

func TestCreateSession(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chats/new/messages", r.URL.Path)
		w.Write([]byte(`{"data":{"chatId":"abc","assistantMessage":"Hi there"}}`))
	})

	id, reply, err := svc.CreateSession(context.Background(), "Hello")
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
	assert.Equal(t, "Hi there", reply)
}

func TestCreateSessionObjectReply(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chatId":"abc","assistantMessage":{"content":"Hi there"}}`))
	})

	id, reply, err := svc.CreateSession(context.Background(), "Hello")
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
	assert.Equal(t, "Hi there", reply)
}

func TestCreateSessionMissingChatIDIsHardError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"assistantMessage":"Hi"}}`))
	})

	_, _, err := svc.CreateSession(context.Background(), "Hello")
	require.Error(t, err)
	assert.True(t, api.IsDecode(err))
}

func TestSendMessageReplyKeyPrecedence(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"assistantMessage", `{"data":{"assistantMessage":"a","response":"b","aiResponse":"c"}}`, "a"},
		{"response", `{"data":{"response":"b","aiResponse":"c"}}`, "b"},
		{"aiResponse", `{"data":{"aiResponse":"c"}}`, "c"},
		{"object assistantMessage", `{"data":{"assistantMessage":{"content":"a"}}}`, "a"},
		{"object response", `{"data":{"response":{"content":"b"}}}`, "b"},
		{"empty object falls through", `{"data":{"assistantMessage":{},"response":"b"}}`, "b"},
		{"null falls through", `{"data":{"assistantMessage":null,"response":"b"}}`, "b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			reply, err := svc.SendMessage(context.Background(), "abc", "hi")
			require.NoError(t, err)
			assert.Equal(t, tt.want, reply)
		})
	}
}

func TestSendMessageReplyWrongShapeIsHardError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"assistantMessage":42}}`))
	})

	_, err := svc.SendMessage(context.Background(), "abc", "hi")
	require.Error(t, err)
	assert.True(t, api.IsDecode(err))
}

func TestSendMessageNoReplyIsHardError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{}}`))
	})

	_, err := svc.SendMessage(context.Background(), "abc", "hi")
	require.Error(t, err)
	assert.True(t, api.IsDecode(err))
}

func TestSendMessageValidation(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := svc.SendMessage(context.Background(), "abc", "")
	assert.True(t, api.IsValidation(err))

	_, err = svc.SendMessage(context.Background(), "", "hi")
	assert.True(t, api.IsValidation(err))
}

func TestSendImageMessage(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cat.png")
	require.NoError(t, os.WriteFile(file, []byte{0x89, 'P', 'N', 'G'}, 0o600))

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chats/abc/images", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(10<<20))
		assert.Equal(t, "look at this", r.FormValue("content"))
		f, header, err := r.FormFile("image")
		require.NoError(t, err)
		f.Close()
		assert.Equal(t, "cat.png", header.Filename)
		w.Write([]byte(`{"data":{"response":"A cat."}}`))
	})

	reply, err := svc.SendImageMessage(context.Background(), "abc", file, "look at this")
	require.NoError(t, err)
	assert.Equal(t, "A cat.", reply)
}

func TestSendImageMessageCaptionOptional(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cat.png")
	require.NoError(t, os.WriteFile(file, []byte{1}, 0o600))

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(10<<20))
		assert.Empty(t, r.FormValue("content"))
		w.Write([]byte(`{"data":{"response":"ok"}}`))
	})

	_, err := svc.SendImageMessage(context.Background(), "abc", file, "")
	require.NoError(t, err)
}
