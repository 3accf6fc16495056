package telegram_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Roma7-7-7/homework-notifier/internal/telegram"
)

const testToken = "123:abc"

func botAPI(t *testing.T, chat string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/bot"+testToken+"/") {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":123,"is_bot":true,"first_name":"Homework","username":"homework_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/getChat"):
			if chat == "" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
				return
			}
			_, _ = w.Write([]byte(chat))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		chatID  string
		chat    string
		want    telegram.BotInfo
		wantErr assert.ErrorAssertionFunc
	}{
		{
			name:    "private_chat",
			token:   testToken,
			chatID:  "42",
			chat:    `{"ok":true,"result":{"id":42,"type":"private","username":"student"}}`,
			want:    telegram.BotInfo{Username: "homework_bot", Chat: "student"},
			wantErr: assert.NoError,
		},
		{
			name:    "group_chat",
			token:   testToken,
			chatID:  "-100500",
			chat:    `{"ok":true,"result":{"id":-100500,"type":"group","title":"Cohort 42"}}`,
			want:    telegram.BotInfo{Username: "homework_bot", Chat: "Cohort 42"},
			wantErr: assert.NoError,
		},
		{
			name:   "error_invalid_chat_id",
			token:  testToken,
			chatID: "@student",
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorContains(t, err, "parse chat id=@student", i...)
			},
		},
		{
			name:   "error_invalid_token",
			token:  "456:def",
			chatID: "42",
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorContains(t, err, "create telegram bot", i...)
			},
		},
		{
			name:   "error_chat_not_found",
			token:  testToken,
			chatID: "42",
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorContains(t, err, "get chat id=42", i...)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := botAPI(t, tt.chat)
			defer srv.Close()

			got, err := telegram.Verify(srv.URL, tt.token, tt.chatID, srv.Client())
			if !tt.wantErr(t, err, "Verify()") {
				return
			}
			assert.Equal(t, tt.want, got, "Verify()")
		})
	}
}
