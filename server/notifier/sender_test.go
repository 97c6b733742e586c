package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/parkjy76/haruplan/internal/profile"
)

func TestConsoleSender(t *testing.T) {
	var out bytes.Buffer
	s := &ConsoleSender{Out: &out}

	require.NoError(t, s.Send(context.Background(), "Schedule Alert", "면접 (03-20 09:00)"))
	require.Equal(t, "[NOTIFY] Schedule Alert: 면접 (03-20 09:00)\n", out.String())
}

func TestTelegramSender(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := &TelegramSender{Token: "token123", ChatID: "42", BaseURL: srv.URL, Client: srv.Client()}
	require.NoError(t, s.Send(context.Background(), "Schedule Alert", "면접"))

	require.Equal(t, "/bottoken123/sendMessage", gotPath)
	require.Equal(t, "42", gotBody["chat_id"])
	require.Equal(t, "Schedule Alert\n면접", gotBody["text"])
}

func TestTelegramSenderFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := &TelegramSender{Token: "bad", ChatID: "42", BaseURL: srv.URL, Client: srv.Client()}
	require.Error(t, s.Send(context.Background(), "Schedule Alert", "면접"))
}

func TestTelegramSenderUnconfigured(t *testing.T) {
	s := &TelegramSender{}
	require.Error(t, s.Send(context.Background(), "a", "b"))
}

func TestKakaoSender(t *testing.T) {
	var gotAuth string
	var gotTemplate string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, r.ParseForm())
		gotTemplate = r.PostFormValue("template_object")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := &KakaoSender{AccessToken: "tok", URL: srv.URL, Client: srv.Client()}
	require.NoError(t, s.Send(context.Background(), "Schedule Alert", "면접"))

	require.Equal(t, "Bearer tok", gotAuth)

	var template map[string]any
	require.NoError(t, json.Unmarshal([]byte(gotTemplate), &template))
	require.Equal(t, "text", template["object_type"])
	require.Equal(t, "Schedule Alert\n면접", template["text"])
}

func TestSendersFromProfile(t *testing.T) {
	var out bytes.Buffer

	p := &profile.Profile{}
	senders := SendersFromProfile(p, &out)
	require.Len(t, senders, 1)
	require.Equal(t, "console", senders[0].Name())

	p = &profile.Profile{
		TelegramBotToken: "tok",
		TelegramChatID:   "42",
		KakaoAccessToken: "kak",
	}
	senders = SendersFromProfile(p, &out)
	require.Len(t, senders, 3)
	require.Equal(t, "telegram", senders[1].Name())
	require.Equal(t, "kakao", senders[2].Name())
}
