package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTwilioDeliver(t *testing.T) {
	var gotPath, gotTo, gotFrom, gotBody string
	var gotUser, gotPass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		if err := r.ParseForm(); err != nil {
			t.Errorf("parsing form: %v", err)
		}
		gotTo = r.PostForm.Get("To")
		gotFrom = r.PostForm.Get("From")
		gotBody = r.PostForm.Get("Body")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"SM123"}`))
	}))
	defer srv.Close()

	ch := NewTwilioChannel("AC123", "secret", "+15550001111", []string{"+15552223333"})
	ch.baseURL = srv.URL

	err := ch.Deliver(context.Background(), "+15552223333", Message{Body: "changed"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/2010-04-01/Accounts/AC123/Messages.json" {
		t.Errorf("path = %q", gotPath)
	}
	if gotUser != "AC123" || gotPass != "secret" {
		t.Errorf("auth = %q/%q, want account sid and token", gotUser, gotPass)
	}
	if gotTo != "+15552223333" || gotFrom != "+15550001111" || gotBody != "changed" {
		t.Errorf("form = to %q from %q body %q", gotTo, gotFrom, gotBody)
	}
}

func TestTwilioDeliver_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":20003,"message":"Authenticate"}`))
	}))
	defer srv.Close()

	ch := NewTwilioChannel("AC123", "bad", "+15550001111", []string{"+15552223333"})
	ch.baseURL = srv.URL

	if err := ch.Deliver(context.Background(), "+15552223333", Message{Body: "x"}); err == nil {
		t.Fatal("expected error for rejected credentials")
	}
}
