package client

import (
	"path/filepath"
	"testing"
)

func TestFileStoreFreshSession(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))

	sess, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sess.SessionID == "" {
		t.Fatal("fresh session has no session id")
	}
	if sess.Token != "" || len(sess.CachedTasks) != 0 {
		t.Fatalf("fresh session not empty: %+v", sess)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "state", "session.json"))

	sess, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sess.Token = "jwt-token"
	sess.LastActivityDate = "2024-06-15"
	sess.CachedTasks = []Task{{ID: 1, Text: "review PR", Date: "2024-06-15", Time: "14:00"}}

	if err := store.Save(sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Token != "jwt-token" || got.LastActivityDate != "2024-06-15" {
		t.Fatalf("round trip lost fields: %+v", got)
	}
	if len(got.CachedTasks) != 1 || got.CachedTasks[0].Text != "review PR" {
		t.Fatalf("cached tasks lost: %+v", got.CachedTasks)
	}
	if got.SessionID != sess.SessionID {
		t.Fatalf("session id changed across reload: %q vs %q", got.SessionID, sess.SessionID)
	}
}

func TestFileStoreClear(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))

	sess, _ := store.Load()
	sess.Token = "jwt-token"
	if err := store.Save(sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear of cleared store: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load after clear: %v", err)
	}
	if got.Token != "" {
		t.Fatal("token survived logout")
	}
}
