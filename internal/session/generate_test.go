package session

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func loadedManager(t *testing.T, b *fakeBackend) *Manager {
	t.Helper()
	p := createModelFile(t, t.TempDir(), "tiny.gguf")
	m := NewManager(b)
	if _, err := m.Load(p, LoadOptions{}); err != nil {
		t.Fatalf("load: %v", err)
	}
	return m
}

func TestGenerateNoModel(t *testing.T) {
	m := NewManager(&fakeBackend{})
	_, err := m.Generate(context.Background(), "hi", Params{}, nil)
	if err == nil || !IsNoModelLoaded(err) {
		t.Fatalf("expected no-model-loaded, got %v", err)
	}
}

func TestGenerateStreamsChunksInOrder(t *testing.T) {
	b := &fakeBackend{chunks: []string{"Hel", "lo"}}
	m := loadedManager(t, b)

	var got []string
	text, err := m.Generate(context.Background(), "hi", Params{}, func(ch string) error {
		got = append(got, ch)
		return nil
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if text != "Hello" {
		t.Fatalf("expected %q, got %q", "Hello", text)
	}
	if !reflect.DeepEqual(got, []string{"Hel", "lo"}) {
		t.Fatalf("unexpected chunk sequence: %v", got)
	}
}

func TestGenerateAppliesDefaults(t *testing.T) {
	b := &fakeBackend{chunks: []string{"ok"}}
	m := loadedManager(t, b)
	if _, err := m.Generate(context.Background(), "hi", Params{}, func(string) error { return nil }); err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := Params{MaxTokens: DefaultMaxTokens, Temperature: DefaultTemperature, TopK: DefaultTopK, TopP: DefaultTopP}
	if b.lastParams != want {
		t.Fatalf("expected defaults %+v, got %+v", want, b.lastParams)
	}
	if b.lastPrompt != "hi" {
		t.Fatalf("unexpected prompt %q", b.lastPrompt)
	}
}

func TestGenerateKeepsExplicitParams(t *testing.T) {
	b := &fakeBackend{chunks: []string{"ok"}}
	m := loadedManager(t, b)
	p := Params{MaxTokens: 64, Temperature: 1.2, TopK: 10, TopP: 0.5}
	if _, err := m.Generate(context.Background(), "hi", p, func(string) error { return nil }); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if b.lastParams != p {
		t.Fatalf("expected %+v, got %+v", p, b.lastParams)
	}
}

func TestGenerateBusy(t *testing.T) {
	gate := make(chan struct{})
	b := &fakeBackend{chunks: []string{"ok"}, genGate: gate}
	m := loadedManager(t, b)

	done := make(chan error, 1)
	go func() {
		_, err := m.Generate(context.Background(), "first", Params{}, func(string) error { return nil })
		done <- err
	}()
	// Wait for the first generation to take the busy flag.
	deadline := time.Now().Add(2 * time.Second)
	for {
		m.mu.Lock()
		busy := m.generating
		m.mu.Unlock()
		if busy {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("first generation never started")
		}
		time.Sleep(time.Millisecond)
	}

	_, err := m.Generate(context.Background(), "second", Params{}, nil)
	if err == nil || !IsGenerationBusy(err) {
		t.Fatalf("expected generation-busy, got %v", err)
	}

	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("first generation: %v", err)
	}
}

func TestGenerateFailureKeepsSession(t *testing.T) {
	b := &fakeBackend{genErr: errors.New("boom")}
	m := loadedManager(t, b)
	_, err := m.Generate(context.Background(), "hi", Params{}, func(string) error { return nil })
	if err == nil || !IsGeneration(err) {
		t.Fatalf("expected generation error, got %v", err)
	}
	if !m.Loaded() {
		t.Fatalf("failed generation must not unload the model")
	}
	// Retry works against the same session.
	b.genErr = nil
	b.chunks = []string{"again"}
	text, err := m.Generate(context.Background(), "hi", Params{}, func(string) error { return nil })
	if err != nil || text != "again" {
		t.Fatalf("retry: text=%q err=%v", text, err)
	}
}

func TestGenerateCanceledContext(t *testing.T) {
	gate := make(chan struct{}) // never closed; generation waits on ctx
	b := &fakeBackend{genGate: gate}
	m := loadedManager(t, b)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := m.Generate(ctx, "hi", Params{}, func(string) error { return nil })
		done <- err
	}()
	time.Sleep(5 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("generation did not observe cancellation")
	}
	if !m.Loaded() {
		t.Fatalf("cancellation must not unload the model")
	}
}
