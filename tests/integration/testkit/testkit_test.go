package testkit

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
)

// Mock service for testing
type mockService struct {
	name       string
	startProps map[string]any
	startErr   error
	stopErr    error
	started    bool
	stopped    bool
	onStop     func() // Optional callback when Stop is called
}

func (m *mockService) Start() (map[string]any, error) {
	m.started = true
	return m.startProps, m.startErr
}

func (m *mockService) Stop() error {
	m.stopped = true
	if m.onStop != nil {
		m.onStop()
	}
	return m.stopErr
}

func (m *mockService) GetName() string {
	return m.name
}

func TestNewTestEnv(t *testing.T) {
	svc := &mockService{name: "test-service"}
	env := NewTestEnv(svc)

	if env == nil {
		t.Fatal("Expected non-nil TestEnv")
	}

	ctx := env.GetContext()
	if ctx == nil {
		t.Fatal("Expected non-nil context")
	}

	if len(ctx.GetProperties()) != 0 {
		t.Errorf("Expected empty properties, got %d", len(ctx.GetProperties()))
	}
}

func TestTestEnvStart(t *testing.T) {
	t.Run("single service success", func(t *testing.T) {
		svc := &mockService{
			name:       "svc1",
			startProps: map[string]any{"port": 8080},
		}
		env := NewTestEnv(svc)

		props, err := env.Start()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !svc.started {
			t.Error("Service should have been started")
		}
		if props["port"] != 8080 {
			t.Errorf("Expected port 8080, got %v", props["port"])
		}
	})

	t.Run("multiple services merge properties", func(t *testing.T) {
		svc1 := &mockService{
			name:       "svc1",
			startProps: map[string]any{"key1": "value1"},
		}
		svc2 := &mockService{
			name:       "svc2",
			startProps: map[string]any{"key2": "value2"},
		}
		env := NewTestEnv(svc1, svc2)

		props, err := env.Start()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if props["key1"] != "value1" || props["key2"] != "value2" {
			t.Errorf("Expected merged properties, got %v", props)
		}
	})

	t.Run("start error", func(t *testing.T) {
		svc := &mockService{
			name:     "failing-svc",
			startErr: errors.New("start failed"),
		}
		env := NewTestEnv(svc)

		if _, err := env.Start(); err == nil {
			t.Fatal("Expected error")
		}
	})
}

func TestTestEnvStop(t *testing.T) {
	t.Run("stops in reverse order", func(t *testing.T) {
		stopOrder := []string{}
		svc1 := &mockService{name: "svc1", onStop: func() { stopOrder = append(stopOrder, "svc1") }}
		svc2 := &mockService{name: "svc2", onStop: func() { stopOrder = append(stopOrder, "svc2") }}
		env := NewTestEnv(svc1, svc2)

		if _, err := env.Start(); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if err := env.Stop(); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if len(stopOrder) != 2 || stopOrder[0] != "svc2" || stopOrder[1] != "svc1" {
			t.Errorf("Expected reverse stop order, got %v", stopOrder)
		}
	})

	t.Run("stop error is reported", func(t *testing.T) {
		svc := &mockService{name: "svc", stopErr: errors.New("stop failed")}
		env := NewTestEnv(svc)

		if _, err := env.Start(); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if err := env.Stop(); err == nil {
			t.Fatal("Expected stop error")
		}
	})
}

func TestArticleStoreService(t *testing.T) {
	svc := NewArticleStoreService("cpp", "articles", "master", map[string]string{
		"B_Second.md": "tags: b",
		"A_First.md":  "tags: a",
	})

	props, err := svc.Start()
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer func() { _ = svc.Stop() }()

	baseURL, ok := props["store.api_base_url"].(string)
	if !ok || baseURL == "" {
		t.Fatal("Expected store.api_base_url property")
	}

	resp, err := http.Get(baseURL + "/repos/cpp/articles/contents/")
	if err != nil {
		t.Fatalf("Listing request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var listing []map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		t.Fatalf("Failed to decode listing: %v", err)
	}
	if len(listing) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(listing))
	}
	if listing[0]["name"] != "A_First.md" {
		t.Errorf("Expected sorted listing, got %v", listing)
	}

	raw, err := http.Get(listing[0]["download_url"])
	if err != nil {
		t.Fatalf("Raw request failed: %v", err)
	}
	defer func() { _ = raw.Body.Close() }()
	body, _ := io.ReadAll(raw.Body)
	if string(body) != "tags: a" {
		t.Errorf("Unexpected raw content: %q", body)
	}
}

func TestGetFreePort(t *testing.T) {
	port, err := GetFreePort()
	if err != nil {
		t.Fatalf("GetFreePort failed: %v", err)
	}
	if port <= 0 || port > 65535 {
		t.Errorf("Invalid port: %d", port)
	}
}

func TestNewTestFlags(t *testing.T) {
	flags := NewTestFlags(t, &FlagOptions{
		Transport:  "stdio",
		Owner:      "someone",
		Repo:       "notes",
		APIBaseURL: "http://localhost:9999",
	})

	if got, _ := flags.GetString("transport"); got != "stdio" {
		t.Errorf("transport = %q, want stdio", got)
	}
	if got, _ := flags.GetString("owner"); got != "someone" {
		t.Errorf("owner = %q, want someone", got)
	}
	if got, _ := flags.GetString("repo"); got != "notes" {
		t.Errorf("repo = %q, want notes", got)
	}
	if got, _ := flags.GetString("api-base-url"); got != "http://localhost:9999" {
		t.Errorf("api-base-url = %q", got)
	}
}

func TestNewTestFlags_Defaults(t *testing.T) {
	flags := NewTestFlags(t, nil)

	if got, _ := flags.GetString("transport"); got != "sse" {
		t.Errorf("transport = %q, want sse", got)
	}
	if got, _ := flags.GetString("owner"); got != "cpp" {
		t.Errorf("owner = %q, want cpp", got)
	}
	if got, _ := flags.GetInt("port"); got <= 0 {
		t.Errorf("Expected a free port to be assigned, got %d", got)
	}
}
