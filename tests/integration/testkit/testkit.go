package testkit

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/ayalane/mdshelf/internal/app"
)

// Service represents a test service that can be started and stopped
type Service interface {
	Start() (map[string]any, error)
	Stop() error
	GetName() string
}

// TestEnvContext provides access to properties collected during environment startup
type TestEnvContext interface {
	GetProperties() map[string]any
	GetProperty(name string) (any, bool)
}

// TestEnv manages the lifecycle of test services
type TestEnv interface {
	Start() (map[string]any, error)
	Stop() error
	GetContext() TestEnvContext
}

type testEnvContextImpl struct {
	properties map[string]any
}

func (c *testEnvContextImpl) GetProperties() map[string]any {
	return c.properties
}

func (c *testEnvContextImpl) GetProperty(name string) (any, bool) {
	val, ok := c.properties[name]
	return val, ok
}

type testEnvImpl struct {
	services []Service
	context  *testEnvContextImpl
}

// NewTestEnv creates a new test environment with the given services
func NewTestEnv(services ...Service) TestEnv {
	return &testEnvImpl{
		services: services,
		context:  &testEnvContextImpl{properties: make(map[string]any)},
	}
}

func (e *testEnvImpl) Start() (map[string]any, error) {
	for _, s := range e.services {
		props, err := s.Start()
		if err != nil {
			return nil, err
		}
		for k, v := range props {
			e.context.properties[k] = v
		}
	}
	return e.context.properties, nil
}

func (e *testEnvImpl) Stop() error {
	var lastErr error
	// Stop in reverse order
	for i := len(e.services) - 1; i >= 0; i-- {
		if err := e.services[i].Stop(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func (e *testEnvImpl) GetContext() TestEnvContext {
	return e.context
}

// ArticleStoreService runs a fake GitHub contents API seeded with
// Markdown articles. Start exposes the API base URL as a property.
type ArticleStoreService struct {
	Owner    string
	Repo     string
	Branch   string
	Articles map[string]string // filename -> content, served in sorted listing order

	server *httptest.Server
	order  []string
}

// NewArticleStoreService creates a fake store for owner/repo with the given articles
func NewArticleStoreService(owner, repo, branch string, articles map[string]string) *ArticleStoreService {
	return &ArticleStoreService{
		Owner:    owner,
		Repo:     repo,
		Branch:   branch,
		Articles: articles,
	}
}

func (s *ArticleStoreService) Start() (map[string]any, error) {
	for name := range s.Articles {
		s.order = append(s.order, name)
	}
	sort.Strings(s.order)

	mux := http.NewServeMux()
	contentsPath := fmt.Sprintf("/repos/%s/%s/contents/", s.Owner, s.Repo)
	mux.HandleFunc(contentsPath, func(w http.ResponseWriter, r *http.Request) {
		listing := make([]map[string]string, 0, len(s.order))
		for _, name := range s.order {
			listing = append(listing, map[string]string{
				"name":         name,
				"path":         name,
				"type":         "file",
				"download_url": s.server.URL + "/raw/" + name,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(listing)
	})
	mux.HandleFunc("/raw/", func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/raw/")
		content, ok := s.Articles[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(content))
	})

	s.server = httptest.NewServer(mux)

	return map[string]any{
		"store.api_base_url": s.server.URL,
		"store.owner":        s.Owner,
		"store.repo":         s.Repo,
		"store.branch":       s.Branch,
	}, nil
}

func (s *ArticleStoreService) Stop() error {
	if s.server != nil {
		s.server.Close()
	}
	return nil
}

func (s *ArticleStoreService) GetName() string {
	return "article-store"
}

// URL returns the fake API base URL. Valid after Start.
func (s *ArticleStoreService) URL() string {
	return s.server.URL
}

// GetFreePort returns a free port from the kernel
func GetFreePort() (int, error) {
	return getFreePortWithAddr("localhost:0")
}

// MustGetFreePort returns a free port or fails the test
func MustGetFreePort(t testing.TB) int {
	t.Helper()
	port, err := GetFreePort()
	if err != nil {
		t.Fatalf("Failed to get free port: %v", err)
	}
	return port
}

func getFreePortWithAddr(addrStr string) (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", addrStr)
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer func() { _ = l.Close() }()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// FlagOptions configures NewTestFlags
type FlagOptions struct {
	Port       int    // Uses free port if 0
	Transport  string // Defaults to "sse"
	AuthType   string // Defaults to "none"
	Host       string // Defaults to "localhost"
	Owner      string // Defaults to "cpp"
	Repo       string // Defaults to "articles"
	APIBaseURL string // Points settings at a fake store when set
}

// NewTestFlags creates a configured pflag.FlagSet for testing
func NewTestFlags(t testing.TB, opts *FlagOptions) *pflag.FlagSet {
	t.Helper()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	app.RegisterFlags(flags)

	port := 0
	transport := "sse"
	authType := "none"
	host := "localhost"
	owner := "cpp"
	repo := "articles"

	if opts != nil {
		if opts.Port != 0 {
			port = opts.Port
		}
		if opts.Transport != "" {
			transport = opts.Transport
		}
		if opts.AuthType != "" {
			authType = opts.AuthType
		}
		if opts.Host != "" {
			host = opts.Host
		}
		if opts.Owner != "" {
			owner = opts.Owner
		}
		if opts.Repo != "" {
			repo = opts.Repo
		}
	}

	if port == 0 {
		port = MustGetFreePort(t)
	}

	_ = flags.Set("port", fmt.Sprintf("%d", port))
	_ = flags.Set("transport", transport)
	_ = flags.Set("auth-type", authType)
	_ = flags.Set("host", host)
	_ = flags.Set("owner", owner)
	_ = flags.Set("repo", repo)
	if opts != nil && opts.APIBaseURL != "" {
		_ = flags.Set("api-base-url", opts.APIBaseURL)
	}

	return flags
}
