package ollama

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mikey/llm-email-triage/internal/config"
	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

// Factory creates new instances of OllamaClient
type Factory struct {
	cfg    config.OllamaConfig
	llmCfg config.LLMConfig
	logger *zap.Logger
}

// NewFactory creates a new factory for OllamaClient instances
func NewFactory(cfg config.OllamaConfig, llmCfg config.LLMConfig, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		llmCfg: llmCfg,
		logger: logger,
	}
}

// CreateLLMClient creates a new OllamaClient for the configured host
func (f *Factory) CreateLLMClient() (*OllamaClient, error) {
	base, err := ParseHost(f.cfg.Host)
	if err != nil {
		return nil, err
	}
	if f.cfg.Model == "" {
		return nil, fmt.Errorf("ollama model is required")
	}

	httpClient := &http.Client{Timeout: f.llmCfg.Timeout}
	return NewOllamaClient(api.NewClient(base, httpClient), f.cfg.Model, f.logger), nil
}

// ParseHost resolves an Ollama host the way the ollama CLI reads OLLAMA_HOST:
// the scheme defaults to http and the port to 11434, or to 80/443 when the
// scheme is given explicitly.
func ParseHost(raw string) (*url.URL, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, fmt.Errorf("ollama host is required")
	}

	defaultPort := "11434"
	scheme, hostport, ok := strings.Cut(s, "://")
	switch {
	case !ok:
		scheme, hostport = "http", s
	case scheme == "http":
		defaultPort = "80"
	case scheme == "https":
		defaultPort = "443"
	default:
		return nil, fmt.Errorf("invalid ollama host %q: unsupported scheme %s", raw, scheme)
	}

	hostport, path, _ := strings.Cut(hostport, "/")
	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		host, port = strings.Trim(hostport, "[]"), defaultPort
	}
	if host == "" {
		return nil, fmt.Errorf("invalid ollama host %q: host is required", raw)
	}
	if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		return nil, fmt.Errorf("invalid ollama host %q: bad port %s", raw, port)
	}

	u := &url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, port),
	}
	if path != "" {
		u.Path = "/" + path
	}
	return u, nil
}
