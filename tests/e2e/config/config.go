package config

import (
	"bufio"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// TestConfig holds all configuration for the WeSign E2E suite
type TestConfig struct {
	BaseURL      string
	SchedulerURL string
	Timeout      time.Duration
	Headless     bool
	SlowMo       int
	Screenshots  bool
	Videos       bool
	UserEmail    string
	UserPassword string
	Locale       string // "he" or "en" — which UI language the deployment defaults to
	FixtureDir   string
}

var loadOnce sync.Once

// loadDotEnv loads simple KEY=VALUE lines from .env if present.
// Existing environment variables take precedence and are not overwritten.
func loadDotEnv() {
	f, err := os.Open(".env")
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		i := strings.Index(line, "=")
		if i <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:i])
		val := strings.TrimSpace(line[i+1:])
		if key == "" || val == "" {
			continue
		}
		if (strings.HasPrefix(val, "\"") && strings.HasSuffix(val, "\"")) || (strings.HasPrefix(val, "'") && strings.HasSuffix(val, "'")) {
			val = val[1 : len(val)-1]
		}
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, val)
		}
	}
}

// GetConfig returns the test configuration from environment variables
func GetConfig() *TestConfig {
	loadOnce.Do(loadDotEnv)

	baseURL := os.Getenv("WESIGN_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if os.Getenv("WESIGN_BASEURL_AUTODETECT") != "false" {
		baseURL = detectReachableBaseURL(baseURL)
	}
	log.Printf("[e2e-config] Resolved BaseURL=%s", baseURL)

	slowMo := 0
	if v := os.Getenv("SLOW_MO"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			slowMo = n
		} else {
			slowMo = 100
		}
	}

	timeout := 30 * time.Second
	if v := os.Getenv("WESIGN_TIMEOUT_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = time.Duration(n) * time.Second
		}
	}

	locale := os.Getenv("WESIGN_LOCALE")
	if locale == "" {
		locale = "he"
	}

	fixtureDir := os.Getenv("WESIGN_FIXTURE_DIR")
	if fixtureDir == "" {
		fixtureDir = "./test-fixtures"
	}

	return &TestConfig{
		BaseURL:      baseURL,
		SchedulerURL: os.Getenv("SCHEDULER_URL"),
		Timeout:      timeout,
		Headless:     os.Getenv("HEADLESS") != "false",
		SlowMo:       slowMo,
		Screenshots:  os.Getenv("SCREENSHOTS") != "false",
		Videos:       os.Getenv("VIDEOS") == "true",
		UserEmail:    os.Getenv("WESIGN_USER_EMAIL"),
		UserPassword: os.Getenv("WESIGN_USER_PASSWORD"),
		Locale:       locale,
		FixtureDir:   fixtureDir,
	}
}

// HasCredentials reports whether login credentials are configured.
func (c *TestConfig) HasCredentials() bool {
	return c.UserEmail != "" && c.UserPassword != ""
}

// detectReachableBaseURL attempts to find a responsive deployment if the
// provided baseURL is not reachable (e.g. compose service name vs localhost).
func detectReachableBaseURL(initial string) string {
	start := time.Now()
	if reachable(initial) {
		return initial
	}

	tried := []string{initial}
	candidates := []string{}

	u, err := url.Parse(initial)
	if err == nil {
		host := u.Hostname()
		port := u.Port()
		if port == "" {
			port = "8080"
		}
		basePorts := []string{port, "8080", "3000", "5000"}
		if host != "localhost" && host != "127.0.0.1" {
			for _, p := range basePorts {
				candidates = append(candidates, "http://localhost:"+p)
			}
			for _, p := range basePorts {
				candidates = append(candidates, "http://127.0.0.1:"+p)
			}
		}
	}
	candidates = append(candidates, "http://localhost:8080")

	seen := map[string]struct{}{initial: {}}
	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		tried = append(tried, c)
		if reachable(c) {
			log.Printf("[e2e-config] Auto-detect switched BaseURL %s -> %s (%.0fms; tried=%v)",
				initial, c, time.Since(start).Seconds()*1000, tried)
			return c
		}
	}
	log.Printf("[e2e-config] Auto-detect kept unreachable BaseURL=%s (tried=%v in %.0fms)",
		initial, tried, time.Since(start).Seconds()*1000)
	return initial
}

func reachable(base string) bool {
	u, err := url.Parse(base)
	if err != nil {
		return false
	}
	host := u.Host
	if !strings.Contains(host, ":") {
		switch u.Scheme {
		case "https":
			host += ":443"
		default:
			host += ":80"
		}
	}
	d := net.Dialer{Timeout: 250 * time.Millisecond}
	conn, err := d.Dial("tcp", host)
	if err != nil {
		return false
	}
	_ = conn.Close()
	client := &http.Client{Timeout: 800 * time.Millisecond}
	for _, path := range []string{"/health", "/login"} {
		req, _ := http.NewRequest("GET", base+path, nil)
		resp, err := client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			return true
		}
	}
	return false
}
