package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	statsPath  string
	server     *httptest.Server
}

// fakeTMDB serves the handful of endpoints collect and check use.
func fakeTMDB(t *testing.T) *httptest.Server {
	t.Helper()
	movies := map[string]string{
		"/movie/578":         `{"id":578,"title":"Jaws","release_date":"1975-06-20","runtime":124,"vote_average":7.7,"vote_count":9000,"poster_path":"/jaws.jpg","genres":[{"id":27,"name":"Horror"},{"id":53,"name":"Thriller"}]}`,
		"/movie/578/credits": `{"id":578,"cast":[{"name":"Roy Scheider"},{"name":"Robert Shaw"}],"crew":[{"name":"Steven Spielberg","job":"Director"}]}`,
		"/movie/601":         `{"id":601,"title":"E.T. the Extra-Terrestrial","release_date":"1982-06-11","runtime":115,"vote_average":7.5,"vote_count":10000,"poster_path":"/et.jpg","genres":[{"id":878,"name":"Science Fiction"}]}`,
		"/movie/601/credits": `{"id":601,"cast":[{"name":"Henry Thomas"}],"crew":[{"name":"Steven Spielberg","job":"Director"}]}`,
	}
	searches := map[string]string{
		"Jaws": `{"page":1,"results":[{"id":578,"title":"Jaws"}],"total_results":1}`,
		"E.T.": `{"page":1,"results":[{"id":601,"title":"E.T. the Extra-Terrestrial"}],"total_results":1}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status_code":7,"status_message":"Invalid API key: You must be granted a valid key."}`))
			return
		}
		switch {
		case r.URL.Path == "/configuration":
			_, _ = w.Write([]byte(`{"images":{"secure_base_url":"https://image.tmdb.org/t/p/","poster_sizes":["w92","original"]}}`))
		case r.URL.Path == "/search/movie":
			body, ok := searches[r.URL.Query().Get("query")]
			if !ok {
				body = `{"page":1,"results":[],"total_results":0}`
			}
			_, _ = w.Write([]byte(body))
		default:
			body, ok := movies[r.URL.Path]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte(body))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("TMDB_API_KEY", "")

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "moviestats.toml"),
		statsPath:  filepath.Join(base, "data", "movies.json"),
		server:     fakeTMDB(t),
	}
	writeTestConfig(t, env, "test-key")
	return env
}

func writeTestConfig(t *testing.T, env *cliTestEnv, apiKey string) {
	t.Helper()
	content := fmt.Sprintf(`[tmdb]
api_key = %q
base_url = %q
requests_per_second = 0

[collect]
request_delay_ms = 0

[stats]
path = %q

[logging]
level = "error"
`, apiKey, env.server.URL, env.statsPath)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
