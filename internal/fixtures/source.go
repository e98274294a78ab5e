package fixtures

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Fixture document names.
const (
	IncidentsFile         = "incidents.json"
	RCAFile               = "rca.json"
	RunbooksFile          = "runbooks.json"
	StatusFile            = "status.json"
	SecurityMetricsFile   = "security-metrics.json"
	SecurityThreatsFile   = "security-threats.json"
	SecurityDecisionsFile = "security-decisions.json"
)

// Names lists every fixture document in display order.
var Names = []string{
	IncidentsFile,
	RCAFile,
	RunbooksFile,
	StatusFile,
	SecurityMetricsFile,
	SecurityThreatsFile,
	SecurityDecisionsFile,
}

// Source fetches raw fixture documents by name.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

//go:embed data/*.json
var embedded embed.FS

// Embedded returns the sample fixtures compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// FSSource reads documents from a file system, one file per name.
type FSSource struct {
	FS fs.FS
}

// DirSource returns a source reading from dir on disk.
func DirSource(dir string) FSSource {
	return FSSource{FS: os.DirFS(dir)}
}

// EmbeddedSource returns a source over the built-in fixtures.
func EmbeddedSource() FSSource {
	return FSSource{FS: Embedded()}
}

func (s FSSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}
	data, err := fs.ReadFile(s.FS, name)
	if err != nil {
		status := 0
		if errors.Is(err, fs.ErrNotExist) {
			status = http.StatusNotFound
		}
		return nil, &FetchError{Name: name, Status: status, Err: err}
	}
	return data, nil
}

// HTTPSource fetches documents from BaseURL. Every request carries a
// cache-busting query parameter and asks intermediaries not to store the
// response, so edits to hosted fixtures show up on the next load.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
	Now     func() time.Time
}

func (s HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	now := s.Now
	if now == nil {
		now = time.Now
	}

	url := strings.TrimRight(s.BaseURL, "/") + "/" + name + "?v=" + strconv.FormatInt(now().UnixMilli(), 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Name: name, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Name: name, Status: resp.StatusCode, Err: err}
	}
	return data, nil
}
