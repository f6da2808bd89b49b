// Package cli implements the dwolla command: one API request per run, with
// the JSON body printed to stdout.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/dwolla/internal/config"
	"github.com/aussiebroadwan/dwolla/pkg/dwolla"
	"github.com/aussiebroadwan/dwolla/pkg/slogx"
)

const usage = `usage: dwolla [flags] <command> [path] [json-body]

commands:
  root                      GET the API root
  get <path>                GET a resource
  post <path> [json-body]   POST a JSON body, following Location on 201
  delete <path>             DELETE a resource

configuration is read from DWOLLA_* environment variables or the file in
DWOLLA_CONFIG (.toml, .yaml).

flags:
`

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// queryFlag collects repeated -q key=value pairs.
type queryFlag dwolla.Query

func (q queryFlag) String() string { return dwolla.Query(q).Encode() }

func (q queryFlag) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	switch existing := q[key].(type) {
	case nil:
		q[key] = value
	case string:
		q[key] = []string{existing, value}
	case []string:
		q[key] = append(existing, value)
	}
	return nil
}

// headerFlag collects repeated -H "Name: value" pairs.
type headerFlag dwolla.Headers

func (h headerFlag) String() string { return fmt.Sprint(map[string]string(h)) }

func (h headerFlag) Set(v string) error {
	name, value, ok := strings.Cut(v, ":")
	if !ok || strings.TrimSpace(name) == "" {
		return fmt.Errorf("expected Name: value, got %q", v)
	}
	h[strings.TrimSpace(name)] = strings.TrimSpace(value)
	return nil
}

// Run executes the command line and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("dwolla", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	query := queryFlag{}
	headers := headerFlag{}
	fs.Var(query, "q", "query parameter `key=value` (repeatable)")
	fs.Var(headers, "H", "request header `Name: value` (repeatable)")
	idempotency := fs.Bool("idempotent", false, "send a generated Idempotency-Key with post")
	noFollow := fs.Bool("no-follow", false, "return the POST response instead of following Location")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return ExitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return ExitError
	}

	logger := slogx.New(slogx.Config{
		Service: "dwolla",
		Version: dwolla.Version,
		Env:     cfg.Environment,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Output:  stderr,
	})

	client, err := NewClient(cfg, logger, !*noFollow)
	if err != nil {
		fmt.Fprintf(stderr, "client: %v\n", err)
		return ExitError
	}

	reqHeaders := dwolla.Headers(headers)
	if *idempotency {
		reqHeaders = reqHeaders.WithIdempotencyKey(dwolla.NewIdempotencyKey())
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	res, err := dispatch(ctx, client, cmd, rest, dwolla.Query(query), reqHeaders)
	if errors.Is(err, errUsage) {
		fmt.Fprintf(stderr, "%v\n\n", err)
		fs.Usage()
		return ExitUsage
	}
	if err != nil {
		printError(stderr, err)
		return ExitError
	}

	if err := printResponse(stdout, res); err != nil {
		fmt.Fprintf(stderr, "output: %v\n", err)
		return ExitError
	}
	return ExitOK
}

// NewClient builds a Client from cfg. The token is fetched on the first
// request since the command makes exactly one.
func NewClient(cfg config.Config, logger *slog.Logger, follow bool) (*dwolla.Client, error) {
	opts := []dwolla.Option{
		dwolla.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		dwolla.WithLogger(logger),
		dwolla.WithTokenPrewarm(false),
		dwolla.WithFollowLocation(follow),
	}
	if cfg.RateLimited() {
		opts = append(opts, dwolla.WithRateLimit(cfg.RateLimit))
	}

	return dwolla.NewClient(dwolla.ClientOptions{
		Key:         cfg.Key,
		Secret:      cfg.Secret,
		Environment: cfg.EnvironmentSelector(),
	}, opts...)
}

var errUsage = errors.New("invalid arguments")

func dispatch(ctx context.Context, c *dwolla.Client, cmd string, args []string, query dwolla.Query, headers dwolla.Headers) (*dwolla.Response[any], error) {
	switch cmd {
	case "root":
		return c.Get(ctx, "/", query, headers)
	case "get":
		if len(args) != 1 {
			return nil, fmt.Errorf("get takes a path: %w", errUsage)
		}
		return c.Get(ctx, args[0], query, headers)
	case "delete":
		if len(args) != 1 {
			return nil, fmt.Errorf("delete takes a path: %w", errUsage)
		}
		return c.Delete(ctx, args[0], query, headers)
	case "post":
		if len(args) < 1 || len(args) > 2 {
			return nil, fmt.Errorf("post takes a path and an optional JSON body: %w", errUsage)
		}
		var body any
		if len(args) == 2 {
			if err := json.Unmarshal([]byte(args[1]), &body); err != nil {
				return nil, fmt.Errorf("body is not valid JSON (%v): %w", err, errUsage)
			}
		}
		return c.PostFollow(ctx, args[0], body, headers)
	default:
		return nil, fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func printResponse(w io.Writer, res *dwolla.Response[any]) error {
	switch body := res.Body.(type) {
	case nil:
		return writeJSON(w, map[string]any{"status": res.Status, "location": res.Location()})
	case string:
		if body == "" {
			return writeJSON(w, map[string]any{"status": res.Status, "location": res.Location()})
		}
		_, err := fmt.Fprintln(w, body)
		return err
	default:
		return writeJSON(w, body)
	}
}

func printError(w io.Writer, err error) {
	var resErr *dwolla.ResponseError
	if errors.As(err, &resErr) {
		fmt.Fprintf(w, "error: HTTP %d\n", resErr.Status)
		_ = writeJSON(w, resErr.Body)
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
