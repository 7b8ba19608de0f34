package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/krakenctl/kraken"
)

// maxParallelGets caps concurrent requests issued by a single get command
const maxParallelGets = 4

var requestData string

var getCmd = &cobra.Command{
	Use:   "get PATH...",
	Short: "GET one or more API paths and print the JSON responses",
	Example: `  krakenctl get /user
  krakenctl get /games/top?limit=5 /streams/summary`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGet,
}

var postCmd = &cobra.Command{
	Use:   "post PATH",
	Short: "POST a JSON body to an API path",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithBody(http.MethodPost),
}

var putCmd = &cobra.Command{
	Use:     "put PATH",
	Short:   "PUT a JSON body to an API path",
	Example: `  krakenctl put /channels/44322889 --data '{"channel":{"status":"hello"}}'`,
	Args:    cobra.ExactArgs(1),
	RunE:    runWithBody(http.MethodPut),
}

var deleteCmd = &cobra.Command{
	Use:   "delete PATH",
	Short: "DELETE an API path",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	for _, c := range []*cobra.Command{postCmd, putCmd} {
		c.Flags().StringVar(&requestData, "data", "", "JSON request body, or @file, or - for stdin")
		_ = c.MarkFlagRequired("data")
	}

	rootCmd.AddCommand(getCmd, postCmd, putCmd, deleteCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	results := make([]json.RawMessage, len(args))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxParallelGets)

	for i, path := range args {
		g.Go(func() error {
			raw, err := kraken.Get[json.RawMessage](ctx, client, path)
			if err != nil {
				logRequestError(http.MethodGet, path, err)
				return fmt.Errorf("GET %s: %w", path, err)
			}
			results[i] = raw
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, raw := range results {
		if err := printJSON(cmd.OutOrStdout(), raw); err != nil {
			return err
		}
	}
	return nil
}

func runWithBody(method string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		body, err := readBody(requestData, cmd.InOrStdin())
		if err != nil {
			return err
		}

		path := args[0]
		var raw json.RawMessage
		switch method {
		case http.MethodPost:
			raw, err = kraken.Post[json.RawMessage](cmd.Context(), client, path, body)
		default:
			raw, err = kraken.Put[json.RawMessage](cmd.Context(), client, path, body)
		}
		if err != nil {
			logRequestError(method, path, err)
			return fmt.Errorf("%s %s: %w", method, path, err)
		}

		return printJSON(cmd.OutOrStdout(), raw)
	}
}

func runDelete(cmd *cobra.Command, args []string) error {
	path := args[0]
	raw, err := kraken.Delete[json.RawMessage](cmd.Context(), client, path)
	if err != nil {
		logRequestError(http.MethodDelete, path, err)
		return fmt.Errorf("DELETE %s: %w", path, err)
	}
	return printJSON(cmd.OutOrStdout(), raw)
}

// readBody resolves the --data flag into a validated JSON document
func readBody(data string, stdin io.Reader) (json.RawMessage, error) {
	var (
		content []byte
		err     error
	)
	switch {
	case data == "-":
		content, err = io.ReadAll(stdin)
	case len(data) > 0 && data[0] == '@':
		content, err = os.ReadFile(data[1:])
	default:
		content = []byte(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	content = bytes.TrimSpace(content)
	if !json.Valid(content) {
		return nil, fmt.Errorf("request body is not valid JSON")
	}
	return json.RawMessage(content), nil
}

func printJSON(w io.Writer, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

func logRequestError(method, path string, err error) {
	logger.Debug().
		Err(err).
		Str("method", method).
		Str("path", path).
		Str("kind", kraken.KindOf(err).String()).
		Msg("Request failed")
}
