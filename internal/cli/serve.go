package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/daimidata/daimidata/pkg/phd"
	"github.com/daimidata/daimidata/pkg/pipeline"
)

// serveCommand creates the serve command for previewing the report locally.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		input   string
		aliases string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve the genealogy report over HTTP",
		Long: `Build the report and serve it locally. The page is rendered once at
startup from a records file, or from a fresh fetch when no file is given.

Routes:
  /             the report page
  /report.json  the full analysis document
  /graph.dot    the supervision graph in DOT format
  /records.json the cleaned records`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				input = args[0]
			}
			return c.runServe(cmd, addr, input, aliases, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&aliases, "aliases", "", "TOML file overriding the built-in name alias table")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching entirely")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, addr, input, aliases string, noCache bool) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}

	result, err := runner.Execute(ctx, pipeline.Options{
		InputFile: input,
		AliasFile: aliases,
		Formats:   []string{pipeline.FormatHTML, pipeline.FormatJSON, pipeline.FormatDOT},
	})
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", serveBytes("text/html; charset=utf-8", result.Artifacts[pipeline.FormatHTML]))
	r.Get("/report.json", serveBytes("application/json", result.Artifacts[pipeline.FormatJSON]))
	r.Get("/graph.dot", serveBytes("text/vnd.graphviz", result.Artifacts[pipeline.FormatDOT]))
	r.Get("/records.json", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = phd.WriteRecords(result.Records, w)
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	printSuccess("Serving report at %s", StyleHighlight.Render(fmt.Sprintf("http://localhost%s", addr)))
	printDetail("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func serveBytes(contentType string, data []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(data)
	}
}
