package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ncobase/docstore/config"
	"github.com/ncobase/docstore/data"
	"github.com/ncobase/docstore/logging/logger"
	"github.com/ncobase/docstore/paging"
	"github.com/ncobase/docstore/version"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
)

// NewQueryCommand creates the query command
func NewQueryCommand() *cobra.Command {
	var (
		configFile string
		collection string
		filterJSON string
		sortExpr   string
		limit      int
		page       int
		after      string
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a paginated query against a collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %v", err)
			}

			cleanupLogger, err := logger.New(cfg.Logger)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %v", err)
			}
			defer cleanupLogger()

			d, cleanup, err := data.New(cfg.Data)
			if err != nil {
				return fmt.Errorf("failed to connect: %v", err)
			}
			defer cleanup()

			var filter bson.M
			if filterJSON != "" {
				if err := json.Unmarshal([]byte(filterJSON), &filter); err != nil {
					return fmt.Errorf("invalid filter: %v", err)
				}
			}

			opts := &paging.Options{
				Filter: filter,
				Sort:   paging.ParseSort(sortExpr),
				After:  after,
			}
			if limit > 0 {
				opts.Limit = limit
			}
			if page > 0 {
				opts.Page = page
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			store, err := d.Store(collection)
			if err != nil {
				return err
			}

			engine := paging.New(store, paging.WithConfig(engineConfig(cfg.Pagination)))
			result, err := engine.Query(ctx, opts)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "config.yaml", "config file path")
	cmd.Flags().StringVar(&collection, "collection", "", "collection name")
	cmd.Flags().StringVarP(&filterJSON, "filter", "f", "", "filter as JSON, e.g. '{\"status\":\"active\"}'")
	cmd.Flags().StringVarP(&sortExpr, "sort", "s", "", "sort expression, e.g. '-created_at'")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "page size")
	cmd.Flags().IntVarP(&page, "page", "p", 0, "page number (selects offset mode)")
	cmd.Flags().StringVarP(&after, "after", "a", "", "cursor token (selects keyset mode)")
	_ = cmd.MarkFlagRequired("collection")
	return cmd
}

// NewCursorCommand creates the cursor inspection command
func NewCursorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cursor",
		Short: "Cursor token commands",
	}

	cmd.AddCommand(
		newCursorDecodeCommand(),
		newCursorMintCommand(),
	)

	return cmd
}

func newCursorDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [token]",
		Short: "Decode a cursor token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, err := paging.DecodeCursor(args[0])
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(map[string]any{
				"value":   cur.Value.Interface(),
				"id":      cur.ID.Interface(),
				"sort":    cur.Sort.String(),
				"version": cur.Version,
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func newCursorMintCommand() *cobra.Command {
	var (
		docJSON  string
		sortExpr string
		idField  string
		ver      int
	)

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint a cursor token from a document",
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc map[string]any
			if err := json.Unmarshal([]byte(docJSON), &doc); err != nil {
				return fmt.Errorf("invalid document: %v", err)
			}

			sort, err := paging.ParseSort(sortExpr).Normalize(idField).ValidateKeyset(idField)
			if err != nil {
				return err
			}

			token, err := paging.EncodeCursor(doc, sort.Primary(idField), sort, ver, idField)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&docJSON, "doc", "d", "", "document as JSON")
	cmd.Flags().StringVarP(&sortExpr, "sort", "s", "", "sort expression, e.g. '-created_at'")
	cmd.Flags().StringVar(&idField, "id-field", "_id", "unique tie-breaker field")
	cmd.Flags().IntVar(&ver, "version", 1, "cursor format version")
	_ = cmd.MarkFlagRequired("doc")
	_ = cmd.MarkFlagRequired("sort")
	return cmd
}

// NewHealthCommand creates the connectivity check command
func NewHealthCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check store connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %v", err)
			}

			d, cleanup, err := data.New(cfg.Data)
			if err != nil {
				return fmt.Errorf("failed to connect: %v", err)
			}
			defer cleanup()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			if err := d.Health(ctx); err != nil {
				return fmt.Errorf("unhealthy: %v", err)
			}
			fmt.Println("ok")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "config.yaml", "config file path")
	return cmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.GetVersionInfo()
			fmt.Println("Version:", info.Version)
			fmt.Println("Built At:", info.BuiltAt)
		},
	}
}

// engineConfig maps the pagination section onto an engine configuration.
func engineConfig(p *config.Pagination) *paging.Config {
	if p == nil {
		return paging.DefaultConfig()
	}
	return &paging.Config{
		DefaultLimit:      p.DefaultLimit,
		MaxLimit:          p.MaxLimit,
		MaxPage:           p.MaxPage,
		DeepPageThreshold: p.DeepPageThreshold,
		CursorVersion:     p.CursorVersion,
		UseEstimatedCount: p.UseEstimatedCount,
		IDField:           p.IDField,
	}
}
