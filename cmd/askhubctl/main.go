// askhubctl is the operator CLI. It talks to the same Postgres store as the
// server, so queries answered here exercise the identical retrieval pipeline.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"askhub/db"
	"askhub/internal/dto"
	"askhub/internal/index"
	"askhub/internal/repository"
	"askhub/internal/service"
	"askhub/pkg/config"
	"askhub/pkg/logger"
	"askhub/pkg/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app bundles the wiring shared by every subcommand.
type app struct {
	cfg         *config.Config
	pool        *pgxpool.Pool
	query       *service.QueryService
	knowledge   *service.KnowledgeService
	submissions *service.SubmissionService
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	appLogger := logger.Get()

	if err := db.Migrate(&cfg.Database, appLogger); err != nil {
		return nil, err
	}

	pool, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		return nil, err
	}

	domainRepo := repository.NewDomainRepository(pool, appLogger)
	knowledgeRepo := repository.NewKnowledgeRepository(pool, appLogger)
	submissionRepo := repository.NewSubmissionRepository(pool, appLogger)
	conversationRepo := repository.NewConversationRepository(pool, appLogger)

	idx := index.New(cfg.Retrieval.MaxFeatures)
	queryService := service.NewQueryService(domainRepo, knowledgeRepo, conversationRepo, idx, &cfg.Retrieval, appLogger)
	knowledgeService := service.NewKnowledgeService(domainRepo, knowledgeRepo, &cfg.Retrieval, appLogger)
	submissionService := service.NewSubmissionService(submissionRepo, domainRepo, queryService, appLogger)

	return &app{
		cfg:         cfg,
		pool:        pool,
		query:       queryService,
		knowledge:   knowledgeService,
		submissions: submissionService,
	}, nil
}

func (a *app) close() {
	a.pool.Close()
}

func main() {
	if err := logger.Init(os.Getenv("LOG_LEVEL")); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	root := &cobra.Command{
		Use:           "askhubctl",
		Short:         "Operator CLI for the Askhub knowledge base",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAskCmd(),
		newSubmitCmd(),
		newSubmissionsCmd(),
		newVerifyCmd(),
		newRejectCmd(),
		newExportCmd(),
		newImportCmd(),
		newStatsCmd(),
	)

	if err := root.Execute(); err != nil {
		logger.Get().Error("Command failed", zap.Error(err))
		os.Exit(1)
	}
}

func newAskCmd() *cobra.Command {
	var language string
	cmd := &cobra.Command{
		Use:   "ask <domain> <question>",
		Short: "Ask a question against a domain's knowledge base",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.query.RefreshAll(ctx); err != nil {
				return err
			}

			resp, err := a.query.Answer(ctx, &dto.ChatRequest{
				Domain:   args[0],
				Question: args[1],
				Language: language,
			})
			if err != nil {
				return err
			}

			fmt.Println(resp.Answer)
			fmt.Printf("confidence=%.3f domain=%s time=%.3fs\n", resp.Confidence, resp.Domain, resp.ResponseTime)
			return nil
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", "", "question language (en, uz, ru)")
	return cmd
}

func newSubmitCmd() *cobra.Command {
	var keywords, language, submittedBy string
	cmd := &cobra.Command{
		Use:   "submit <domain> <question> <answer>",
		Short: "Stage a candidate knowledge item for review",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.submissions.Submit(ctx, &dto.SubmitRequest{
				Domain:      args[0],
				Question:    args[1],
				Answer:      args[2],
				Keywords:    keywords,
				Language:    language,
				SubmittedBy: submittedBy,
			}); err != nil {
				return err
			}

			fmt.Println("staged")
			return nil
		},
	}
	cmd.Flags().StringVarP(&keywords, "keywords", "k", "", "space-separated keywords")
	cmd.Flags().StringVarP(&language, "language", "l", "", "submission language (en, uz, ru)")
	cmd.Flags().StringVar(&submittedBy, "by", "", "submitter name")
	return cmd
}

func newSubmissionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submissions",
		Short: "List staged submissions with their positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			subs, err := a.submissions.List(ctx)
			if err != nil {
				return err
			}
			if len(subs) == 0 {
				fmt.Println("no staged submissions")
				return nil
			}

			for _, sub := range subs {
				fmt.Printf("[%d] %s: %q by %s\n", sub.Index, sub.Domain, sub.Question, sub.SubmittedBy)
			}
			return nil
		},
	}
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <index>",
		Short: "Promote a staged submission into the knowledge base",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[0])
			}

			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			sub, err := a.submissions.Verify(ctx, position)
			if err != nil {
				if errors.Is(err, service.ErrIndexOutOfRange) {
					return fmt.Errorf("no staged submission at index %d", position)
				}
				return err
			}

			fmt.Printf("verified %s: %q\n", sub.Domain, sub.Question)
			return nil
		},
	}
}

func newRejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <index>",
		Short: "Discard a staged submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[0])
			}

			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.submissions.Reject(ctx, position); err != nil {
				if errors.Is(err, service.ErrIndexOutOfRange) {
					return fmt.Errorf("no staged submission at index %d", position)
				}
				return err
			}

			fmt.Println("rejected")
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export the knowledge base as JSON (stdout if no file given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			data, err := a.knowledge.Export(ctx)
			if err != nil {
				return err
			}

			out := os.Stdout
			if len(args) == 1 {
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", args[0], err)
				}
				defer f.Close()
				out = f
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(data)
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON knowledge export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			var data map[string][]dto.ExportItem
			if err := json.Unmarshal(raw, &data); err != nil {
				return fmt.Errorf("invalid export document: %w", err)
			}

			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			result, err := a.knowledge.Import(ctx, data)
			if err != nil {
				return err
			}

			fmt.Printf("imported %d items into %d domains (%d new)\n",
				result.Items, len(result.Updated), result.Domains)
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show per-domain knowledge and usage statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			stats, err := a.knowledge.ListDomains(ctx)
			if err != nil {
				return err
			}

			for _, st := range stats {
				fmt.Printf("%-16s items=%-4d usage=%-6d %s\n",
					st.Name, st.KnowledgeCount, st.TotalUsage, st.Description)
			}
			return nil
		},
	}
}
