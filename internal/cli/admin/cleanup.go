package admin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/infact-news/infact/internal/repository"
	"github.com/infact-news/infact/internal/service"
)

func CleanupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove old clusters and their articles",
		Long:  "Delete clusters older than the retention window together with their member articles",
		RunE:  runCleanup,
	}

	cmd.Flags().Int("days", 0, "Retention window in days (defaults to CLEANUP_MAX_AGE_DAYS)")
	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")

	return cmd
}

func runCleanup(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	days, _ := cmd.Flags().GetInt("days")
	outputFormat, _ := cmd.Flags().GetString("output")

	cfg, store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	if days == 0 {
		days = cfg.CleanupMaxAgeDays
	}

	articleRepo := repository.NewArticleRepository(store.Articles)
	clusterRepo := repository.NewClusterRepository(store.Clusters)
	clusterSvc := service.NewClusterService(clusterRepo, articleRepo, articleRepo)

	report, err := clusterSvc.Cleanup(ctx, days)
	if err != nil {
		if report != nil && report.ClustersDeleted > 0 {
			fmt.Printf("partial cleanup: %d clusters and %d articles deleted before failure\n",
				report.ClustersDeleted, report.ArticlesDeleted)
		}
		return fmt.Errorf("cleanup failed: %w", err)
	}

	if outputFormat == "json" {
		out, err := json.MarshalIndent(map[string]interface{}{
			"clusters_deleted": report.ClustersDeleted,
			"articles_deleted": report.ArticlesDeleted,
			"max_age_days":     days,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Deleted %d clusters and %d articles older than %d days\n",
		report.ClustersDeleted, report.ArticlesDeleted, days)
	return nil
}
