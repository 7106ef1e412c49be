package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/infact-news/infact/internal/repository"
	"github.com/infact-news/infact/internal/service"
)

func TrendingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Show trending topics",
		Long:  "Analyze recent clusters and print the top trending topics",
		RunE:  runTrending,
	}

	cmd.Flags().Int("days", 7, "Analysis window in days")
	cmd.Flags().Int("min-articles", 3, "Minimum article count for a topic to qualify")
	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")

	return cmd
}

func runTrending(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	days, _ := cmd.Flags().GetInt("days")
	minArticles, _ := cmd.Flags().GetInt("min-articles")
	outputFormat, _ := cmd.Flags().GetString("output")

	_, store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	clusterRepo := repository.NewClusterRepository(store.Clusters)
	trendingSvc := service.NewTrendingService(clusterStreamSource{repo: clusterRepo})

	topics, err := trendingSvc.Analyze(ctx, days, minArticles)
	if err != nil {
		return fmt.Errorf("trending analysis failed: %w", err)
	}

	if outputFormat == "json" {
		out, err := json.MarshalIndent(topics, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	if len(topics) == 0 {
		fmt.Printf("No trending topics in the last %d days\n", days)
		return nil
	}

	fmt.Printf("Trending topics (last %d days):\n\n", days)
	for i, topic := range topics {
		fmt.Printf("%2d. %-30s score=%.1f trend=%s clusters=%d articles=%d sources=%s\n",
			i+1, topic.Topic, topic.Score, topic.Trend,
			topic.ClusterCount, topic.ArticleCount, strings.Join(topic.Sources, ","))
	}
	return nil
}
