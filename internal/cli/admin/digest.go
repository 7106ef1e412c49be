package admin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/infact-news/infact/internal/repository"
	"github.com/infact-news/infact/internal/service"
)

func DigestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Print the weekly digest",
		Long:  "Aggregate the trailing seven days of clusters into a weekly digest",
		RunE:  runDigest,
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")

	return cmd
}

func runDigest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	outputFormat, _ := cmd.Flags().GetString("output")

	_, store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	clusterRepo := repository.NewClusterRepository(store.Clusters)
	digestSvc := service.NewDigestService(clusterStreamSource{repo: clusterRepo})

	digest, err := digestSvc.Weekly(ctx)
	if err != nil {
		return fmt.Errorf("digest aggregation failed: %w", err)
	}

	if outputFormat == "json" {
		out, err := json.MarshalIndent(digest, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Println(digest.Summary)
	fmt.Printf("\nclusters: %d  articles: %d  facts: %d  musings: %d\n",
		digest.TotalClusters, digest.TotalArticles, digest.TotalFacts, digest.TotalMusings)
	fmt.Printf("avg articles/cluster: %d  unique sources: %d\n",
		digest.AvgArticlesPerCluster, digest.UniqueSources)
	for _, kw := range digest.TopKeywords {
		fmt.Printf("  keyword %-20s %d\n", kw.Name, kw.Count)
	}
	return nil
}
