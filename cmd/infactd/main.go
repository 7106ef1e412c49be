package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/infact-news/infact/internal/cli"
	"github.com/infact-news/infact/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "infactd",
		Short: "Infact daemon and CLI",
		Long:  "Infact daemon for running the news API server and managing cluster maintenance",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())
	rootCmd.AddCommand(admin.CleanupCmd())
	rootCmd.AddCommand(admin.TrendingCmd())
	rootCmd.AddCommand(admin.DigestCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
