package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dkouassi/jokerbot/internal/store"
	"github.com/dkouassi/jokerbot/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarise the bookkeeping database",
	Long: `Report reads the bookkeeping database and prints observed message counts
and the prediction history as a table, JSON, or YAML.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("data-dir", "data", "directory holding the bookkeeping database")
	reportCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	if v := viper.GetString("store.data_dir"); v != "" && !cmd.Flags().Changed("data-dir") {
		dataDir = v
	}
	format, _ := cmd.Flags().GetString("format")

	st, err := store.NewStore(types.StoreConfig{DataDir: dataDir})
	if err != nil {
		return err
	}
	defer st.Close()

	report, err := st.Report(cmd.Context())
	if err != nil {
		return err
	}

	switch format {
	case "table":
		report.WriteTable(os.Stdout)
		return nil
	case "json":
		return report.WriteJSON(os.Stdout)
	case "yaml":
		return report.WriteYAML(os.Stdout)
	default:
		return fmt.Errorf("unknown format %q: use table, json, or yaml", format)
	}
}
