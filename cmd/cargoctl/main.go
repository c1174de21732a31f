// Command cargoctl is a command-line dispatcher over the cargo placement
// and retrieval core, backed by a JSON-snapshotted in-memory store.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	statePath   string
	noColor     bool
	backend     string
	dsn         string
	blobBackend string
	blobPath    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cargoctl",
	Short: "Inspect and drive the cargo placement and retrieval core",
	Long: `cargoctl exercises the placement, retrieval, rearrangement, and
waste-handling command surface against a JSON-snapshotted in-memory store.

Examples:
  cargoctl zone create --name "Lab Module"
  cargoctl container create --zone <zoneId> --width 100 --depth 100 --height 100
  cargoctl item add --name "Food Packet" --width 10 --depth 10 --height 10 --priority 80
  cargoctl place --item <itemId> --container <containerId>
  cargoctl retrieve --name food`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "cargocore-state.json", "path to the JSON state snapshot (memory backend only)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "memory", "persistence backend: memory, sqlite, or postgres")
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "database path (sqlite) or connection string (postgres)")
	rootCmd.PersistentFlags().StringVar(&blobBackend, "blob-backend", "fs", "undock manifest archive backend: fs, memory, or s3")
	rootCmd.PersistentFlags().StringVar(&blobPath, "blob-path", "cargocore-manifests", "root directory for the fs blob backend")

	rootCmd.AddCommand(zoneCmd)
	rootCmd.AddCommand(containerCmd)
	rootCmd.AddCommand(itemCmd)
	rootCmd.AddCommand(placeCmd)
	rootCmd.AddCommand(retrieveCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(rearrangeCmd)
	rootCmd.AddCommand(wasteCmd)
	rootCmd.AddCommand(undockCmd)
	rootCmd.AddCommand(timeCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(manifestCmd)
}
