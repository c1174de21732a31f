package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	blobcore "cargocore/internal/blob/core"
)

func humanSize(bytes int64) string {
	return humanize.Bytes(uint64(bytes))
}

// manifestCmd inspects the undock manifests processUndock archives to blob
// storage (§4.9): one JSON object per undock, under manifests/<containerId>/.
var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Inspect archived undock manifests",
}

var manifestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived manifests, optionally scoped to a container",
	RunE: func(cmd *cobra.Command, args []string) error {
		containerID, _ := cmd.Flags().GetString("container")
		store, err := openBlobStore()
		if err != nil {
			return err
		}
		prefix := "manifests/"
		if containerID != "" {
			prefix = fmt.Sprintf("manifests/%s/", containerID)
		}
		infos, err := store.List(backgroundCtx, prefix)
		if err != nil {
			return err
		}
		printSuccess("%d archived manifest(s) under %s", len(infos), prefix)
		for _, info := range infos {
			printStatus(info.Key, "%s, last modified %s", humanSize(info.Size), info.LastModified.Format("2006-01-02T15:04:05Z"))
		}
		return nil
	},
}

var manifestGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Fetch an archived manifest and print it to stdout, or --out a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		out, _ := cmd.Flags().GetString("out")
		store, err := openBlobStore()
		if err != nil {
			return err
		}
		info, body, err := store.Get(backgroundCtx, key)
		if err != nil {
			return fmt.Errorf("fetch manifest %s: %w", key, err)
		}
		defer body.Close()

		if out == "" {
			_, err = io.Copy(os.Stdout, body)
			return err
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := io.Copy(f, body); err != nil {
			return err
		}
		printSuccess("wrote %s (%s) to %s", key, humanSize(info.Size), out)
		return nil
	},
}

var manifestStatCmd = &cobra.Command{
	Use:   "stat <key>",
	Short: "Show metadata for an archived manifest without downloading its body",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		store, err := openBlobStore()
		if err != nil {
			return err
		}
		info, err := store.Head(backgroundCtx, key)
		if err != nil {
			return fmt.Errorf("stat manifest %s: %w", key, err)
		}
		printSuccess("%s", info.Key)
		printStatus("size", "%s", humanSize(info.Size))
		printStatus("contentType", "%s", info.ContentType)
		printStatus("lastModified", "%s", info.LastModified.Format("2006-01-02T15:04:05Z"))
		return nil
	},
}

var manifestURLCmd = &cobra.Command{
	Use:   "url <key>",
	Short: "Print a time-limited URL for retrieving an archived manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		store, err := openBlobStore()
		if err != nil {
			return err
		}
		url, err := store.PresignURL(backgroundCtx, key, blobcore.SignedURLOptions{Method: "GET"})
		if err != nil {
			return fmt.Errorf("presign manifest %s: %w", key, err)
		}
		fmt.Println(url)
		return nil
	},
}

var manifestRemoveCmd = &cobra.Command{
	Use:   "rm <key>",
	Short: "Delete an archived manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		store, err := openBlobStore()
		if err != nil {
			return err
		}
		removed, err := store.Delete(backgroundCtx, key)
		if err != nil {
			return fmt.Errorf("delete manifest %s: %w", key, err)
		}
		if !removed {
			printWarning("no manifest archived under %s", key)
			return nil
		}
		printSuccess("removed %s", key)
		return nil
	},
}

func init() {
	manifestListCmd.Flags().String("container", "", "restrict to manifests archived for this container id")
	manifestGetCmd.Flags().String("out", "", "write the manifest body to this path instead of stdout")

	manifestCmd.AddCommand(manifestListCmd)
	manifestCmd.AddCommand(manifestGetCmd)
	manifestCmd.AddCommand(manifestStatCmd)
	manifestCmd.AddCommand(manifestURLCmd)
	manifestCmd.AddCommand(manifestRemoveCmd)
}
