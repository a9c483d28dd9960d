package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"CryptoDigest/internal/app"
	"CryptoDigest/internal/digest"
)

var outPath string

func init() {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one curation run and render the digest",
		Run:   runDigest,
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the rendered digest to a file instead of stdout")

	RootCmd.AddCommand(cmd)
}

func runDigest(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)

	application, err := app.New(cfg, logger)
	if err != nil {
		exitErr("build application", err)
	}
	defer application.Close()

	doc, err := application.Run(cmd.Context())
	if err != nil {
		exitErr("run pipeline", err)
	}
	if doc == nil {
		logger.Info("nothing to digest")
		return
	}

	rendered := digest.Render(*doc)
	if outPath == "" {
		fmt.Print(rendered)
		return
	}

	if err := os.WriteFile(outPath, []byte(rendered), 0o644); err != nil {
		exitErr("write digest", err)
	}
	logger.Info("digest written", "path", outPath)
}
