package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"CryptoDigest/internal/app"
)

func init() {
	cmd := &cobra.Command{
		Use:   "seen",
		Short: "Print the ids in the dedup store",
		Long:  "Lists every item id the dedup store has recorded. The store never expires entries, so this is the place to audit its growth.",
		Run:   runSeen,
	}

	RootCmd.AddCommand(cmd)
}

func runSeen(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)

	store, closeStore, err := app.OpenStore(cfg.Dedup, logger)
	if err != nil {
		exitErr("open dedup store", err)
	}
	defer closeStore()

	ids, err := store.Load(cmd.Context())
	if err != nil {
		exitErr("load dedup store", err)
	}

	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	for _, id := range sorted {
		fmt.Println(id)
	}
	fmt.Printf("total: %d\n", len(sorted))
}
