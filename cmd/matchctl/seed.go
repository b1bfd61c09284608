package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	rediscache "github.com/artem13815/resumematch/pkg/cache/redis"
	"github.com/artem13815/resumematch/pkg/logger"
	pgrepo "github.com/artem13815/resumematch/pkg/repository/postgres"
	"github.com/artem13815/resumematch/pkg/skill"
)

var seedCmd = &cobra.Command{
	Use:   "seed [file]",
	Short: "Add skills to the vocabulary (built-in list when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pool, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		var src io.Reader = skill.DefaultSeed()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			src = f
		}

		// a running server caches the vocabulary; drop it so new entries show up
		var cache skill.VocabularyCache
		if cfg.RedisURL != "" {
			client, err := rediscache.Connect(ctx, cfg.RedisURL)
			if err != nil {
				return err
			}
			defer client.Close()
			if cache, err = rediscache.NewVocabularyCache(client, "", cfg.VocabCacheTTL); err != nil {
				return err
			}
		}

		uc := skill.NewService(pgrepo.NewSkillRepository(pool), cache, logger.Named("skill"))
		res, err := uc.Seed(ctx, src)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
