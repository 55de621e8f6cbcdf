package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yeisme/relicvault/pkg/configs"
	ctxPkg "github.com/yeisme/relicvault/pkg/context"
	"github.com/yeisme/relicvault/pkg/internal/service"
	"github.com/yeisme/relicvault/pkg/internal/storage"
	"github.com/yeisme/relicvault/pkg/log"
)

// sweepHours 为 0 时按配置的暂存保留期计算截止时间.
var sweepHours int

var (
	mediaCmd = &cobra.Command{
		Use:   "media",
		Short: "Media maintenance commands",
	}

	mediaSweepCmd = &cobra.Command{
		Use:   "sweep",
		Short: "reap staged media older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := configs.InitConfig(configPath); err != nil {
				return fmt.Errorf("init config: %w", err)
			}

			log.Init()

			ctx := context.Background()

			mgr, err := storage.Init(ctx)
			if err != nil {
				return fmt.Errorf("init storage: %w", err)
			}
			defer func() { _ = mgr.Close() }()

			ctx = ctxPkg.WithStorageManager(ctx, mgr)

			var cutoff time.Time
			if sweepHours > 0 {
				cutoff = time.Now().UTC().Add(-time.Duration(sweepHours) * time.Hour)
			}

			resp, err := service.NewMediaService(ctx).SweepStaged(ctx, "cli@relicvault", cutoff)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "swept %d staged assets (cutoff %s)\n",
				resp.Swept, resp.Cutoff.Format(time.RFC3339))

			return nil
		},
	}
)

// registerMediaCommands 注册媒体维护命令.
func registerMediaCommands() {
	mediaSweepCmd.Flags().IntVar(&sweepHours, "hours", 0, "override retention window in hours")

	rootCmd.AddCommand(mediaCmd)
	mediaCmd.AddCommand(mediaSweepCmd)
}
