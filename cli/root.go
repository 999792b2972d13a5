// Package cli 实现 tuckbox 命令行：渲染刀版、查看面尺寸、纸张列表、单位换算与预览服务。
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion 设置 --version 显示的版本信息，通常由 main 通过 ldflags 注入。
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute 运行 tuckbox 命令行。
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "tuckbox",
		Short:        "tuckbox 生成卡牌插舌盒的印刷刀版",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("tuckbox %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newFacesCmd())
	root.AddCommand(newPaperCmd())
	root.AddCommand(newConvertCmd())
	root.AddCommand(newServeCmd())
	return root
}
