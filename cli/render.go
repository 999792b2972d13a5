package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/tuckbox/config"
	"github.com/ByLCY/tuckbox/renderer"
	canvasrenderer "github.com/ByLCY/tuckbox/renderer/canvas"
	"github.com/ByLCY/tuckbox/renderer/raster"
	"github.com/ByLCY/tuckbox/tuckbox"
)

// renderOpts 为 render 命令的参数；非空的取值覆盖描述文件。
type renderOpts struct {
	output string
	format string
	mode   string
	side   string
	style  string
	paper  string
	dpi    float64
	debug  string
}

func newRenderCmd() *cobra.Command {
	opts := renderOpts{format: "pdf"}

	cmd := &cobra.Command{
		Use:   "render [box-file]",
		Short: "Render a box description to PDF or PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runRender(cmd.Context(), cmd, path, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output file (default: <title>-tuckbox.<ext>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: pdf, png")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "render mode: standard, pretty, two-sided")
	cmd.Flags().StringVar(&opts.side, "side", "", "side for single-sided output: front, back")
	cmd.Flags().StringVar(&opts.style, "style", "", "box style: default, double-tuck")
	cmd.Flags().StringVar(&opts.paper, "paper", "", "paper format, e.g. letter, a4")
	cmd.Flags().Float64Var(&opts.dpi, "scale", raster.DefaultDPI, "PNG resolution in dpi")
	cmd.Flags().StringVar(&opts.debug, "debug", "", "write layout debug JSON to this path")
	return cmd
}

// loadBox 读取描述文件；path 为空时使用默认纸盒。
func loadBox(path string) (*config.Box, string, error) {
	if path == "" {
		return config.Default(), ".", nil
	}
	box, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return box, filepath.Dir(path), nil
}

func runRender(ctx context.Context, cmd *cobra.Command, path string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	box, baseDir, err := loadBox(path)
	if err != nil {
		return err
	}
	overrides := []struct {
		flag string
		dst  *string
	}{
		{opts.mode, &box.Mode},
		{opts.side, &box.Side},
		{opts.style, &box.Style},
		{opts.paper, &box.Paper},
	}
	for _, ov := range overrides {
		if ov.flag != "" {
			*ov.dst = ov.flag
		}
	}
	for _, p := range box.Unresolved() {
		printWarning(cmd.ErrOrStderr(), "无法解析占位符 ${%s}", p)
	}
	if p, err := box.PaperSize(); err == nil {
		logger.Debug("page", "paper", p.Details())
	}

	o, err := box.Resolve(baseDir)
	if err != nil {
		return err
	}

	var r renderer.Renderer
	switch strings.ToLower(opts.format) {
	case "pdf":
		r = canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{BaseDir: baseDir, Logger: logger, Title: box.Title, Author: box.Author})
	case "png":
		r = raster.NewRenderer(raster.Options{BaseDir: baseDir, DPI: opts.dpi, Logger: logger})
	default:
		return fmt.Errorf("不支持的输出格式 %q", opts.format)
	}

	if opts.debug != "" {
		if err := writeDebug(o, opts.debug); err != nil {
			return err
		}
	}

	outputs, err := r.Render(o)
	if err != nil {
		return fmt.Errorf("渲染失败: %w", err)
	}
	target := opts.output
	if target == "" {
		target = OutputName(box.Title, r.Ext())
	}
	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	prog.done("rendered " + o.Mode.String())
	out := cmd.OutOrStdout()
	printSuccess(out, "已生成 %s", strings.ToUpper(r.Ext()))
	for _, res := range outputs {
		file := withSuffix(target, res.Suffix)
		if err := os.WriteFile(file, res.Data, 0o644); err != nil {
			return fmt.Errorf("写入文件失败: %w", err)
		}
		printFile(out, file)
	}
	return nil
}

func writeDebug(o tuckbox.Options, path string) error {
	info, err := tuckbox.Debug(o)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := tuckbox.WriteDebugJSON(info, path); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// OutputName 由标题生成输出文件名，例如 "Card Deck" → "card-deck-tuckbox.pdf"。
func OutputName(title, ext string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		return "tuckbox." + ext
	}
	return slug + "-tuckbox." + ext
}

func withSuffix(path, suffix string) string {
	if suffix == "" {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}
