package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/ByLCY/vellum/dsl"
	"github.com/ByLCY/vellum/fonts"
	"github.com/ByLCY/vellum/layout"
	canvasrenderer "github.com/ByLCY/vellum/renderer/canvas"
)

func main() {
	app := &cli.App{
		Name:  "vellum",
		Usage: "把声明式文档描述渲染为 PDF",
		Commands: []*cli.Command{
			renderCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		slog.Error("执行失败", "error", err)
		os.Exit(1)
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "渲染一个文档",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Usage: "DSL 文件路径", Required: true},
			&cli.StringFlag{Name: "out", Usage: "PDF 输出路径", Value: "output/out.pdf"},
			&cli.StringFlag{Name: "data", Usage: "绑定到 ${path} 占位符的 JSON 数据"},
			&cli.StringFlag{Name: "debug", Usage: "布局调试 JSON 输出路径"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "输出调试日志"},
		},
		Action: func(ctx *cli.Context) error {
			setupLogging(ctx.Bool("verbose"))

			var data any
			if raw := ctx.String("data"); raw != "" {
				if err := json.Unmarshal([]byte(raw), &data); err != nil {
					return fmt.Errorf("解析 data JSON 失败: %w", err)
				}
			}
			return render(ctx.String("in"), ctx.String("out"), ctx.String("debug"), data)
		},
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// render 串联解析、编译与渲染。
func render(inputPath, outputPath, debugPath string, data any) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("无法打开 DSL 文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	ast, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析 DSL 失败: %w", err)
	}

	collection := fonts.NewCollection()
	doc, err := dsl.Compile(ast, collection, data, filepath.Dir(inputPath))
	if err != nil {
		return fmt.Errorf("编译文档失败: %w", err)
	}

	if debugPath != "" {
		if err := writeDebug(doc, debugPath); err != nil {
			return err
		}
	}

	pdfBytes, err := doc.Render(canvasrenderer.New(collection))
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}

	fmt.Printf("已生成 PDF：%s\n", outputPath)
	return nil
}

// writeDebug 把绘制调用序列录制为 JSON，渲染过程与 PDF 输出相互独立。
func writeDebug(doc *layout.Document, debugPath string) error {
	recorder := layout.NewRecorder()
	if _, err := doc.Render(recorder); err != nil {
		return fmt.Errorf("布局调试渲染失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(recorder, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
