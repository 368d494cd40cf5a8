package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"kirchhoff"
	"kirchhoff/config"
	"kirchhoff/debug"
	"kirchhoff/graph"
	"kirchhoff/load"
	"kirchhoff/types"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run 命令行入口, 参数之后是描述文件, 为空或 "-" 时读标准输入
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("kirchhoff", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML 配置文件")
	loops := fs.String("loops", "", "回路搜索方式: dfs | exhaustive | independent")
	suffix := fs.String("suffix", "", "阻值后缀约定: source (m=1e6) | si (m=1e-3)")
	excludeRef := fs.Bool("exclude-ref", false, "KCL 不包含参考节点")
	sourceEq := fs.Bool("source-eq", true, "KVL 加入电压源约束方程")
	sourceCur := fs.Bool("source-currents", false, "电压源支路分配电流未知量")
	nodal := fs.Bool("nodal", false, "节点电压形式的 KCL, 不列回路方程")
	workers := fs.Int("workers", 0, "并行分析数量")
	format := fs.String("format", "", "报告格式: text | json")
	chartDir := fs.String("chart", "", "HTML 拓扑图输出目录")
	plotDir := fs.String("plot", "", "图片拓扑图输出目录")
	verbose := fs.Bool("v", false, "输出调试日志")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	// 命令行显式给出的参数覆盖配置文件
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "loops":
			cfg.Loops = *loops
		case "suffix":
			cfg.Suffix = *suffix
		case "exclude-ref":
			cfg.ExcludeReference = *excludeRef
		case "source-eq":
			cfg.SourceConstraints = *sourceEq
		case "source-currents":
			cfg.SourceCurrents = *sourceCur
		case "nodal":
			cfg.NodalKCL = *nodal
		case "workers":
			cfg.Workers = *workers
		case "format":
			cfg.Format = *format
		case "chart":
			cfg.ChartDir = *chartDir
		case "plot":
			cfg.PlotDir = *plotDir
		case "v":
			if *verbose {
				cfg.LogLevel = "debug"
			}
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	opts := options(cfg, logger)

	var descs []*types.Description
	files := fs.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, name := range files {
		var list []*types.Description
		if name == "-" {
			list, err = load.LoadReader(stdin)
		} else {
			list, err = load.LoadFile(name)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		logger.Debug("加载电路描述", "file", name, "circuits", len(list))
		descs = append(descs, list...)
	}

	results := kirchhoff.Batch(descs, opts)
	for _, res := range results {
		if res.Err != nil {
			logger.Warn("电路分析失败", "circuit", res.Name, "err", res.Err)
		}
	}
	if err := writeDebug(cfg, results, logger); err != nil {
		return err
	}
	if cfg.Format == "json" {
		return kirchhoff.WriteJSON(stdout, results)
	}
	return kirchhoff.WriteReport(stdout, results)
}

// options 配置转换为分析参数
func options(cfg *config.Config, logger *slog.Logger) kirchhoff.Options {
	opts := kirchhoff.DefaultOptions()
	opts.Loops = graph.LoopMode(cfg.Loops)
	opts.Suffix = load.SuffixMode(cfg.Suffix)
	opts.ExcludeReference = cfg.ExcludeReference
	opts.SourceConstraints = cfg.SourceConstraints
	opts.SourceCurrents = cfg.SourceCurrents
	opts.NodalKCL = cfg.NodalKCL
	opts.Workers = cfg.Workers
	opts.Logger = logger
	return opts
}

// writeDebug 输出拓扑图
func writeDebug(cfg *config.Config, results []*kirchhoff.Result, logger *slog.Logger) error {
	if cfg.ChartDir == "" && cfg.PlotDir == "" {
		return nil
	}
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		loops := res.Loops
		if cfg.ChartDir != "" {
			path := filepath.Join(cfg.ChartDir, fileName(res.Name)+".html")
			if err := writeFile(path, debug.NewCharts(res.Graph, loops).Render); err != nil {
				return err
			}
			logger.Info("拓扑网页已输出", "circuit", res.Name, "path", path)
		}
		if cfg.PlotDir != "" {
			path := filepath.Join(cfg.PlotDir, fileName(res.Name)+"."+cfg.PlotFormat)
			err := writeFile(path, func(w io.Writer) error {
				return debug.WritePlot(w, res.Graph, loops, cfg.PlotFormat)
			})
			if err != nil {
				return err
			}
			logger.Info("拓扑图片已输出", "circuit", res.Name, "path", path)
		}
	}
	return nil
}

// writeFile 创建目录并写入文件
func writeFile(path string, render func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := render(file); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return file.Close()
}

// fileName 电路名转换为文件名
func fileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, name)
}
