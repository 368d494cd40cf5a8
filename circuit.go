package kirchhoff

import (
	"log/slog"
	"sync"

	"kirchhoff/equation"
	"kirchhoff/graph"
	"kirchhoff/load"
	"kirchhoff/types"
)

// Options 分析参数
type Options struct {
	Loops             graph.LoopMode  // 回路搜索方式
	Suffix            load.SuffixMode // 阻值后缀约定
	ExcludeReference  bool            // KCL 不包含参考节点
	SourceConstraints bool            // KVL 加入电压源约束
	SourceCurrents    bool            // 电压源支路分配电流
	NodalKCL          bool            // 节点电压形式的 KCL
	Workers           int             // 并行分析数量
	Logger            *slog.Logger    // 日志
}

// DefaultOptions 默认参数
func DefaultOptions() Options {
	return Options{
		Loops:             graph.LoopsDFS,
		Suffix:            load.SuffixSource,
		SourceConstraints: true,
		Workers:           1,
		Logger:            slog.Default(),
	}
}

// Result 单个电路的分析结果
type Result struct {
	Name   string           // 电路名称
	Graph  *graph.Graph     // 电路图
	Loops  []graph.Loop     // 搜索到的全部回路
	System *equation.System // 方程
	Err    error            // 分析错误
}

// Analyze 对单个电路进行一次完整的生成过程
// 电路图, 电流分配器和回路搜索状态都只属于本次调用.
func Analyze(desc *types.Description, opts Options) *Result {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	res := &Result{Name: desc.Name}
	log := opts.Logger.With("circuit", desc.Name)
	g, err := graph.NewGraph(desc, func(o *graph.Options) {
		o.Suffix = opts.Suffix
		o.Logger = opts.Logger
	})
	if err != nil {
		log.Debug("建图失败", "err", err)
		res.Err = err
		return res
	}
	res.Graph = g
	log.Debug("建图完成", "nodes", len(g.Nodes()), "references", g.ReferenceCount(), "pairs", len(g.Pairs()))
	loops, err := graph.FindLoops(g, opts.Loops)
	if err != nil {
		res.Err = err
		return res
	}
	res.Loops = loops
	log.Debug("回路搜索完成", "mode", string(opts.Loops), "loops", len(loops))
	res.System, res.Err = equation.Build(g, loops, equation.Options{
		ExcludeReference:  opts.ExcludeReference,
		SourceConstraints: opts.SourceConstraints,
		SourceCurrents:    opts.SourceCurrents,
		NodalKCL:          opts.NodalKCL,
		Logger:            opts.Logger,
	})
	return res
}

// Batch 依次分析多个电路, 单个电路失败不影响其他电路, 结果保持输入顺序
func Batch(descs []*types.Description, opts Options) []*Result {
	results := make([]*Result, len(descs))
	workers := min(max(opts.Workers, 1), len(descs))
	if workers <= 1 {
		for i, desc := range descs {
			results[i] = Analyze(desc, opts)
		}
		return results
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = Analyze(descs[i], opts)
			}
		}()
	}
	for i := range descs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}
