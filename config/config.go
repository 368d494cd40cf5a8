package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate 校验器单例
var validate = validator.New()

// Config 生成参数配置文件
type Config struct {
	Loops             string `yaml:"loops" validate:"oneof=dfs exhaustive independent"` // 回路搜索方式
	Suffix            string `yaml:"suffix" validate:"oneof=source si"`                 // 阻值后缀约定
	ExcludeReference  bool   `yaml:"exclude_reference"`                                 // KCL 不包含参考节点
	SourceConstraints bool   `yaml:"source_constraints"`                                // KVL 加入电压源约束
	SourceCurrents    bool   `yaml:"source_currents"`                                   // 电压源支路分配电流
	NodalKCL          bool   `yaml:"nodal_kcl"`                                         // 节点电压形式的 KCL
	Workers           int    `yaml:"workers" validate:"min=1,max=256"`                  // 并行分析数量
	Format            string `yaml:"format" validate:"oneof=text json"`                 // 报告格式
	ChartDir          string `yaml:"chart_dir"`                                         // HTML 拓扑图输出目录
	PlotDir           string `yaml:"plot_dir"`                                          // 图片拓扑图输出目录
	PlotFormat        string `yaml:"plot_format" validate:"oneof=png svg pdf"`          // 图片格式
	LogLevel          string `yaml:"log_level" validate:"oneof=debug info warn error"`  // 日志级别
}

// Default 默认配置
func Default() *Config {
	return &Config{
		Loops:             "dfs",
		Suffix:            "source",
		SourceConstraints: true,
		Workers:           1,
		Format:            "text",
		PlotFormat:        "png",
		LogLevel:          "info",
	}
}

// Load 读取配置文件, 未写出的字段保持默认值
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config cannot be nil")
	}
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: invalid value %v (%s=%s)", fe.Field(), fe.Value(), fe.Tag(), fe.Param()))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// Level 日志级别
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
