package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MiniGameKind 纪念品对应的迷你游戏类型
type MiniGameKind string

const (
	// MiniGameHold 长按类型：按住足够时长即完成
	MiniGameHold MiniGameKind = "hold"
	// MiniGameSequence 序列类型：记忆并复现顺序点击
	MiniGameSequence MiniGameKind = "sequence"
	// MiniGameCatch 捕捉类型：点中指定数量的移动目标
	MiniGameCatch MiniGameKind = "catch"
)

// KeepsakeConfig 单个纪念品的静态配置
type KeepsakeConfig struct {
	ID    string       `yaml:"id"`    // 唯一且稳定的标识
	X     float64      `yaml:"x"`     // 世界场景中的 X 坐标
	Y     float64      `yaml:"y"`     // 世界场景中的 Y 坐标
	Kind  MiniGameKind `yaml:"kind"`  // 解锁它的迷你游戏类型
	Color [3]uint8     `yaml:"color"` // 光晕颜色 (R, G, B)
}

// FinaleConfig 终章文本配置
type FinaleConfig struct {
	Segments []string `yaml:"segments"` // 按揭示顺序排列的文本段
}

// ContentConfig 游戏内容配置
// 覆盖纪念品分布、寄语池和终章文本，从嵌入的 data/content.yaml 加载
type ContentConfig struct {
	Title     string           `yaml:"title"`
	Subtitle  string           `yaml:"subtitle"`
	Keepsakes []KeepsakeConfig `yaml:"keepsakes"`
	Phrases   []string         `yaml:"phrases"`
	Finale    FinaleConfig     `yaml:"finale"`
}

// contentConfigPath 嵌入内容配置的路径
const contentConfigPath = "data/content.yaml"

// LoadContentConfig 加载并校验游戏内容配置
//
// 返回：
//   - *ContentConfig: 解析后的内容配置
//   - error: 文件读取、解析或校验失败时返回错误
func LoadContentConfig() (*ContentConfig, error) {
	data, err := readDataFile(contentConfigPath)
	if err != nil {
		return nil, err
	}
	return parseContentConfig(data)
}

// parseContentConfig 解析 YAML 数据并校验
// 拆分出来便于测试（不依赖嵌入资源）
func parseContentConfig(data []byte) (*ContentConfig, error) {
	var cfg ContentConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse content config: %w", err)
	}

	if err := validateContentConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid content config: %w", err)
	}

	return &cfg, nil
}

// validateContentConfig 校验内容配置的必要约束
func validateContentConfig(cfg *ContentConfig) error {
	if len(cfg.Keepsakes) == 0 {
		return fmt.Errorf("no keepsakes defined")
	}
	if len(cfg.Phrases) == 0 {
		return fmt.Errorf("phrase pool is empty")
	}
	if len(cfg.Finale.Segments) == 0 {
		return fmt.Errorf("finale has no segments")
	}

	seen := make(map[string]bool, len(cfg.Keepsakes))
	for i, k := range cfg.Keepsakes {
		if k.ID == "" {
			return fmt.Errorf("keepsake %d has empty id", i)
		}
		if seen[k.ID] {
			return fmt.Errorf("duplicate keepsake id: %s", k.ID)
		}
		seen[k.ID] = true

		switch k.Kind {
		case MiniGameHold, MiniGameSequence, MiniGameCatch:
		default:
			return fmt.Errorf("keepsake %s has unknown mini-game kind: %q", k.ID, k.Kind)
		}
	}

	return nil
}
