// Package config 提供游戏配置的加载和常量定义
//
// 内容配置（纪念品分布、寄语池、终章文本）通过 YAML 文件描述，
// 嵌入在二进制中。由于 //go:embed 只能嵌入当前包目录下的文件，
// embed.FS 变量声明在项目根目录，通过 Init() 注入本包。
package config

import (
	"embed"
	"fmt"
)

// 游戏逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
const (
	GameWindowWidth  = 800
	GameWindowHeight = 600
)

var (
	dataFS      embed.FS
	initialized bool
)

// Init 注入项目根目录声明的 embed.FS
// 必须在 main() 开始时、任何配置加载之前调用
func Init(data embed.FS) {
	dataFS = data
	initialized = true
}

// readDataFile 从嵌入的 data/ 目录读取文件内容
func readDataFile(path string) ([]byte, error) {
	if !initialized {
		return nil, fmt.Errorf("config package not initialized, call Init() first")
	}
	data, err := dataFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded file %s: %w", path, err)
	}
	return data, nil
}
