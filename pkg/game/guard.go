package game

import "log"

// SafeUpdate 执行一个子系统的帧更新并隔离 panic
//
// 单个子系统在某一帧内的失败不应拖垮整个合作式更新循环：
// panic 被捕获并记录，该子系统本帧被跳过，下一帧继续被调用。
func SafeUpdate(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[%s] Update panic recovered: %v", name, r)
		}
	}()
	fn()
}
