package book

import (
	"log"

	"github.com/decker502/bookviewer/internal/clip"
)

// ConflictResolver 停止与新播放争用节点的进行中播放
//
// 调用 Resolve 后，除了显式排除的片段，不再有任何播放作用于给定节点。
// 解决器只观察和停止播放，从不发起新的播放。
type ConflictResolver struct {
	driver *PlaybackDriver
}

// NewConflictResolver 创建冲突解决器
func NewConflictResolver(driver *PlaybackDriver) *ConflictResolver {
	return &ConflictResolver{driver: driver}
}

// Resolve 停止所有影响 nodes 中任一节点的进行中播放（exclude 中的片段除外）
// 返回被停止的播放
func (r *ConflictResolver) Resolve(nodes map[string]bool, exclude ...string) []*InFlightPlayback {
	if len(nodes) == 0 {
		return nil
	}

	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	var halted []*InFlightPlayback
	for _, pb := range r.driver.Active() {
		if skip[pb.Clip.Name] || !pb.Clip.Overlaps(nodes) {
			continue
		}
		if stopped, ok := r.driver.Halt(pb.Clip.Name); ok {
			log.Printf("[ConflictResolver] 停止冲突播放: clip=%s playback=%d dir=%s",
				stopped.Clip.Name, stopped.ID, stopped.Direction)
			halted = append(halted, stopped)
		}
	}
	return halted
}

// NodesOf 返回一组片段影响的所有节点
func NodesOf(clips ...*clip.Clip) map[string]bool {
	nodes := make(map[string]bool)
	for _, c := range clips {
		for _, n := range c.TargetNodes() {
			nodes[n] = true
		}
	}
	return nodes
}
