// Package clip 提供铰接书本模型预制动画片段的数据模型和清单解析器
//
// 片段是不可变、时长固定的动画，驱动一个或多个具名场景节点。
// 轨道路径的形式为 "<节点>.<属性>"，如 "front_cover.quaternion"；
// 第一个点之前的部分就是受影响的节点。
package clip

import "strings"

// Manifest 片段清单文件的根结构
// 列出模型场景图中的节点名和所有动画片段
type Manifest struct {
	// Name 模型名称，如 "book"
	Name string `yaml:"name"`

	// Nodes 场景图中存在的节点名
	// 用于报告找不到目标节点的轨道
	Nodes []string `yaml:"nodes"`

	// Clips 动画片段列表，保持制作时的顺序（即发现顺序）
	Clips []*Clip `yaml:"clips"`
}

// Clip 单个预制动画片段
type Clip struct {
	// Name 片段名，在清单内唯一，如 "FrontCoverOpen"
	Name string `yaml:"name"`

	// Duration 片段时长（秒，> 0）
	Duration float64 `yaml:"duration"`

	// Tracks 动画属性路径，如 "page3.quaternion"
	Tracks []string `yaml:"tracks"`
}

// UnboundTrack 描述一个找不到目标节点的轨道
type UnboundTrack struct {
	Clip  string
	Track string
	Node  string
}

// NodeName 返回轨道路径影响的节点（"page1.position" → "page1"）
// 没有属性后缀的轨道整体视为节点名
func NodeName(track string) string {
	if i := strings.IndexByte(track, '.'); i >= 0 {
		return track[:i]
	}
	return track
}

// TargetNodes 返回片段影响的节点名（去重，保持轨道顺序，跳过空节点名）
func (c *Clip) TargetNodes() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]bool, len(c.Tracks))
	nodes := make([]string, 0, len(c.Tracks))
	for _, track := range c.Tracks {
		node := NodeName(track)
		if node == "" || seen[node] {
			continue
		}
		seen[node] = true
		nodes = append(nodes, node)
	}
	return nodes
}

// Affects 判断片段是否有轨道指向给定节点
func (c *Clip) Affects(node string) bool {
	if c == nil {
		return false
	}
	for _, track := range c.Tracks {
		if NodeName(track) == node {
			return true
		}
	}
	return false
}

// Overlaps 判断片段是否影响集合中的任一节点
func (c *Clip) Overlaps(nodes map[string]bool) bool {
	if c == nil || len(nodes) == 0 {
		return false
	}
	for _, track := range c.Tracks {
		if nodes[NodeName(track)] {
			return true
		}
	}
	return false
}

// Clip 按名称查找片段，不存在时返回 nil
func (m *Manifest) Clip(name string) *Clip {
	for _, c := range m.Clips {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// UnboundTracks 返回所有目标节点不在 Nodes 列表中的轨道
// Nodes 为空时视为未提供场景图信息，不做检查
func (m *Manifest) UnboundTracks() []UnboundTrack {
	if len(m.Nodes) == 0 {
		return nil
	}
	known := make(map[string]bool, len(m.Nodes))
	for _, n := range m.Nodes {
		known[n] = true
	}

	var unbound []UnboundTrack
	for _, c := range m.Clips {
		for _, track := range c.Tracks {
			node := NodeName(track)
			if !known[node] {
				unbound = append(unbound, UnboundTrack{Clip: c.Name, Track: track, Node: node})
			}
		}
	}
	return unbound
}
