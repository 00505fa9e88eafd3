package book

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/decker502/bookviewer/internal/clip"
)

const (
	frontCoverNode = "front_cover"
	latchNode      = "latch"
	splineNode     = "spline"
)

var pageDigits = regexp.MustCompile(`\d+`)

// UnorderedPageIndex 无法解析出数字的书页排序键，排在所有书页之后
const UnorderedPageIndex = math.MaxInt

// ClipClass 片段分类
type ClipClass int

const (
	// Unclassified 无法识别的片段，状态机从不直接驱动
	Unclassified ClipClass = iota
	// ClassPage 书页片段
	ClassPage
	// ClassFrontCover 封面片段
	ClassFrontCover
	// ClassLatch 锁扣片段
	ClassLatch
	// ClassAncillary 附属片段（如与封面同步播放的书脊 spline 动画），不跟踪状态
	ClassAncillary
)

// String 返回分类名（用于日志）
func (c ClipClass) String() string {
	switch c {
	case ClassPage:
		return "Page"
	case ClassFrontCover:
		return "FrontCover"
	case ClassLatch:
		return "Latch"
	case ClassAncillary:
		return "Ancillary"
	default:
		return "Unclassified"
	}
}

// Classification 是 ClassifyClip 的结果
type Classification struct {
	Class ClipClass

	// PageIndex 书页排序键（仅 ClassPage），无法解析时为 UnorderedPageIndex
	PageIndex int

	// PageNode 用于解析索引的主书页节点名（仅 ClassPage）
	PageNode string
}

// Part 返回锁扣和封面分类对应的部件
// 书页部件取决于它在所有书页中的位置，由 Catalog.PartOf 给出；附属片段和未识别片段没有部件
func (c Classification) Part() (Part, bool) {
	switch c.Class {
	case ClassFrontCover:
		return FrontCover, true
	case ClassLatch:
		return Latch, true
	default:
		return Part{}, false
	}
}

// ClassifyClip 根据片段影响的节点名对片段分类
//
// 规则（按优先级）：
//  1. 任一节点名恰好为 "front_cover" → FrontCover
//  2. 任一节点名恰好为 "latch" → Latch
//  3. 任一节点名（小写）包含 "page" → Page，索引取自第一个这样的节点名中的数字
//  4. 片段名（小写）包含 "spline" 或任一节点名恰好为 "spline" → Ancillary
//  5. 其他 → Unclassified
//
// 纯函数，无副作用，不会失败。
func ClassifyClip(c *clip.Clip) Classification {
	if c == nil {
		return Classification{Class: Unclassified}
	}

	if c.Affects(frontCoverNode) {
		return Classification{Class: ClassFrontCover}
	}
	if c.Affects(latchNode) {
		return Classification{Class: ClassLatch}
	}
	if node := primaryPageNode(c); node != "" {
		return Classification{
			Class:     ClassPage,
			PageIndex: ExtractPageIndex(node),
			PageNode:  node,
		}
	}
	if strings.Contains(strings.ToLower(c.Name), splineNode) || c.Affects(splineNode) {
		return Classification{Class: ClassAncillary}
	}
	return Classification{Class: Unclassified}
}

// primaryPageNode 返回第一个名字包含 "page" 的目标节点
func primaryPageNode(c *clip.Clip) string {
	for _, track := range c.Tracks {
		node := clip.NodeName(track)
		if node != "" && strings.Contains(strings.ToLower(node), "page") {
			return node
		}
	}
	return ""
}

// ExtractPageIndex 解析节点名中的第一段数字，如 "page12" → 12
// 没有数字时返回 UnorderedPageIndex
func ExtractPageIndex(name string) int {
	digits := pageDigits.FindString(name)
	if digits == "" {
		return UnorderedPageIndex
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		// 超出 int 范围的数字串
		return math.MaxInt - 1
	}
	return n
}
