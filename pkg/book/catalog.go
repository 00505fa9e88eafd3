package book

import (
	"sort"

	"github.com/decker502/bookviewer/internal/clip"
)

// Catalog 是从当前片段集合推导出的部件目录
//
// 每次查询都从片段列表重新计算（Discover 是廉价的纯函数），
// 因此重新加载模型后不会残留过期的分类或排序。
type Catalog struct {
	clips     []*clip.Clip
	classes   map[string]Classification
	owners    map[string]Part
	parts     map[Part][]*clip.Clip
	pages     []Part
	ancillary []*clip.Clip
}

// pageEntry 排序用的书页片段条目
type pageEntry struct {
	clip  *clip.Clip
	index int
}

// Discover 对片段分类并建立部件目录
//
// 书页按解析出的索引升序排列；索引相同的片段保持发现顺序（稳定排序）。
// 每个书页片段都是独立的部件，以排序后的位置标识：Page(0) 是第一张书页。
// 锁扣和封面可以由多个片段组成，这些片段作为一个部件一起播放。
func Discover(clips []*clip.Clip) *Catalog {
	cat := &Catalog{
		clips:   clips,
		classes: make(map[string]Classification, len(clips)),
		owners:  make(map[string]Part, len(clips)),
		parts:   make(map[Part][]*clip.Clip),
	}

	entries := make([]pageEntry, 0, len(clips))
	for _, c := range clips {
		if c == nil {
			continue
		}
		cls := ClassifyClip(c)
		cat.classes[c.Name] = cls

		switch cls.Class {
		case ClassPage:
			entries = append(entries, pageEntry{clip: c, index: cls.PageIndex})
		case ClassFrontCover, ClassLatch:
			part, _ := cls.Part()
			cat.parts[part] = append(cat.parts[part], c)
			cat.owners[c.Name] = part
		case ClassAncillary:
			cat.ancillary = append(cat.ancillary, c)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].index < entries[j].index
	})

	cat.pages = make([]Part, 0, len(entries))
	for i, e := range entries {
		part := Page(i)
		cat.pages = append(cat.pages, part)
		cat.parts[part] = []*clip.Clip{e.clip}
		cat.owners[e.clip.Name] = part
	}

	return cat
}

// OrderedPageClips 返回按索引升序排列的书页片段（相同索引保持发现顺序）
// 第 i 个片段就是 Page(i) 的片段
func OrderedPageClips(clips []*clip.Clip) []*clip.Clip {
	cat := Discover(clips)
	ordered := make([]*clip.Clip, 0, len(cat.pages))
	for _, p := range cat.pages {
		ordered = append(ordered, cat.parts[p]...)
	}
	return ordered
}

// Clips 返回目录的原始片段列表
func (c *Catalog) Clips() []*clip.Clip {
	return c.clips
}

// OrderedPages 返回按顺序排列的书页部件：Page(0), Page(1), ...
func (c *Catalog) OrderedPages() []Part {
	return c.pages
}

// ClipsFor 返回属于指定部件的片段
func (c *Catalog) ClipsFor(p Part) []*clip.Clip {
	return c.parts[p]
}

// Has 判断模型是否提供了该部件的片段
func (c *Catalog) Has(p Part) bool {
	return len(c.parts[p]) > 0
}

// Ancillary 返回附属片段（与封面同步播放，不跟踪状态）
func (c *Catalog) Ancillary() []*clip.Clip {
	return c.ancillary
}

// Classification 返回指定片段的分类
func (c *Catalog) Classification(clipName string) (Classification, bool) {
	cls, ok := c.classes[clipName]
	return cls, ok
}

// PartOf 返回片段所属的部件
func (c *Catalog) PartOf(clipName string) (Part, bool) {
	p, ok := c.owners[clipName]
	return p, ok
}

// Parts 返回所有已发现的部件：锁扣、封面（如存在）以及按序排列的书页
func (c *Catalog) Parts() []Part {
	parts := make([]Part, 0, len(c.pages)+2)
	if c.Has(Latch) {
		parts = append(parts, Latch)
	}
	if c.Has(FrontCover) {
		parts = append(parts, FrontCover)
	}
	return append(parts, c.pages...)
}

// pagesBefore 返回排在 p 之前的书页（升序）
func (c *Catalog) pagesBefore(p Part) []Part {
	var before []Part
	for _, page := range c.pages {
		if page.Index < p.Index {
			before = append(before, page)
		}
	}
	return before
}

// pagesAfter 返回排在 p 之后的书页（升序）
func (c *Catalog) pagesAfter(p Part) []Part {
	var after []Part
	for _, page := range c.pages {
		if page.Index > p.Index {
			after = append(after, page)
		}
	}
	return after
}
