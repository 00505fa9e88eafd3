package book

import (
	"math"
	"testing"
)

// TestClassifyClip 测试片段分类规则及其优先级
func TestClassifyClip(t *testing.T) {
	tests := []struct {
		name      string
		tracks    []string
		clipName  string
		wantClass ClipClass
		wantIndex int
	}{
		{name: "封面", clipName: "CoverOpen", tracks: []string{"front_cover.quaternion"}, wantClass: ClassFrontCover},
		{name: "锁扣", clipName: "LatchOpen", tracks: []string{"latch.position"}, wantClass: ClassLatch},
		{name: "书页", clipName: "Turn", tracks: []string{"page7.quaternion"}, wantClass: ClassPage, wantIndex: 7},
		{name: "书页节点大小写不敏感", clipName: "Turn", tracks: []string{"Page12.quaternion"}, wantClass: ClassPage, wantIndex: 12},
		{name: "封面优先于书页", clipName: "Mixed", tracks: []string{"page1.quaternion", "front_cover.quaternion"}, wantClass: ClassFrontCover},
		{name: "锁扣优先于书页", clipName: "Mixed", tracks: []string{"page1.quaternion", "latch.quaternion"}, wantClass: ClassLatch},
		{name: "封面优先于锁扣", clipName: "Mixed", tracks: []string{"latch.quaternion", "front_cover.quaternion"}, wantClass: ClassFrontCover},
		{name: "书页优先于附属", clipName: "SplinePage", tracks: []string{"page2.quaternion"}, wantClass: ClassPage, wantIndex: 2},
		{name: "片段名含 spline", clipName: "BookSplineBend", tracks: []string{"spine.scale"}, wantClass: ClassAncillary},
		{name: "节点名为 spline", clipName: "Bend", tracks: []string{"spline.scale"}, wantClass: ClassAncillary},
		{name: "front_cover 必须完全匹配", clipName: "X", tracks: []string{"front_cover_hinge.quaternion"}, wantClass: Unclassified},
		{name: "无法识别", clipName: "Idle", tracks: []string{"camera.position"}, wantClass: Unclassified},
		{name: "没有数字的书页", clipName: "Turn", tracks: []string{"pageLast.quaternion"}, wantClass: ClassPage, wantIndex: UnorderedPageIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyClip(newClip(tt.clipName, 1, tt.tracks...))
			if got.Class != tt.wantClass {
				t.Fatalf("Class = %s, want %s", got.Class, tt.wantClass)
			}
			if tt.wantClass == ClassPage && got.PageIndex != tt.wantIndex {
				t.Errorf("PageIndex = %d, want %d", got.PageIndex, tt.wantIndex)
			}
		})
	}
}

// TestClassifyClip_Nil 测试 nil 片段
func TestClassifyClip_Nil(t *testing.T) {
	if got := ClassifyClip(nil); got.Class != Unclassified {
		t.Errorf("ClassifyClip(nil) = %s, want Unclassified", got.Class)
	}
}

// TestClassifyClip_PrimaryPageNode 测试索引取自第一个书页节点
func TestClassifyClip_PrimaryPageNode(t *testing.T) {
	got := ClassifyClip(newClip("Turn", 1, "page4.quaternion", "page9.position"))
	if got.PageNode != "page4" || got.PageIndex != 4 {
		t.Errorf("got node=%q index=%d, want page4/4", got.PageNode, got.PageIndex)
	}
}

// TestExtractPageIndex 测试数字解析
func TestExtractPageIndex(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"page1", 1},
		{"page010", 10},
		{"page_2_left", 2},
		{"page", UnorderedPageIndex},
		{"page99999999999999999999999", math.MaxInt - 1},
	}
	for _, tt := range tests {
		if got := ExtractPageIndex(tt.in); got != tt.want {
			t.Errorf("ExtractPageIndex(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// TestClassification_Part 测试分类到部件的映射
func TestClassification_Part(t *testing.T) {
	// 书页部件由目录按位置分配
	if _, ok := (Classification{Class: ClassPage, PageIndex: 3}).Part(); ok {
		t.Error("page classification alone should not name a part")
	}
	if p, ok := (Classification{Class: ClassLatch}).Part(); !ok || p != Latch {
		t.Errorf("latch part = %v,%v", p, ok)
	}
	if _, ok := (Classification{Class: ClassAncillary}).Part(); ok {
		t.Error("ancillary clip should have no part")
	}
	if _, ok := (Classification{Class: Unclassified}).Part(); ok {
		t.Error("unclassified clip should have no part")
	}
}
