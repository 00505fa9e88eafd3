package clip

import "testing"

// TestNodeName 测试轨道路径到节点名的解析
func TestNodeName(t *testing.T) {
	tests := []struct {
		track string
		want  string
	}{
		{"page1.quaternion", "page1"},
		{"front_cover.position", "front_cover"},
		{"latch", "latch"},
		{"spline.morphTargetInfluences[0]", "spline"},
		{".position", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NodeName(tt.track); got != tt.want {
			t.Errorf("NodeName(%q) = %q, want %q", tt.track, got, tt.want)
		}
	}
}

// TestClip_TargetNodes 测试去重且保持轨道顺序
func TestClip_TargetNodes(t *testing.T) {
	c := &Clip{
		Name:     "PageTurn",
		Duration: 1,
		Tracks:   []string{"page2.quaternion", "page2.position", "page2_shadow.scale", ".bogus"},
	}

	nodes := c.TargetNodes()
	if len(nodes) != 2 {
		t.Fatalf("Expected 2 target nodes, got %d (%v)", len(nodes), nodes)
	}
	if nodes[0] != "page2" || nodes[1] != "page2_shadow" {
		t.Errorf("Unexpected node order: %v", nodes)
	}

	var nilClip *Clip
	if nilClip.TargetNodes() != nil {
		t.Error("nil clip should have no target nodes")
	}
}

// TestClip_AffectsAndOverlaps 测试节点命中判断
func TestClip_AffectsAndOverlaps(t *testing.T) {
	c := &Clip{Name: "Cover", Duration: 1, Tracks: []string{"front_cover.quaternion"}}

	if !c.Affects("front_cover") {
		t.Error("Expected clip to affect front_cover")
	}
	if c.Affects("front") {
		t.Error("Affects must be an exact node match")
	}
	if !c.Overlaps(map[string]bool{"latch": true, "front_cover": true}) {
		t.Error("Expected overlap with front_cover")
	}
	if c.Overlaps(map[string]bool{"latch": true}) {
		t.Error("Did not expect overlap with latch")
	}
	if c.Overlaps(nil) {
		t.Error("Empty node set never overlaps")
	}
}

// TestManifest_UnboundTracks 测试未绑定轨道的诊断
func TestManifest_UnboundTracks(t *testing.T) {
	m := &Manifest{
		Nodes: []string{"latch", "front_cover"},
		Clips: []*Clip{
			{Name: "Latch", Duration: 1, Tracks: []string{"latch.quaternion"}},
			{Name: "Cover", Duration: 1, Tracks: []string{"front_cover.quaternion", "cover_hinge.position"}},
		},
	}

	unbound := m.UnboundTracks()
	if len(unbound) != 1 {
		t.Fatalf("Expected 1 unbound track, got %d", len(unbound))
	}
	if unbound[0].Clip != "Cover" || unbound[0].Node != "cover_hinge" {
		t.Errorf("Unexpected unbound track: %+v", unbound[0])
	}

	// 没有节点列表时不做检查
	m.Nodes = nil
	if got := m.UnboundTracks(); got != nil {
		t.Errorf("Expected no diagnostics without node list, got %v", got)
	}

	if m.Clip("Latch") == nil {
		t.Error("Expected to find clip by name")
	}
	if m.Clip("Missing") != nil {
		t.Error("Expected nil for missing clip")
	}
}
