package systems

import (
	"testing"

	"github.com/decker502/bookviewer/pkg/components"
	"github.com/decker502/bookviewer/pkg/ecs"
)

// TestToastSystem_Expire 测试提示到期后删除
func TestToastSystem_Expire(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewToastSystem(em)
	s.Show(components.NewWarningToast("close later pages first"))

	s.Update(1.0)
	em.RemoveMarkedEntities()
	if n := len(s.Active()); n != 1 {
		t.Fatalf("Active() = %d, want 1", n)
	}

	s.Update(2.0)
	em.RemoveMarkedEntities()
	if n := len(s.Active()); n != 0 {
		t.Errorf("Active() = %d after expiry, want 0", n)
	}
}
