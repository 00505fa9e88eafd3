package embedded

import (
	"testing"
	"testing/fstest"
)

// testFS 测试用的内存文件系统
func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/book.yaml":          {Data: []byte("name: book\n")},
		"data/viewer_config.yaml": {Data: []byte("policy: {}\n")},
	}
}

// reset 还原包级状态，避免影响其他测试
func reset() {
	dataFS = nil
	initialized = false
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	reset()
	defer reset()

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}
	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
}

// TestNotInitialized 测试未初始化时的所有入口都返回错误
func TestNotInitialized(t *testing.T) {
	reset()

	if _, err := Open(DefaultManifestPath); err == nil {
		t.Error("Expected error when calling Open() before Init()")
	}
	if _, err := ReadFile(DefaultManifestPath); err == nil {
		t.Error("Expected error when calling ReadFile() before Init()")
	} else if err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error message: %v", err)
	}
	if _, err := FS(); err == nil {
		t.Error("Expected error when calling FS() before Init()")
	}
	if Exists(DefaultManifestPath) {
		t.Error("Exists() should be false before Init()")
	}
}

// TestReadFile 测试读取与路径标准化
func TestReadFile(t *testing.T) {
	reset()
	defer reset()
	Init(testFS())

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"plain", "data/book.yaml", "name: book\n", false},
		{"dot prefix", "./data/book.yaml", "name: book\n", false},
		{"missing", "data/none.yaml", "", true},
		{"bad prefix", "assets/book.yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

// TestExistsAndGlob 测试存在性检查和通配符匹配
func TestExistsAndGlob(t *testing.T) {
	reset()
	defer reset()
	Init(testFS())

	if !Exists(DefaultConfigPath) {
		t.Errorf("Exists(%q) = false", DefaultConfigPath)
	}
	if Exists("data/missing.yaml") {
		t.Error("Exists(missing) = true")
	}

	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob() error: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Glob() = %v, want 2 matches", matches)
	}
}
