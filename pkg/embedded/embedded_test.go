package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func testFS() (fstest.MapFS, fstest.MapFS) {
	assets := fstest.MapFS{
		"assets/config/resources.yaml": {Data: []byte("version: \"1.0\"\n")},
		"assets/images/snowflake.png":  {Data: []byte{0x89, 'P', 'N', 'G'}},
	}
	data := fstest.MapFS{
		"data/backdrop.yaml": {Data: []byte("initialEffect: snow\n")},
	}
	return assets, data
}

// reset 恢复未初始化状态，避免影响其他测试
func reset() {
	assetsFS, dataFS, initialized = nil, nil, false
}

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

func TestNotInitialized(t *testing.T) {
	reset()

	if _, err := Open("assets/test.png"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Open() error = %v, want ErrNotInitialized", err)
	}
	if _, err := ReadFile("data/test.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile() error = %v, want ErrNotInitialized", err)
	}
	if Exists("assets/test.png") {
		t.Error("Exists() should be false before Init()")
	}
}

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
		{"assets 前缀", "assets/config/resources.yaml", "version: \"1.0\"\n", false},
		{"data 前缀", "data/backdrop.yaml", "initialEffect: snow\n", false},
		{"./ 前缀", "./data/backdrop.yaml", "initialEffect: snow\n", false},
		{"未知前缀", "config/backdrop.yaml", "", true},
		{"文件不存在", "data/missing.yaml", "", true},
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

func TestOpenAndExists(t *testing.T) {
	reset()
	defer reset()
	Init(testFS())

	f, err := Open("assets/images/snowflake.png")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	info, err := f.Stat()
	f.Close()
	if err != nil || info.Size() != 4 {
		t.Errorf("Stat() = %v, %v", info, err)
	}

	if !Exists("assets/images/snowflake.png") {
		t.Error("Exists() should find the snowflake")
	}
	if Exists("assets/images/bubble.png") {
		t.Error("Exists() should not find a missing file")
	}
	// data 路径不会落到 assets 文件系统
	if Exists("data/config/resources.yaml") {
		t.Error("data/ paths must resolve in the data FS")
	}
}
