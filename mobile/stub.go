//go:build !mobile

// stub.go - 桌面构建时的占位文件
//
// mobile.go 和 embed.go 只在 -tags mobile 时编译，且需要先把 data/ 复制到本目录；
// 普通构建（go build ./...、go test ./...）只看到这个文件。
package mobile

// Dummy 是一个空导出函数，确保包在非移动端构建时也能被引用
func Dummy() {}
