// inspect_clips 打印片段清单的节点绑定和分类结果
//
// 用法:
//
//	go run ./cmd/inspect_clips [-tracks] <清单文件路径>
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/decker502/bookviewer/internal/clip"
	"github.com/decker502/bookviewer/pkg/book"
)

func main() {
	showTracks := flag.Bool("tracks", false, "列出每个片段的所有轨道")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("用法: go run ./cmd/inspect_clips [-tracks] <清单文件路径>")
		os.Exit(1)
	}

	manifest, err := clip.ParseManifestFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("解析失败: %v", err)
	}

	report(os.Stdout, manifest, *showTracks)
}

// report 输出清单概览、每个片段的分类和节点、部件顺序以及未绑定的轨道
func report(w io.Writer, manifest *clip.Manifest, showTracks bool) {
	fmt.Fprintf(w, "模型: %s\n", manifest.Name)
	fmt.Fprintf(w, "节点数量: %d\n", len(manifest.Nodes))
	fmt.Fprintf(w, "片段数量: %d\n\n", len(manifest.Clips))

	catalog := book.Discover(manifest.Clips)

	for _, c := range manifest.Clips {
		cls, _ := catalog.Classification(c.Name)
		part := "-"
		if p, ok := catalog.PartOf(c.Name); ok {
			part = p.String()
		}
		fmt.Fprintf(w, "  %-24s %-12s %-10s %5.2fs  节点: %s\n",
			c.Name, cls.Class, part, c.Duration, strings.Join(c.TargetNodes(), ", "))
		if showTracks {
			for _, track := range c.Tracks {
				fmt.Fprintf(w, "      %s\n", track)
			}
		}
	}

	fmt.Fprintf(w, "\n部件顺序:\n")
	for i, p := range catalog.Parts() {
		names := make([]string, 0)
		for _, c := range catalog.ClipsFor(p) {
			names = append(names, c.Name)
		}
		fmt.Fprintf(w, "  %2d. %-10s %s\n", i+1, p, strings.Join(names, ", "))
	}

	if ancillary := catalog.Ancillary(); len(ancillary) > 0 {
		names := make([]string, 0, len(ancillary))
		for _, c := range ancillary {
			names = append(names, c.Name)
		}
		fmt.Fprintf(w, "\n随封面播放: %s\n", strings.Join(names, ", "))
	}

	unbound := manifest.UnboundTracks()
	if len(unbound) == 0 {
		return
	}
	fmt.Fprintf(w, "\n未绑定的轨道 (%d):\n", len(unbound))
	for _, u := range unbound {
		fmt.Fprintf(w, "  %s: %s (没有节点 %q)\n", u.Clip, u.Track, u.Node)
	}
}
