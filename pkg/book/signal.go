package book

import "log"

// PlaybackID 唯一标识一次播放（同一片段的每次播放都有新的 ID）
type PlaybackID uint64

// Completion 完成事件：某次非循环播放到达了终点
type Completion struct {
	Playback  PlaybackID
	Clip      string
	Direction Direction
}

// CompletionHandler 完成事件处理函数
type CompletionHandler func(Completion)

// CompletionSignal 是唯一的异步完成通知通道
//
// 每个已完成的播放触发一次 Emit。订阅是一次性的，且精确绑定到某次播放：
// 触发前即被移除，处理函数内部可以安全地注册新的订阅（级联的下一步）。
// 被停止或被取代的播放通过 Drop 丢弃订阅，永远不会触发。
type CompletionSignal struct {
	subscribers map[PlaybackID]CompletionHandler
	emitted     uint64
}

// NewCompletionSignal 创建完成信号
func NewCompletionSignal() *CompletionSignal {
	return &CompletionSignal{
		subscribers: make(map[PlaybackID]CompletionHandler),
	}
}

// Once 为指定播放注册一次性处理函数；重复注册会覆盖之前的处理函数
func (s *CompletionSignal) Once(id PlaybackID, handler CompletionHandler) {
	s.subscribers[id] = handler
}

// Drop 丢弃指定播放的订阅
func (s *CompletionSignal) Drop(id PlaybackID) {
	delete(s.subscribers, id)
}

// Emit 投递完成事件；没有订阅者的事件被静默忽略
func (s *CompletionSignal) Emit(c Completion) {
	s.emitted++
	handler, ok := s.subscribers[c.Playback]
	if !ok {
		log.Printf("[CompletionSignal] 无订阅者: playback=%d clip=%s dir=%s", c.Playback, c.Clip, c.Direction)
		return
	}
	delete(s.subscribers, c.Playback)
	handler(c)
}

// Pending 返回尚未触发的订阅数量
func (s *CompletionSignal) Pending() int {
	return len(s.subscribers)
}

// Emitted 返回已投递的事件总数（调试用）
func (s *CompletionSignal) Emitted() uint64 {
	return s.emitted
}

// Reset 丢弃所有订阅
func (s *CompletionSignal) Reset() {
	s.subscribers = make(map[PlaybackID]CompletionHandler)
}
