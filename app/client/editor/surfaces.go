package editor

import (
	"sync"

	"quill-blog-engine/delta"
)

// Widget 富文本控件。编辑器本体是外部协作者（浏览器里是 Quill ，
// 终端里是一个内存实现），控制器只通过这组方法和它打交道。
type Widget interface {
	// SetContents 整体替换控件缓冲区
	SetContents(d delta.Delta)
	// Contents 读取当前缓冲区的结构化内容
	Contents() delta.Delta
	// HTML 当前缓冲区渲染出的标记
	HTML() string
	// Enable 加载期间关闭编辑，就绪后打开
	Enable(enabled bool)
}

// TextSurface 标题 / 副标题这类直接操纵的文本面。
// 控制器只在面不持有焦点时写入显示文本，避免盖掉用户正在敲的字。
type TextSurface interface {
	Text() string
	SetText(text string)
	Focused() bool
}

// MemoryWidget Widget 的内存实现，终端客户端和测试用
type MemoryWidget struct {
	mu      sync.Mutex
	doc     delta.Delta
	enabled bool
}

func NewMemoryWidget() *MemoryWidget {
	return &MemoryWidget{doc: delta.Empty()}
}

func (w *MemoryWidget) SetContents(d delta.Delta) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.doc = d
}

func (w *MemoryWidget) Contents() delta.Delta {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.doc
}

func (w *MemoryWidget) HTML() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.doc.IsBlank() {
		return ""
	}

	return w.doc.HTML()
}

func (w *MemoryWidget) Enable(enabled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.enabled = enabled
}

// Enabled 当前是否可编辑
func (w *MemoryWidget) Enabled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.enabled
}

// MemorySurface TextSurface 的内存实现
type MemorySurface struct {
	mu      sync.Mutex
	text    string
	focused bool
}

func (s *MemorySurface) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.text
}

func (s *MemorySurface) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.text = text
}

func (s *MemorySurface) Focused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.focused
}

// SetFocused 模拟获得 / 失去焦点
func (s *MemorySurface) SetFocused(focused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.focused = focused
}

// Type 模拟用户输入：直接改面上的文本（焦点状态不变）
func (s *MemorySurface) Type(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.text = text
}
