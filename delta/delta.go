// Package delta 实现富文本文档的 delta 表示：一组有序的
// insert / retain / delete 操作，可以附带格式属性。
// delta 是内容编辑的权威表示， HTML 只是由它派生的展示格式。
package delta

import (
	"fmt"
	"strings"
)

// Op 是一次编辑操作， Insert / Retain / Delete 三者只会出现一个
type Op struct {
	Insert     any            `json:"insert,omitempty"`     // 插入内容，通常是字符串，也可以是内嵌对象（例如图片）
	Retain     *int           `json:"retain,omitempty"`     // 保留长度
	Delete     *int           `json:"delete,omitempty"`     // 删除长度
	Attributes map[string]any `json:"attributes,omitempty"` // 格式属性（加粗、标题等）
}

// Delta 是有序的操作序列
type Delta struct {
	Ops []Op `json:"ops"`
}

// Empty 返回规范的空文档：只包含一个换行插入
func Empty() Delta {
	return Delta{Ops: []Op{{Insert: "\n"}}}
}

// IsBlank 判断文档是否为空：只有一个操作，且内容恰好是一个换行
func (d Delta) IsBlank() bool {
	if len(d.Ops) != 1 {
		return false
	}

	s, ok := d.Ops[0].Insert.(string)
	return ok && s == "\n"
}

// FromText 用纯文本构造 delta ，保证以换行收尾
func FromText(text string) Delta {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	return Delta{Ops: []Op{{Insert: text}}}
}

// Text 拼接所有字符串插入，内嵌对象用占位符替代
func (d Delta) Text() string {
	var sb strings.Builder
	for _, op := range d.Ops {
		if op.Insert == nil {
			continue
		}
		if s, ok := op.Insert.(string); ok {
			sb.WriteString(s)
		} else {
			sb.WriteString("￼") // 对象替换符
		}
	}

	return sb.String()
}

// HTML 产生最简单的段落级 HTML ，每一行对应一个 <p> 。
// 行内格式交给外部编辑引擎处理，这里只负责可读的派生展示。
func (d Delta) HTML() string {
	text := strings.TrimSuffix(d.Text(), "\n")
	if text == "" {
		return "<p><br></p>"
	}

	var sb strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			sb.WriteString("<p><br></p>")
		} else {
			sb.WriteString(fmt.Sprintf("<p>%s</p>", escapeHTML(line)))
		}
	}

	return sb.String()
}

func escapeHTML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
