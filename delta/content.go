package delta

import (
	"bytes"
	"encoding/json"
)

// Content 是 delta 在边界上的带标签联合：要么是序列化字符串形态
// （ Raw ），要么是结构化形态（ Doc ）。解码只发生在这一处，
// 之后的代码只和结构化的 Delta 打交道。
type Content struct {
	IsRaw bool   // 为真时取 Raw ，否则取 Doc
	Raw   string // 序列化的 JSON 字符串形态
	Doc   Delta  // 结构化形态
}

// Structured 用结构化 delta 构造 Content
func Structured(d Delta) Content {
	return Content{Doc: d}
}

// FromStore 用存储层取出的序列化文本构造 Content
func FromStore(raw string) Content {
	return Content{IsRaw: true, Raw: raw}
}

// Delta 归一化为结构化形态。字符串形态会被解析；
// 解析失败、缺失或没有任何操作时，替换为规范的空文档而不是报错。
func (c Content) Delta() Delta {
	if c.IsRaw {
		var d Delta
		if err := json.Unmarshal([]byte(c.Raw), &d); err != nil || len(d.Ops) == 0 {
			return Empty()
		}
		return d
	}

	if len(c.Doc.Ops) == 0 {
		return Empty()
	}

	return c.Doc
}

// Store 返回写入存储层的规范序列化文本
func (c Content) Store() string {
	b, err := json.Marshal(c.Delta())
	if err != nil {
		// Delta 只含可序列化的基础类型，正常情况下不会走到这里
		b, _ = json.Marshal(Empty())
	}

	return string(b)
}

// UnmarshalJSON 在线格式上同时接受三种形态：
// 结构化对象、包着序列化 JSON 的字符串、 null （视作空文档）。
func (c *Content) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*c = Structured(Empty())
		return nil
	}

	if trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		*c = FromStore(raw)
		return nil
	}

	var d Delta
	if err := json.Unmarshal(trimmed, &d); err != nil {
		// 无法识别的形态按空文档处理，加载永远不会因此失败
		*c = Structured(Empty())
		return nil
	}
	*c = Structured(d)

	return nil
}

// MarshalJSON 永远输出结构化对象，线上不再出现字符串形态
func (c Content) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Delta())
}
