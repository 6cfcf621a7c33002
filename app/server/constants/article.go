package constants

const (
	// DefaultAuthor 创建或更新文章时未指定作者的默认署名
	DefaultAuthor = "Anonymous"
)
