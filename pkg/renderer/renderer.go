package renderer

// Renderer 定义文档渲染接口，使用泛型约束文档类型。
type Renderer[T any] interface {
	Render(doc T) ([]byte, error)
}
