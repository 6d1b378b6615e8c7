package codec

// LineEncoder encodes any type T into lines of text by converting T to a string.
type LineEncoder[T any] struct{}

func NewLineEncoder[T any]() *LineEncoder[T] {
	return &LineEncoder[T]{}
}
