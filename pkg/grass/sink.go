package grass

// MeshSink receives the flat buffers after every stroke. The buffers are
// owned by the painter and only valid for the duration of the call;
// implementations must copy what they keep.
type MeshSink interface {
	ReplaceBuffers(b *Buffers)
}

// MeshSinkFunc adapts a function to MeshSink.
type MeshSinkFunc func(b *Buffers)

// ReplaceBuffers calls f(b).
func (f MeshSinkFunc) ReplaceBuffers(b *Buffers) {
	f(b)
}

type nopSink struct{}

func (nopSink) ReplaceBuffers(*Buffers) {}
