package memory

// Kind is the closed set of conversation-memory strategies. The variant
// is fixed at Manager construction; there is no runtime switching.
type Kind int

const (
	KindDisabled Kind = iota
	KindBuffer
	KindSlidingWindow
	KindSummary
)

const (
	nameBuffer  = "simple_buffer"
	nameSliding = "summarization_sliding_window"
	nameSummary = "summary"
	nameNone    = "none"
)

// ParseKind maps a configured strategy name to its Kind. Unknown names
// map to KindDisabled.
func ParseKind(name string) Kind {
	switch name {
	case nameBuffer:
		return KindBuffer
	case nameSliding:
		return KindSlidingWindow
	case nameSummary:
		return KindSummary
	default:
		return KindDisabled
	}
}

func (k Kind) String() string {
	switch k {
	case KindBuffer:
		return nameBuffer
	case KindSlidingWindow:
		return nameSliding
	case KindSummary:
		return nameSummary
	default:
		return nameNone
	}
}
