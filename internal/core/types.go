package core

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const (
	BotName    = "LoreBot"
	BotVersion = "0.1.0"
)

// Document is the ingestion input unit. It is never persisted as a whole,
// only its derived chunks are.
type Document struct {
	Content  string
	Title    string
	Filename string
	Tags     string
}

// ChunkMeta travels with every stored chunk.
type ChunkMeta struct {
	Title    string `json:"title"`
	Filename string `json:"filename"`
	Tags     string `json:"tags"`
}

// Chunk is a bounded substring of a document, the unit of embedding
// and retrieval. Tokens is informational.
type Chunk struct {
	Text   string
	Meta   ChunkMeta
	Tokens int
}

// SearchResults is one ranked list for one query, ordered by ascending
// distance. Similarity (1 - distance) is derived for logging only.
type SearchResults struct {
	Documents []string
	Metadatas []ChunkMeta
	Distances []float32
	IDs       []string
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Turn is one user/assistant exchange kept by conversation memory.
type Turn struct {
	Input  string
	Output string
}
