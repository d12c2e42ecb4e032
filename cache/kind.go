package cache

// Kind is the category of cached dashboard content.
// It is a closed enum; adding a kind requires binding a policy and a
// producer for it, which the exhaustive switches below enforce.
type Kind uint8

const (
	KindPrices Kind = iota
	KindNews
	KindMeme
	KindInsight
)

// Kinds lists every content kind.
var Kinds = []Kind{KindPrices, KindNews, KindMeme, KindInsight}

// String returns the stable name used as the storage key component.
func (k Kind) String() string {
	switch k {
	case KindPrices:
		return "prices"
	case KindNews:
		return "news"
	case KindMeme:
		return "meme"
	case KindInsight:
		return "insight"
	default:
		return "unknown"
	}
}
