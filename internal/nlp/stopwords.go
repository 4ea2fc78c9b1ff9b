package nlp

// Fixed stop-word sets keyed by language tag. English is the default;
// unknown tags fall back to it so normalization stays deterministic for
// any input.

var stopWordsEN = makeSet(
	"a", "an", "and", "are", "as", "at", "be", "been", "but", "by", "can",
	"could", "did", "do", "does", "for", "from", "had", "has", "have", "he",
	"her", "his", "how", "i", "if", "in", "into", "is", "it", "its", "me",
	"my", "no", "not", "of", "on", "or", "our", "she", "should", "so",
	"that", "the", "their", "them", "then", "there", "these", "they",
	"this", "to", "was", "we", "were", "what", "when", "where", "which",
	"who", "why", "will", "with", "would", "you", "your",
)

var stopWordsUZ = makeSet(
	"va", "bu", "bilan", "uchun", "ham", "lekin", "yoki", "agar", "nima",
	"qanday", "nega", "kim", "qaysi", "men", "sen", "u", "biz", "siz",
	"ular", "edi", "emas", "bor", "yo'q",
)

var stopWordsRU = makeSet(
	"и", "в", "на", "с", "по", "не", "что", "как", "это", "а", "но", "или",
	"если", "то", "же", "у", "к", "о", "из", "за", "для", "кто", "где",
	"когда", "почему", "какой", "я", "ты", "он", "она", "мы", "вы", "они",
)

func stopWords(language string) map[string]struct{} {
	switch language {
	case "uz":
		return stopWordsUZ
	case "ru":
		return stopWordsRU
	default:
		return stopWordsEN
	}
}

func makeSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
