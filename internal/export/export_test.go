package export

// Exported for tests.
var (
	PandocBin       = &pandocBin
	CombineMarkdown = combineMarkdown
)
