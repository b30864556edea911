package parser

// Result holds the metadata extracted from one archive page.
type Result struct {
	Description string
	Headings    []Heading
	Lines       int
}

// Heading is one entry in a page's outline.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	Line  int    `json:"line"`
}
