package markdown

// Kind identifies the structural element a Node was built from.
type Kind int

const (
	KindText Kind = iota
	KindParagraph
	KindHeading
	KindStrong
	KindEmphasis
	KindStrikethrough
	KindBlockquote
	KindLineBreak
	KindHorizontalRule
	KindLink
	KindImage
	KindList
	KindListItem
	KindTable
	KindTableRow
	KindTableCell
	KindCheckbox
	KindCodeSpan
	KindCodeBlock
	KindHTML
)

var kindNames = [...]string{
	KindText:           "Text",
	KindParagraph:      "Paragraph",
	KindHeading:        "Heading",
	KindStrong:         "Strong",
	KindEmphasis:       "Emphasis",
	KindStrikethrough:  "Strikethrough",
	KindBlockquote:     "Blockquote",
	KindLineBreak:      "LineBreak",
	KindHorizontalRule: "HorizontalRule",
	KindLink:           "Link",
	KindImage:          "Image",
	KindList:           "List",
	KindListItem:       "ListItem",
	KindTable:          "Table",
	KindTableRow:       "TableRow",
	KindTableCell:      "TableCell",
	KindCheckbox:       "Checkbox",
	KindCodeSpan:       "CodeSpan",
	KindCodeBlock:      "CodeBlock",
	KindHTML:           "HTML",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Align is the column alignment of a table cell.
type Align int

const (
	AlignNone Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Node is a Markdown element whose children have already been rendered.
//
// Content holds the rendered children for container kinds and the literal
// text for leaf kinds (text, code span, code block, raw HTML). The remaining
// fields are only meaningful for the kinds noted next to them.
type Node struct {
	Kind    Kind
	Content string

	Level   int    // Heading
	Ordered bool   // List
	Href    string // Link, Image
	Title   string // Link, Image
	Lang    string // CodeBlock
	Head    string // Table: rendered header row; Content is the body rows
	Header  bool   // TableCell
	Align   Align  // TableCell
	Checked bool   // Checkbox
}
