// Package editor models the admin rich-content editor as a value type:
// an HTML fragment string plus explicit selection offsets, with every
// toolbar command expressed as a pure transformation of that string.
// Keeping the fragment as the single source of truth means the visual
// surface and the raw-source view can never drift apart.
package editor

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	ErrSourceMode       = errors.New("command unavailable in source mode")
	ErrSelectionInvalid = errors.New("selection out of range")
	ErrLinkURLMissing   = errors.New("link url is required")
	ErrImageSrcMissing  = errors.New("image source is required")
	ErrWidthInvalid     = errors.New("image width is not an allowed value")
	ErrNotAnImage       = errors.New("selection does not span an image element")
	ErrNothingToUndo    = errors.New("nothing to undo")
)

// Mode selects between the visual editing surface and the raw-source view.
type Mode int

const (
	ModeVisual Mode = iota
	ModeSource
)

// Block tags offered by the toolbar.
const (
	BlockHeading2  = "h2"
	BlockHeading3  = "h3"
	BlockParagraph = "p"
	BlockPre       = "pre"
)

var blockTags = map[string]bool{
	BlockHeading2:  true,
	BlockHeading3:  true,
	BlockParagraph: true,
	BlockPre:       true,
}

// ImageWidths is the fixed set of widths the image dialog offers.
var ImageWidths = []string{"100%", "75%", "50%", "25%", "auto", "200px", "300px", "400px", "600px"}

// Selection addresses a half-open byte range [Start, End) of the
// document's HTML string. A collapsed selection has Start == End.
type Selection struct {
	Start int
	End   int
}

// LinkData carries the fields of the link dialog.
type LinkData struct {
	URL    string
	Text   string
	Title  string
	NewTab bool
}

// ImageData carries the fields of the image dialog.
type ImageData struct {
	Src   string
	Alt   string
	Title string
	Width string
}

// Document is the editable HTML fragment plus the mode toggle and the
// undo history. The zero value is an empty visual-mode document.
type Document struct {
	html    string
	mode    Mode
	history []string
}

// NewDocument wraps an existing HTML fragment.
func NewDocument(html string) *Document {
	return &Document{html: html}
}

// HTML returns the fragment, the document's single source of truth.
func (d *Document) HTML() string {
	return d.html
}

// Mode reports whether the document is in visual or source mode.
func (d *Document) Mode() Mode {
	return d.mode
}

// ToggleSource flips between the visual surface and the raw-source
// view. The fragment itself is untouched, so toggling back and forth
// without editing leaves the HTML byte-identical.
func (d *Document) ToggleSource() {
	if d.mode == ModeVisual {
		d.mode = ModeSource
	} else {
		d.mode = ModeVisual
	}
}

// Sync force-overwrites the fragment from an external owner, but only
// when the values differ and the surface is not focused, so in-progress
// edits and cursor position are never clobbered.
func (d *Document) Sync(value string, focused bool) bool {
	if focused || d.html == value {
		return false
	}
	d.snapshot()
	d.html = value
	return true
}

// EditSource replaces the fragment with directly edited source text.
// Only available while the raw-source view is active.
func (d *Document) EditSource(value string) error {
	if d.mode != ModeSource {
		return errors.New("source editing requires source mode")
	}
	if d.html == value {
		return nil
	}
	d.snapshot()
	d.html = value
	return nil
}

// Undo restores the fragment as it was before the latest mutation.
func (d *Document) Undo() error {
	if d.mode == ModeSource {
		return ErrSourceMode
	}
	if len(d.history) == 0 {
		return ErrNothingToUndo
	}
	d.html = d.history[len(d.history)-1]
	d.history = d.history[:len(d.history)-1]
	return nil
}

// Bold toggles strong emphasis on the selected range.
func (d *Document) Bold(sel Selection) error {
	return d.toggleInline(sel, "strong")
}

// Italic toggles emphasis on the selected range.
func (d *Document) Italic(sel Selection) error {
	return d.toggleInline(sel, "em")
}

// FormatBlock wraps the selection in the given block tag (h2, h3, p or
// pre). A selection that exactly spans a block of another kind is
// re-tagged instead of nested.
func (d *Document) FormatBlock(sel Selection, tag string) error {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if !blockTags[tag] {
		return errors.New("unsupported block tag")
	}
	if err := d.editable(sel); err != nil {
		return err
	}

	segment := d.html[sel.Start:sel.End]
	if inner, ok := unwrapAnyTag(segment, blockTagNames()); ok {
		segment = inner
	}

	d.snapshot()
	d.html = d.html[:sel.Start] + "<" + tag + ">" + segment + "</" + tag + ">" + d.html[sel.End:]
	return nil
}

// InsertList wraps the selection in an unordered list with a single item.
func (d *Document) InsertList(sel Selection) error {
	if err := d.editable(sel); err != nil {
		return err
	}
	segment := d.html[sel.Start:sel.End]
	d.snapshot()
	d.html = d.html[:sel.Start] + "<ul><li>" + segment + "</li></ul>" + d.html[sel.End:]
	return nil
}

// InsertCodeBlock replaces the selection with a preformatted block
// carrying the starter placeholder, as the toolbar button does.
func (d *Document) InsertCodeBlock(sel Selection) error {
	if err := d.editable(sel); err != nil {
		return err
	}
	d.snapshot()
	block := "<pre><code>Inicia tu código aquí</code></pre>"
	d.html = d.html[:sel.Start] + block + d.html[sel.End:]
	return nil
}

// InsertLink replaces the selection with an anchor built from the link
// dialog. The visible text falls back to the URL itself when left empty.
func (d *Document) InsertLink(sel Selection, link LinkData) error {
	if err := d.editable(sel); err != nil {
		return err
	}
	url := strings.TrimSpace(link.URL)
	if url == "" {
		return ErrLinkURLMissing
	}

	text := strings.TrimSpace(link.Text)
	if text == "" {
		text = url
	}

	node := &html.Node{
		Type:     html.ElementNode,
		Data:     "a",
		DataAtom: atom.A,
		Attr:     []html.Attribute{{Key: "href", Val: url}},
	}
	if title := strings.TrimSpace(link.Title); title != "" {
		node.Attr = append(node.Attr, html.Attribute{Key: "title", Val: title})
	}
	if link.NewTab {
		node.Attr = append(node.Attr,
			html.Attribute{Key: "target", Val: "_blank"},
			html.Attribute{Key: "rel", Val: "noopener noreferrer"},
		)
	}
	node.AppendChild(&html.Node{Type: html.TextNode, Data: text})

	d.snapshot()
	d.html = d.html[:sel.Start] + renderNode(node) + d.html[sel.End:]
	return nil
}

// InsertImage places a new image element at the selection start. The
// selection's contents are kept, matching how the visual surface
// inserts the node and collapses the cursor behind it.
func (d *Document) InsertImage(sel Selection, img ImageData) error {
	if err := d.editable(sel); err != nil {
		return err
	}
	node, err := imageNode(img)
	if err != nil {
		return err
	}
	d.snapshot()
	d.html = d.html[:sel.Start] + renderNode(node) + d.html[sel.Start:]
	return nil
}

// UpdateImage mutates an existing image's attributes in place. The
// selection must span exactly the image tag being edited, which is how
// the click-to-edit flow addresses it.
func (d *Document) UpdateImage(sel Selection, img ImageData) error {
	if err := d.editable(sel); err != nil {
		return err
	}
	segment := d.html[sel.Start:sel.End]
	lowered := strings.ToLower(segment)
	if !strings.HasPrefix(lowered, "<img") || !strings.HasSuffix(lowered, ">") {
		return ErrNotAnImage
	}
	node, err := imageNode(img)
	if err != nil {
		return err
	}
	d.snapshot()
	d.html = d.html[:sel.Start] + renderNode(node) + d.html[sel.End:]
	return nil
}

func imageNode(img ImageData) (*html.Node, error) {
	src := strings.TrimSpace(img.Src)
	if src == "" {
		return nil, ErrImageSrcMissing
	}

	width := strings.TrimSpace(img.Width)
	if width != "" && !allowedWidth(width) {
		return nil, ErrWidthInvalid
	}

	node := &html.Node{
		Type:     html.ElementNode,
		Data:     "img",
		DataAtom: atom.Img,
		Attr:     []html.Attribute{{Key: "src", Val: src}},
	}
	if alt := strings.TrimSpace(img.Alt); alt != "" {
		node.Attr = append(node.Attr, html.Attribute{Key: "alt", Val: alt})
	}
	if title := strings.TrimSpace(img.Title); title != "" {
		node.Attr = append(node.Attr, html.Attribute{Key: "title", Val: title})
	}
	if width != "" && width != "auto" {
		node.Attr = append(node.Attr, html.Attribute{Key: "style", Val: "width: " + width})
	}
	return node, nil
}

func allowedWidth(width string) bool {
	for _, candidate := range ImageWidths {
		if width == candidate {
			return true
		}
	}
	return false
}

// editable validates the selection and rejects commands while the
// raw-source view is active.
func (d *Document) editable(sel Selection) error {
	if d.mode == ModeSource {
		return ErrSourceMode
	}
	if sel.Start < 0 || sel.End < sel.Start || sel.End > len(d.html) {
		return ErrSelectionInvalid
	}
	return nil
}

func (d *Document) snapshot() {
	d.history = append(d.history, d.html)
}

// toggleInline wraps the selection in tag, or unwraps it when the
// selection already spans exactly one such element.
func (d *Document) toggleInline(sel Selection, tag string) error {
	if err := d.editable(sel); err != nil {
		return err
	}

	segment := d.html[sel.Start:sel.End]
	d.snapshot()
	if inner, ok := unwrapTag(segment, tag); ok {
		d.html = d.html[:sel.Start] + inner + d.html[sel.End:]
		return nil
	}
	d.html = d.html[:sel.Start] + "<" + tag + ">" + segment + "</" + tag + ">" + d.html[sel.End:]
	return nil
}

func blockTagNames() []string {
	names := make([]string, 0, len(blockTags))
	for name := range blockTags {
		names = append(names, name)
	}
	return names
}

// unwrapTag strips one enclosing <tag>…</tag> pair when the segment is
// exactly that element.
func unwrapTag(segment, tag string) (string, bool) {
	open := "<" + tag + ">"
	close := "</" + tag + ">"
	lowered := strings.ToLower(segment)
	if strings.HasPrefix(lowered, open) && strings.HasSuffix(lowered, close) && len(segment) >= len(open)+len(close) {
		return segment[len(open) : len(segment)-len(close)], true
	}
	return segment, false
}

func unwrapAnyTag(segment string, tags []string) (string, bool) {
	for _, tag := range tags {
		if inner, ok := unwrapTag(segment, tag); ok {
			return inner, true
		}
	}
	return segment, false
}

func renderNode(node *html.Node) string {
	var b strings.Builder
	if err := html.Render(&b, node); err != nil {
		return ""
	}
	return b.String()
}
