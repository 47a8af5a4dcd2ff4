package deck

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/farabi1038/powerpoint-asccessibility-project/internal/types"
)

// ShapeKind tags the variants of Shape so traversals can dispatch exhaustively.
type ShapeKind int

// Shape kinds
const (
	KindText ShapeKind = iota
	KindPicture
	KindOther
)

// Shape is the tagged variant over the shapes a slide can hold. Concrete types
// are *TextShape, *PictureShape, and *OtherShape.
type Shape interface {
	// ID is stable across analysis passes for the same document:
	// "slide<n>/<drawing id>".
	ID() string
	Name() string
	Kind() ShapeKind
}

// Slide is an ordered sequence of shapes. It owns the parsed XML tree of its
// part; shape mutators edit that tree in place.
type Slide struct {
	index    int
	partName string
	doc      *etree.Document
	shapes   []Shape
	rels     map[string]string
}

// Index returns the zero-based slide position.
func (s *Slide) Index() int { return s.index }

// Shapes returns the slide's shapes in document order.
func (s *Slide) Shapes() []Shape { return s.shapes }

// Title returns the text of the slide's title placeholder, if present.
func (s *Slide) Title() (string, bool) {
	for _, shape := range s.shapes {
		ts, ok := shape.(*TextShape)
		if !ok {
			continue
		}
		if ts.isTitle {
			return ts.Text(), true
		}
	}
	return "", false
}

// shapeBase carries the identity fields shared by all shape variants.
type shapeBase struct {
	id    string
	name  string
	cNvPr *etree.Element
}

func (b *shapeBase) ID() string   { return b.id }
func (b *shapeBase) Name() string { return b.name }

// TextShape owns the ordered runs of a text body.
type TextShape struct {
	shapeBase
	sp      *etree.Element
	runs    []*Run
	isTitle bool
}

// Kind returns KindText.
func (t *TextShape) Kind() ShapeKind { return KindText }

// Runs returns the shape's runs in document order.
func (t *TextShape) Runs() []*Run { return t.runs }

// Text returns the concatenated run text, with paragraphs joined by newlines.
func (t *TextShape) Text() string {
	var sb strings.Builder
	txBody := t.txBody()
	for i, para := range children(txBody, "p") {
		if i > 0 {
			sb.WriteString("\n")
		}
		for _, r := range children(para, "r") {
			if tEl := child(r, "t"); tEl != nil {
				sb.WriteString(tEl.Text())
			}
		}
	}
	return sb.String()
}

// SetText replaces the shape's text with a single paragraph holding newText,
// keeping the first run's character properties so the replacement inherits the
// original formatting. Remaining runs and paragraphs are removed.
func (t *TextShape) SetText(newText string) {
	txBody := t.txBody()
	if txBody == nil {
		return
	}

	paras := children(txBody, "p")
	if len(paras) == 0 {
		return
	}

	first := paras[0]
	runs := children(first, "r")
	if len(runs) == 0 {
		r := first.CreateElement("a:r")
		r.CreateElement("a:t").SetText(newText)
	} else {
		keep := runs[0]
		tEl := child(keep, "t")
		if tEl == nil {
			tEl = keep.CreateElement("a:t")
		}
		tEl.SetText(newText)
		for _, extra := range runs[1:] {
			first.RemoveChild(extra)
		}
	}
	for _, extra := range paras[1:] {
		txBody.RemoveChild(extra)
	}

	t.runs = parseRuns(txBody)
}

// Fill returns the shape's explicit solid fill color, if set. Theme-indexed
// fills (schemeClr) have no literal RGB value and report false.
func (t *TextShape) Fill() (types.RGB, bool) {
	spPr := child(t.sp, "spPr")
	return solidFillColor(spPr)
}

// SetFill sets the shape's solid fill color.
func (t *TextShape) SetFill(c types.RGB) {
	spPr := child(t.sp, "spPr")
	if spPr == nil {
		spPr = t.sp.CreateElement("p:spPr")
	}
	setSolidFill(spPr, c)
}

func (t *TextShape) txBody() *etree.Element {
	return child(t.sp, "txBody")
}

// Run is a text fragment with uniform character formatting.
type Run struct {
	r *etree.Element
}

// Text returns the run's text content.
func (r *Run) Text() string {
	if tEl := child(r.r, "t"); tEl != nil {
		return tEl.Text()
	}
	return ""
}

// SizeSet reports whether the run carries an explicit size rather than
// inheriting from the layout or master.
func (r *Run) SizeSet() bool {
	rPr := child(r.r, "rPr")
	return rPr != nil && rPr.SelectAttr("sz") != nil
}

// SizePt returns the run's explicit size in points, or 0 when inherited.
// DrawingML stores sizes in hundredths of a point.
func (r *Run) SizePt() float64 {
	rPr := child(r.r, "rPr")
	if rPr == nil {
		return 0
	}
	sz := rPr.SelectAttrValue("sz", "")
	if sz == "" {
		return 0
	}
	hundredths, err := strconv.Atoi(sz)
	if err != nil {
		return 0
	}
	return float64(hundredths) / 100.0
}

// SetSizePt sets the run's explicit size in points.
func (r *Run) SetSizePt(pt float64) {
	rPr := r.ensureRPr()
	rPr.CreateAttr("sz", strconv.Itoa(int(pt*100+0.5)))
}

// Bold reports whether the run is bold.
func (r *Run) Bold() bool {
	rPr := child(r.r, "rPr")
	if rPr == nil {
		return false
	}
	b := rPr.SelectAttrValue("b", "0")
	return b == "1" || b == "true"
}

// Color returns the run's explicit font color, if set.
func (r *Run) Color() (types.RGB, bool) {
	return solidFillColor(child(r.r, "rPr"))
}

// SetColor sets the run's font color.
func (r *Run) SetColor(c types.RGB) {
	setSolidFill(r.ensureRPr(), c)
}

// ensureRPr returns the run's property element, creating it as the first
// child when absent (rPr must precede the text element).
func (r *Run) ensureRPr() *etree.Element {
	if rPr := child(r.r, "rPr"); rPr != nil {
		return rPr
	}
	rPr := etree.NewElement("a:rPr")
	r.r.InsertChildAt(0, rPr)
	return rPr
}

// PictureShape owns an image payload and a mutable alt-text string.
type PictureShape struct {
	shapeBase
	format    ImageFormat
	data      []byte
	mediaPart string
}

// Kind returns KindPicture.
func (p *PictureShape) Kind() ShapeKind { return KindPicture }

// AltText returns the picture's description attribute.
func (p *PictureShape) AltText() string {
	return p.cNvPr.SelectAttrValue("descr", "")
}

// SetAltText writes the picture's description attribute.
func (p *PictureShape) SetAltText(text string) {
	p.cNvPr.CreateAttr("descr", text)
}

// Image returns the declared format and raw bytes of the embedded image.
func (p *PictureShape) Image() (ImageFormat, []byte) {
	return p.format, p.data
}

// OtherShape covers tables, charts, group shapes, and anything else the
// engines do not inspect.
type OtherShape struct {
	shapeBase
	kind string
}

// Kind returns KindOther.
func (o *OtherShape) Kind() ShapeKind { return KindOther }

// parseSlide builds a Slide from its part XML and relationships.
func parseSlide(p *Presentation, index int, partName string, data []byte, rels map[string]string) (*Slide, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &PartError{Part: partName, Message: "malformed slide XML", Cause: err}
	}

	slide := &Slide{index: index, partName: partName, doc: doc, rels: rels}

	cSld := child(doc.Root(), "cSld")
	spTree := child(cSld, "spTree")
	if spTree == nil {
		return slide, nil
	}

	for _, el := range spTree.ChildElements() {
		switch el.Tag {
		case "sp":
			slide.shapes = append(slide.shapes, parseSp(index, el))
		case "pic":
			pic, err := parsePic(p, index, partName, el, rels)
			if err != nil {
				return nil, err
			}
			slide.shapes = append(slide.shapes, pic)
		case "graphicFrame", "grpSp", "cxnSp":
			base, ok := parseBase(index, el, "nv"+strings.ToUpper(el.Tag[:1])+el.Tag[1:]+"Pr")
			if !ok {
				base = shapeBase{id: fmt.Sprintf("slide%d/%s", index+1, el.Tag)}
			}
			slide.shapes = append(slide.shapes, &OtherShape{shapeBase: base, kind: el.Tag})
		}
	}
	return slide, nil
}

// parseBase extracts the drawing identity (cNvPr) from a shape's non-visual
// properties container.
func parseBase(slideIndex int, el *etree.Element, nvTag string) (shapeBase, bool) {
	nv := child(el, nvTag)
	cNvPr := child(nv, "cNvPr")
	if cNvPr == nil {
		return shapeBase{}, false
	}
	return shapeBase{
		id:    fmt.Sprintf("slide%d/%s", slideIndex+1, cNvPr.SelectAttrValue("id", "0")),
		name:  cNvPr.SelectAttrValue("name", ""),
		cNvPr: cNvPr,
	}, true
}

func parseSp(slideIndex int, sp *etree.Element) Shape {
	base, _ := parseBase(slideIndex, sp, "nvSpPr")

	txBody := child(sp, "txBody")
	if txBody == nil {
		return &OtherShape{shapeBase: base, kind: "sp"}
	}

	ts := &TextShape{shapeBase: base, sp: sp, runs: parseRuns(txBody)}

	nv := child(sp, "nvSpPr")
	nvPr := child(nv, "nvPr")
	if ph := child(nvPr, "ph"); ph != nil {
		phType := ph.SelectAttrValue("type", "")
		ts.isTitle = phType == "title" || phType == "ctrTitle"
	}
	return ts
}

func parseRuns(txBody *etree.Element) []*Run {
	var runs []*Run
	for _, para := range children(txBody, "p") {
		for _, r := range children(para, "r") {
			runs = append(runs, &Run{r: r})
		}
	}
	return runs
}

func parsePic(p *Presentation, slideIndex int, slidePart string, pic *etree.Element, rels map[string]string) (*PictureShape, error) {
	base, ok := parseBase(slideIndex, pic, "nvPicPr")
	if !ok {
		return nil, &PartError{Part: slidePart, Message: "picture without non-visual properties"}
	}

	ps := &PictureShape{shapeBase: base, format: FormatUnknown}

	blipFill := child(pic, "blipFill")
	blip := child(blipFill, "blip")
	if blip == nil {
		return ps, nil // picture without payload; analyzer treats as unsupported
	}

	embed := relAttrValue(blip, "embed")
	target, found := rels[embed]
	if !found || target == "" {
		return ps, nil
	}

	data, mediaPart, err := p.mediaData(slidePart, target)
	if err != nil {
		return nil, err
	}
	ps.data = data
	ps.mediaPart = mediaPart
	ps.format = SniffFormat(data, mediaPart)
	return ps, nil
}

// solidFillColor reads an explicit srgbClr solid fill under a property element.
func solidFillColor(pr *etree.Element) (types.RGB, bool) {
	fill := child(pr, "solidFill")
	srgb := child(fill, "srgbClr")
	if srgb == nil {
		return types.RGB{}, false
	}
	c, err := types.ParseHex(srgb.SelectAttrValue("val", ""))
	if err != nil {
		return types.RGB{}, false
	}
	return c, true
}

// setSolidFill writes an srgbClr solid fill under a property element,
// replacing any existing solid fill color.
func setSolidFill(pr *etree.Element, c types.RGB) {
	fill := child(pr, "solidFill")
	if fill == nil {
		fill = pr.CreateElement("a:solidFill")
	}
	srgb := child(fill, "srgbClr")
	if srgb == nil {
		// Theme color references are replaced by the literal value.
		for _, existing := range fill.ChildElements() {
			fill.RemoveChild(existing)
		}
		srgb = fill.CreateElement("a:srgbClr")
	}
	srgb.CreateAttr("val", c.Hex())
}
