package deck

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/beevik/etree"
)

const (
	presentationPart = "ppt/presentation.xml"
	presentationRels = "ppt/_rels/presentation.xml.rels"
)

// Presentation is an in-memory PowerPoint document. Slides are ordered as in
// the slide list and addressable by index. All package parts are retained so
// export re-serializes the file wholesale; parts the engines never touch pass
// through byte-identical.
type Presentation struct {
	parts     map[string][]byte
	partOrder []string
	slides    []*Slide
}

// Open loads a presentation from a .pptx file.
func Open(filePath string) (*Presentation, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &OpenError{Path: filePath, Message: "cannot read file", Cause: err}
	}
	p, err := OpenReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if oe, ok := err.(*OpenError); ok {
			oe.Path = filePath
		}
		return nil, err
	}
	return p, nil
}

// OpenReader loads a presentation from an in-memory OOXML container.
func OpenReader(r io.ReaderAt, size int64) (*Presentation, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &OpenError{Message: "not a valid OOXML package", Cause: err}
	}

	p := &Presentation{parts: make(map[string][]byte)}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, &OpenError{Message: fmt.Sprintf("cannot open part %s", f.Name), Cause: err}
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, &OpenError{Message: fmt.Sprintf("cannot read part %s", f.Name), Cause: err}
		}
		name := strings.TrimPrefix(f.Name, "/")
		p.parts[name] = data
		p.partOrder = append(p.partOrder, name)
	}

	if _, ok := p.parts[presentationPart]; !ok {
		return nil, &OpenError{Message: "missing ppt/presentation.xml: not a PowerPoint file"}
	}

	if err := p.loadSlides(); err != nil {
		return nil, &OpenError{Message: "cannot parse slides", Cause: err}
	}
	return p, nil
}

// Slides returns the presentation's slides in slide-list order.
func (p *Presentation) Slides() []*Slide {
	return p.slides
}

// loadSlides resolves the ordered slide part names from the presentation part
// and its relationships, then parses each slide.
func (p *Presentation) loadSlides() error {
	rels, err := p.parseRels(presentationRels)
	if err != nil {
		return err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(p.parts[presentationPart]); err != nil {
		return &PartError{Part: presentationPart, Message: "malformed XML", Cause: err}
	}

	root := doc.Root()
	sldIDLst := child(root, "sldIdLst")
	if sldIDLst == nil {
		return nil // zero slides is a valid, empty presentation
	}

	for i, sldID := range children(sldIDLst, "sldId") {
		rID := relAttrValue(sldID, "id") // r:id, not the slide's numeric id
		target, ok := rels[rID]
		if !ok {
			return &PartError{Part: presentationPart, Message: fmt.Sprintf("slide %d references unknown relationship %q", i+1, rID)}
		}
		partName := resolveTarget("ppt", target)
		slideXML, ok := p.parts[partName]
		if !ok {
			return &PartError{Part: partName, Message: "slide part missing from package"}
		}

		slideRels, err := p.parseRels(relsPartFor(partName))
		if err != nil {
			return err
		}

		slide, err := parseSlide(p, i, partName, slideXML, slideRels)
		if err != nil {
			return err
		}
		p.slides = append(p.slides, slide)
	}
	return nil
}

// parseRels reads a relationships part into an Id -> Target map.
// A missing rels part is fine; it just means no relationships.
func (p *Presentation) parseRels(partName string) (map[string]string, error) {
	data, ok := p.parts[partName]
	if !ok {
		return map[string]string{}, nil
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &PartError{Part: partName, Message: "malformed relationships XML", Cause: err}
	}
	rels := make(map[string]string)
	for _, rel := range children(doc.Root(), "Relationship") {
		rels[rel.SelectAttrValue("Id", "")] = rel.SelectAttrValue("Target", "")
	}
	return rels, nil
}

// mediaData returns the bytes of the media part behind a slide relationship
// target such as "../media/image1.png".
func (p *Presentation) mediaData(slidePart, target string) ([]byte, string, error) {
	partName := resolveTarget(path.Dir(slidePart), target)
	data, ok := p.parts[partName]
	if !ok {
		return nil, partName, &PartError{Part: partName, Message: "media part missing from package"}
	}
	return data, partName, nil
}

// Write serializes the presentation into w. Mutated slides are re-rendered
// from their XML trees; every other part is copied through unchanged.
func (p *Presentation) Write(w io.Writer) error {
	for _, slide := range p.slides {
		out, err := slide.doc.WriteToBytes()
		if err != nil {
			return &PartError{Part: slide.partName, Message: "cannot serialize slide", Cause: err}
		}
		p.parts[slide.partName] = out
	}

	zw := zip.NewWriter(w)
	for _, name := range p.partOrder {
		fw, err := zw.Create(name)
		if err != nil {
			return &PartError{Part: name, Message: "cannot create zip entry", Cause: err}
		}
		if _, err := fw.Write(p.parts[name]); err != nil {
			return &PartError{Part: name, Message: "cannot write zip entry", Cause: err}
		}
	}
	return zw.Close()
}

// Save exports the presentation to filePath. The file is written to a
// temporary sibling first and renamed into place, so the destination is either
// the complete new document or untouched — never a partial write.
func (p *Presentation) Save(filePath string) error {
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(path.Dir(filePath), ".deck-*.pptx")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", filePath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Rename(tmpName, filePath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", filePath, err)
	}
	return nil
}

// relsPartFor returns the relationships part name for a given part,
// e.g. ppt/slides/slide1.xml -> ppt/slides/_rels/slide1.xml.rels.
func relsPartFor(partName string) string {
	return path.Join(path.Dir(partName), "_rels", path.Base(partName)+".rels")
}

// resolveTarget resolves a relationship target against its base directory.
func resolveTarget(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(baseDir, target))
}

// child returns the first child element with the given local tag, ignoring
// namespace prefixes. PPTX parts conventionally use the a:/p:/r: prefixes but
// matching local names keeps parsing robust to producers that differ.
func child(el *etree.Element, tag string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// children returns all child elements with the given local tag.
func children(el *etree.Element, tag string) []*etree.Element {
	if el == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// attrValue returns the value of the attribute with the given local key,
// ignoring namespace prefixes (r:id and id both match "id").
func attrValue(el *etree.Element, key string) string {
	if el == nil {
		return ""
	}
	for _, a := range el.Attr {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// relAttrValue returns the value of the namespaced attribute with the given
// local key, falling back to an unprefixed match. Slide-list entries carry
// both a numeric id and an r:id, so relationship lookups must prefer the
// prefixed attribute regardless of attribute order.
func relAttrValue(el *etree.Element, key string) string {
	if el == nil {
		return ""
	}
	for _, a := range el.Attr {
		if a.Key == key && a.Space != "" {
			return a.Value
		}
	}
	return attrValue(el, key)
}
