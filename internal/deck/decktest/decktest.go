// Package decktest builds minimal in-memory PPTX packages for tests.
package decktest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/farabi1038/powerpoint-asccessibility-project/internal/deck"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/types"
)

// RunSpec describes one text run.
type RunSpec struct {
	Text   string
	SizePt float64 // 0 leaves the size inherited
	Bold   bool
	Color  *types.RGB // nil leaves the color inherited
}

// TextSpec describes one text shape.
type TextSpec struct {
	Name  string
	Title bool
	Fill  *types.RGB
	Runs  []RunSpec
}

// PictureSpec describes one picture shape.
type PictureSpec struct {
	Name string
	Alt  string
	Data []byte
	Ext  string // media file extension, e.g. "png"
}

// SlideSpec describes one slide.
type SlideSpec struct {
	Texts    []TextSpec
	Pictures []PictureSpec
}

// Build assembles a PPTX package from the slide specs and opens it through
// the deck loader, so tests exercise the same parse path as production.
func Build(t *testing.T, slides ...SlideSpec) *deck.Presentation {
	t.Helper()
	data := BuildBytes(t, slides...)
	p, err := deck.OpenReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return p
}

// BuildBytes assembles a PPTX package and returns the raw zip bytes.
func BuildBytes(t *testing.T, slides ...SlideSpec) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	write := func(name, content string) {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	writeBytes := func(name string, content []byte) {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(content)
		require.NoError(t, err)
	}

	write("[Content_Types].xml", contentTypes)
	write("_rels/.rels", rootRels)
	write("ppt/presentation.xml", presentationXML(len(slides)))
	write("ppt/_rels/presentation.xml.rels", presentationRels(len(slides)))

	mediaIndex := 1
	for i, slide := range slides {
		n := i + 1
		var rels []string
		shapeID := 2

		var sb strings.Builder
		for _, text := range slide.Texts {
			sb.WriteString(spXML(shapeID, text))
			shapeID++
		}
		for _, pic := range slide.Pictures {
			rID := fmt.Sprintf("rId%d", len(rels)+1)
			ext := pic.Ext
			if ext == "" {
				ext = "png"
			}
			media := fmt.Sprintf("image%d.%s", mediaIndex, ext)
			mediaIndex++
			writeBytes("ppt/media/"+media, pic.Data)
			rels = append(rels, fmt.Sprintf(
				`<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/%s"/>`,
				rID, media))
			sb.WriteString(picXML(shapeID, pic, rID))
			shapeID++
		}

		write(fmt.Sprintf("ppt/slides/slide%d.xml", n), slideXML(sb.String()))
		write(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n),
			`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+"\n"+
				`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+
				strings.Join(rels, "")+`</Relationships>`)
	}

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// PNG encodes a solid-color image for picture payloads.
func PNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// WMF returns a payload carrying the placeable Windows metafile magic header.
func WMF() []byte {
	return []byte{0xD7, 0xCD, 0xC6, 0x9A, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
}

// EMF returns a payload carrying the enhanced metafile magic header.
func EMF() []byte {
	return []byte{0x01, 0x00, 0x00, 0x00, 0x6C, 0x00, 0x00, 0x00, 0x00, 0x00}
}

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Default Extension="png" ContentType="image/png"/>
<Default Extension="jpeg" ContentType="image/jpeg"/>
<Default Extension="wmf" ContentType="image/x-wmf"/>
<Default Extension="emf" ContentType="image/x-emf"/>
<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>
</Types>`

const rootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>
</Relationships>`

func presentationXML(slideCount int) string {
	var ids strings.Builder
	for i := 0; i < slideCount; i++ {
		ids.WriteString(fmt.Sprintf(`<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+1))
	}
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<p:sldIdLst>` + ids.String() + `</p:sldIdLst>
</p:presentation>`
}

func presentationRels(slideCount int) string {
	var rels strings.Builder
	for i := 0; i < slideCount; i++ {
		rels.WriteString(fmt.Sprintf(
			`<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`,
			i+1, i+1))
	}
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		rels.String() + `</Relationships>`
}

func slideXML(shapes string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<p:cSld><p:spTree>
<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>
<p:grpSpPr/>` + shapes + `</p:spTree></p:cSld>
</p:sld>`
}

func spXML(id int, spec TextSpec) string {
	name := spec.Name
	if name == "" {
		name = fmt.Sprintf("TextBox %d", id)
	}

	ph := ""
	if spec.Title {
		ph = `<p:ph type="title"/>`
	}

	fill := ""
	if spec.Fill != nil {
		fill = fmt.Sprintf(`<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, spec.Fill.Hex())
	}

	var runs strings.Builder
	for _, run := range spec.Runs {
		var props []string
		if run.SizePt > 0 {
			props = append(props, fmt.Sprintf(`sz="%d"`, int(run.SizePt*100)))
		}
		if run.Bold {
			props = append(props, `b="1"`)
		}
		rPr := ""
		if len(props) > 0 || run.Color != nil {
			inner := ""
			if run.Color != nil {
				inner = fmt.Sprintf(`<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, run.Color.Hex())
			}
			rPr = `<a:rPr ` + strings.Join(props, " ") + `>` + inner + `</a:rPr>`
		}
		runs.WriteString(`<a:r>` + rPr + `<a:t>` + xmlEscape(run.Text) + `</a:t></a:r>`)
	}

	return fmt.Sprintf(`<p:sp>
<p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr>%s</p:nvPr></p:nvSpPr>
<p:spPr>%s</p:spPr>
<p:txBody><a:bodyPr/><a:p>%s</a:p></p:txBody>
</p:sp>`, id, xmlEscape(name), ph, fill, runs.String())
}

func picXML(id int, spec PictureSpec, rID string) string {
	name := spec.Name
	if name == "" {
		name = fmt.Sprintf("Picture %d", id)
	}
	descr := ""
	if spec.Alt != "" {
		descr = fmt.Sprintf(` descr="%s"`, xmlEscape(spec.Alt))
	}
	return fmt.Sprintf(`<p:pic>
<p:nvPicPr><p:cNvPr id="%d" name="%s"%s/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>
<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>
<p:spPr/>
</p:pic>`, id, xmlEscape(name), descr, rID)
}

func xmlEscape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}
