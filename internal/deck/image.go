package deck

import (
	"bytes"
	"path"
	"strings"
)

// ImageFormat is the declared format of an embedded image payload.
type ImageFormat string

// Recognized image formats. WMF and EMF are legacy Windows metafile formats
// that cannot be decoded here; the alt-text coordinator falls back to a
// generic description for them.
const (
	FormatPNG     ImageFormat = "png"
	FormatJPEG    ImageFormat = "jpeg"
	FormatGIF     ImageFormat = "gif"
	FormatBMP     ImageFormat = "bmp"
	FormatTIFF    ImageFormat = "tiff"
	FormatWMF     ImageFormat = "wmf"
	FormatEMF     ImageFormat = "emf"
	FormatUnknown ImageFormat = "unknown"
)

// IsMetafile reports whether the format is one of the unsupported legacy
// Windows vector formats.
func (f ImageFormat) IsMetafile() bool {
	return f == FormatWMF || f == FormatEMF
}

// Magic byte prefixes for format sniffing.
var (
	magicPNG          = []byte{0x89, 'P', 'N', 'G'}
	magicJPEG         = []byte{0xFF, 0xD8, 0xFF}
	magicGIF          = []byte("GIF8")
	magicBMP          = []byte("BM")
	magicTIFFLE       = []byte{'I', 'I', 0x2A, 0x00}
	magicTIFFBE       = []byte{'M', 'M', 0x00, 0x2A}
	magicWMFPlaceable = []byte{0xD7, 0xCD, 0xC6, 0x9A}
	magicWMF          = []byte{0x01, 0x00, 0x09, 0x00}
	magicEMF          = []byte{0x01, 0x00, 0x00, 0x00}
)

// SniffFormat determines an image format from its leading bytes, falling back
// to the part name's extension when the header is unrecognized.
func SniffFormat(data []byte, partName string) ImageFormat {
	switch {
	case bytes.HasPrefix(data, magicPNG):
		return FormatPNG
	case bytes.HasPrefix(data, magicJPEG):
		return FormatJPEG
	case bytes.HasPrefix(data, magicGIF):
		return FormatGIF
	case bytes.HasPrefix(data, magicBMP):
		return FormatBMP
	case bytes.HasPrefix(data, magicTIFFLE), bytes.HasPrefix(data, magicTIFFBE):
		return FormatTIFF
	case bytes.HasPrefix(data, magicWMFPlaceable), bytes.HasPrefix(data, magicWMF):
		return FormatWMF
	case bytes.HasPrefix(data, magicEMF):
		return FormatEMF
	}

	switch strings.ToLower(strings.TrimPrefix(path.Ext(partName), ".")) {
	case "png":
		return FormatPNG
	case "jpg", "jpeg":
		return FormatJPEG
	case "gif":
		return FormatGIF
	case "bmp":
		return FormatBMP
	case "tif", "tiff":
		return FormatTIFF
	case "wmf":
		return FormatWMF
	case "emf":
		return FormatEMF
	}
	return FormatUnknown
}
