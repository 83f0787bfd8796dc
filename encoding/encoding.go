// Package encoding detects the character set of a book and decodes it to
// UTF-8.
package encoding

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnsupported is returned when decoding from an encoding without a codec.
var ErrUnsupported = errors.New("unsupported encoding")

// Encoding represents a character set a book can be read from
type Encoding struct {
	Name      string            // Display name
	ID        string            // Internal identifier
	Decoder   encoding.Encoding // x/text codec (nil for UTF-8)
	Aliases   []string          // Alternative names, including chardet's
	Supported bool
	BOM       []byte // Byte order mark stripped before decoding
}

// DetectionResult holds the result of encoding detection
type DetectionResult struct {
	Encoding   *Encoding
	Confidence int  // 0-100
	HasBOM     bool // Whether a BOM was detected
}

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// SupportedEncodings is the list of encodings books may use
var SupportedEncodings = []*Encoding{
	{Name: "UTF-8", ID: "utf-8", Aliases: []string{"UTF-8", "utf8", "US-ASCII", "ascii"}, Supported: true},
	{Name: "UTF-8 BOM", ID: "utf-8-bom", Supported: true, BOM: utf8BOM},
	{Name: "UTF-16 LE", ID: "utf-16-le", Decoder: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), Aliases: []string{"UTF-16LE"}, Supported: true, BOM: utf16LEBOM},
	{Name: "UTF-16 BE", ID: "utf-16-be", Decoder: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), Aliases: []string{"UTF-16BE"}, Supported: true, BOM: utf16BEBOM},
	{Name: "ISO-8859-1", ID: "iso-8859-1", Decoder: charmap.ISO8859_1, Aliases: []string{"latin1", "Latin-1"}, Supported: true},
	{Name: "ISO-8859-2", ID: "iso-8859-2", Decoder: charmap.ISO8859_2, Aliases: []string{"latin2", "Latin-2"}, Supported: true},
	{Name: "ISO-8859-5", ID: "iso-8859-5", Decoder: charmap.ISO8859_5, Supported: true},
	{Name: "ISO-8859-15", ID: "iso-8859-15", Decoder: charmap.ISO8859_15, Aliases: []string{"latin9", "Latin-9"}, Supported: true},
	{Name: "Windows-1250", ID: "windows-1250", Decoder: charmap.Windows1250, Aliases: []string{"CP1250"}, Supported: true},
	{Name: "Windows-1251", ID: "windows-1251", Decoder: charmap.Windows1251, Aliases: []string{"CP1251"}, Supported: true},
	{Name: "Windows-1252", ID: "windows-1252", Decoder: charmap.Windows1252, Aliases: []string{"CP1252"}, Supported: true},
	{Name: "KOI8-R", ID: "koi8-r", Decoder: charmap.KOI8R, Supported: true},
	{Name: "Shift-JIS", ID: "shift-jis", Decoder: japanese.ShiftJIS, Aliases: []string{"Shift_JIS", "SJIS", "MS_Kanji"}, Supported: true},
	{Name: "EUC-JP", ID: "euc-jp", Decoder: japanese.EUCJP, Supported: true},
	{Name: "ISO-2022-JP", ID: "iso-2022-jp", Decoder: japanese.ISO2022JP, Supported: true},
	{Name: "GBK", ID: "gbk", Decoder: simplifiedchinese.GBK, Aliases: []string{"GB2312", "GB-2312"}, Supported: true},
	{Name: "GB18030", ID: "gb18030", Decoder: simplifiedchinese.GB18030, Supported: true},
	{Name: "Big5", ID: "big5", Decoder: traditionalchinese.Big5, Supported: true},
	{Name: "EUC-KR", ID: "euc-kr", Decoder: korean.EUCKR, Supported: true},
}

// GetEncodingByID returns an encoding by its ID
func GetEncodingByID(id string) *Encoding {
	for _, enc := range SupportedEncodings {
		if strings.EqualFold(enc.ID, id) {
			return enc
		}
	}
	return nil
}

// GetEncodingByName returns an encoding by name, ID or alias
func GetEncodingByName(name string) *Encoding {
	for _, enc := range SupportedEncodings {
		if strings.EqualFold(enc.Name, name) || strings.EqualFold(enc.ID, name) {
			return enc
		}
		for _, alias := range enc.Aliases {
			if strings.EqualFold(alias, name) {
				return enc
			}
		}
	}
	return nil
}

// Detect guesses the encoding of data. BOMs win, then UTF-8 validity, then
// chardet's best guess.
func Detect(data []byte) *DetectionResult {
	switch {
	case bytes.HasPrefix(data, utf8BOM):
		return &DetectionResult{Encoding: GetEncodingByID("utf-8-bom"), Confidence: 100, HasBOM: true}
	case bytes.HasPrefix(data, utf16BEBOM):
		return &DetectionResult{Encoding: GetEncodingByID("utf-16-be"), Confidence: 100, HasBOM: true}
	case bytes.HasPrefix(data, utf16LEBOM):
		return &DetectionResult{Encoding: GetEncodingByID("utf-16-le"), Confidence: 100, HasBOM: true}
	case utf8.Valid(data):
		return &DetectionResult{Encoding: GetEncodingByID("utf-8"), Confidence: 100}
	}

	detected, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || detected == nil {
		// Latin-1 decodes any byte sequence
		return &DetectionResult{Encoding: GetEncodingByID("iso-8859-1"), Confidence: 50}
	}

	enc := GetEncodingByName(detected.Charset)
	if enc == nil {
		enc = &Encoding{
			Name: detected.Charset,
			ID:   strings.ToLower(detected.Charset),
		}
	}
	return &DetectionResult{Encoding: enc, Confidence: detected.Confidence}
}

// DecodeToUTF8 decodes data from the given encoding to UTF-8, dropping the
// encoding's byte order mark if present.
func DecodeToUTF8(data []byte, enc *Encoding) ([]byte, error) {
	if enc == nil {
		return data, nil
	}
	if !enc.Supported {
		return nil, fmt.Errorf("%w %q", ErrUnsupported, enc.Name)
	}
	if len(enc.BOM) > 0 {
		data = bytes.TrimPrefix(data, enc.BOM)
	}
	if enc.Decoder == nil {
		return data, nil
	}

	reader := transform.NewReader(bytes.NewReader(data), enc.Decoder.NewDecoder())
	out, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", enc.Name, err)
	}
	return out, nil
}

// Decode detects the encoding of data and returns it as UTF-8 text.
func Decode(data []byte) (string, *DetectionResult, error) {
	result := Detect(data)
	out, err := DecodeToUTF8(data, result.Encoding)
	if err != nil {
		return "", result, err
	}
	return string(out), result, nil
}
