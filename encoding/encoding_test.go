package encoding

import (
	"errors"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
)

func TestGetEncodingByID(t *testing.T) {
	tests := []struct {
		id       string
		wantName string
		wantNil  bool
	}{
		{"utf-8", "UTF-8", false},
		{"UTF-8", "UTF-8", false},
		{"utf-8-bom", "UTF-8 BOM", false},
		{"utf-16-le", "UTF-16 LE", false},
		{"utf-16-be", "UTF-16 BE", false},
		{"iso-8859-1", "ISO-8859-1", false},
		{"windows-1251", "Windows-1251", false},
		{"shift-jis", "Shift-JIS", false},
		{"big5", "Big5", false},
		{"euc-kr", "EUC-KR", false},
		{"nonexistent", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			enc := GetEncodingByID(tt.id)
			if tt.wantNil {
				if enc != nil {
					t.Errorf("GetEncodingByID(%q) = %v, want nil", tt.id, enc)
				}
				return
			}
			if enc == nil {
				t.Fatalf("GetEncodingByID(%q) = nil, want %q", tt.id, tt.wantName)
			}
			if enc.Name != tt.wantName {
				t.Errorf("GetEncodingByID(%q).Name = %q, want %q", tt.id, enc.Name, tt.wantName)
			}
		})
	}
}

func TestGetEncodingByName(t *testing.T) {
	tests := []struct {
		name    string
		wantID  string
		wantNil bool
	}{
		{"UTF-8", "utf-8", false},
		{"utf8", "utf-8", false},
		{"US-ASCII", "utf-8", false},
		{"Shift_JIS", "shift-jis", false},
		{"SJIS", "shift-jis", false},
		{"GB2312", "gbk", false},
		{"latin1", "iso-8859-1", false},
		{"CP1252", "windows-1252", false},
		{"KOI8-R", "koi8-r", false},
		{"nonexistent", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := GetEncodingByName(tt.name)
			if tt.wantNil {
				if enc != nil {
					t.Errorf("GetEncodingByName(%q) = %v, want nil", tt.name, enc)
				}
				return
			}
			if enc == nil {
				t.Fatalf("GetEncodingByName(%q) = nil, want ID %q", tt.name, tt.wantID)
			}
			if enc.ID != tt.wantID {
				t.Errorf("GetEncodingByName(%q).ID = %q, want %q", tt.name, enc.ID, tt.wantID)
			}
		})
	}
}

func TestDetectBOM(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantID  string
		wantBOM bool
	}{
		{"UTF-8 BOM", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, "utf-8-bom", true},
		{"UTF-16 LE BOM", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "utf-16-le", true},
		{"UTF-16 BE BOM", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, "utf-16-be", true},
		{"No BOM ASCII", []byte("hello"), "utf-8", false},
		{"No BOM UTF-8", []byte("日本語のテキスト"), "utf-8", false},
		{"Empty", nil, "utf-8", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Detect(tt.data)
			if result.Encoding.ID != tt.wantID {
				t.Errorf("Detect().Encoding.ID = %q, want %q", result.Encoding.ID, tt.wantID)
			}
			if result.HasBOM != tt.wantBOM {
				t.Errorf("Detect().HasBOM = %v, want %v", result.HasBOM, tt.wantBOM)
			}
			if result.Confidence != 100 {
				t.Errorf("Detect().Confidence = %d, want 100", result.Confidence)
			}
		})
	}
}

func TestDetectInvalidUTF8(t *testing.T) {
	data := []byte("The caf\xe9 on the corner serves cr\xe8me br\xfbl\xe9e every day of the week.")
	result := Detect(data)
	if result.Encoding == nil {
		t.Fatal("Detect().Encoding = nil")
	}
	if result.Encoding.ID == "utf-8" {
		t.Errorf("Detect() = utf-8 for invalid UTF-8 input")
	}
}

func TestDecodeToUTF8(t *testing.T) {
	sjis, err := japanese.ShiftJIS.NewEncoder().String("日本語")
	if err != nil {
		t.Fatalf("encode Shift-JIS: %v", err)
	}
	euckr, err := korean.EUCKR.NewEncoder().String("한국어")
	if err != nil {
		t.Fatalf("encode EUC-KR: %v", err)
	}

	tests := []struct {
		name     string
		encID    string
		input    []byte
		wantText string
	}{
		{"UTF-8 passthrough", "utf-8", []byte("hello"), "hello"},
		{"UTF-8 BOM strip", "utf-8-bom", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, "hi"},
		{"UTF-16 LE with BOM", "utf-16-le", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "hi"},
		{"UTF-16 BE with BOM", "utf-16-be", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, "hi"},
		{"ISO-8859-1 café", "iso-8859-1", []byte{'c', 'a', 'f', 0xe9}, "café"},
		{"Shift-JIS", "shift-jis", []byte(sjis), "日本語"},
		{"EUC-KR", "euc-kr", []byte(euckr), "한국어"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := GetEncodingByID(tt.encID)
			decoded, err := DecodeToUTF8(tt.input, enc)
			if err != nil {
				t.Fatalf("DecodeToUTF8() error = %v", err)
			}
			if string(decoded) != tt.wantText {
				t.Errorf("DecodeToUTF8() = %q, want %q", string(decoded), tt.wantText)
			}
		})
	}
}

func TestDecodeToUTF8Unsupported(t *testing.T) {
	enc := &Encoding{Name: "x-mystery", ID: "x-mystery"}
	_, err := DecodeToUTF8([]byte("abc"), enc)
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("DecodeToUTF8() error = %v, want ErrUnsupported", err)
	}
}

func TestDecodeToUTF8NilEncoding(t *testing.T) {
	decoded, err := DecodeToUTF8([]byte("plain"), nil)
	if err != nil {
		t.Fatalf("DecodeToUTF8() error = %v", err)
	}
	if string(decoded) != "plain" {
		t.Errorf("DecodeToUTF8() = %q, want %q", decoded, "plain")
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		wantText string
		wantID   string
	}{
		{"UTF-8", []byte("Hello, 世界"), "Hello, 世界", "utf-8"},
		{"UTF-8 BOM", append([]byte{0xEF, 0xBB, 0xBF}, "résumé"...), "résumé", "utf-8-bom"},
		{"UTF-16 LE", []byte{0xFF, 0xFE, 'o', 0, 'k', 0}, "ok", "utf-16-le"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, result, err := Decode(tt.data)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if text != tt.wantText {
				t.Errorf("Decode() = %q, want %q", text, tt.wantText)
			}
			if result.Encoding.ID != tt.wantID {
				t.Errorf("Decode() encoding = %q, want %q", result.Encoding.ID, tt.wantID)
			}
		})
	}
}

func TestSupportedEncodings(t *testing.T) {
	seen := make(map[string]bool)
	for _, enc := range SupportedEncodings {
		if !enc.Supported {
			t.Errorf("Encoding %q has Supported=false, want true", enc.Name)
		}
		if seen[enc.ID] {
			t.Errorf("Encoding ID %q listed twice", enc.ID)
		}
		seen[enc.ID] = true
	}
}
