package decode

import (
	"strings"
	"testing"

	"github.com/FACorreiaa/tally-bridge/internal/domain/common"
)

func utf16le(s string, withBOM bool) []byte {
	var out []byte
	if withBOM {
		out = append(out, 0xFF, 0xFE)
	}
	for _, r := range s {
		out = append(out, byte(r), byte(r>>8))
	}
	return out
}

func utf16be(s string, withBOM bool) []byte {
	var out []byte
	if withBOM {
		out = append(out, 0xFE, 0xFF)
	}
	for _, r := range s {
		out = append(out, byte(r>>8), byte(r))
	}
	return out
}

func TestText_BOMVariants(t *testing.T) {
	const want = "<ENVELOPE><BODY/></ENVELOPE>"

	tests := []struct {
		name string
		data []byte
	}{
		{"plain utf8", []byte(want)},
		{"utf8 bom", append([]byte{0xEF, 0xBB, 0xBF}, []byte(want)...)},
		{"utf16le bom", utf16le(want, true)},
		{"utf16be bom", utf16be(want, true)},
	}

	for _, tc := range tests {
		got, err := Text(tc.data)
		if err != nil {
			t.Errorf("%s: Text error: %v", tc.name, err)
			continue
		}
		if got != want {
			t.Errorf("%s: Text = %q, want %q", tc.name, got, want)
		}
	}
}

func TestText_TrimsWhitespace(t *testing.T) {
	got, err := Text([]byte("  \r\n<Data/>\n  "))
	if err != nil {
		t.Fatalf("Text error: %v", err)
	}
	if got != "<Data/>" {
		t.Errorf("Text = %q, want %q", got, "<Data/>")
	}
}

func TestText_EmptyIsFatal(t *testing.T) {
	for _, data := range [][]byte{nil, {}, []byte("   \n\t ")} {
		_, err := Text(data)
		if err == nil {
			t.Errorf("Text(%q): expected error", data)
			continue
		}
		if !common.IsFatalInput(err) {
			t.Errorf("Text(%q): expected FatalInputError, got %T", data, err)
		}
		if !strings.Contains(err.Error(), "empty or corrupted") {
			t.Errorf("Text(%q): unexpected message %q", data, err.Error())
		}
	}
}

func TestXMLText_DropsLeadingJunk(t *testing.T) {
	got, err := XMLText([]byte("junk$$<ENVELOPE/>"), nil)
	if err != nil {
		t.Fatalf("XMLText error: %v", err)
	}
	if got != "<ENVELOPE/>" {
		t.Errorf("XMLText = %q, want %q", got, "<ENVELOPE/>")
	}
}

func TestXMLText_UTF16MatchesUTF8(t *testing.T) {
	const payload = "<ENVELOPE><BODY>x</BODY></ENVELOPE>"

	fromUTF8, err := XMLText(append([]byte{0xEF, 0xBB, 0xBF}, []byte(payload)...), nil)
	if err != nil {
		t.Fatalf("utf8 XMLText error: %v", err)
	}
	fromUTF16, err := XMLText(utf16le(payload, true), nil)
	if err != nil {
		t.Fatalf("utf16 XMLText error: %v", err)
	}
	if fromUTF8 != fromUTF16 {
		t.Errorf("decoded text differs: utf8=%q utf16=%q", fromUTF8, fromUTF16)
	}
}
