package charset

import (
	"bytes"
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	t.Run("utf-8 with multibyte runes", func(t *testing.T) {
		data := []byte(strings.Repeat("héllo wörld, ünïcode täxt. ", 20))
		name, confidence, err := Detect(data)
		if err != nil {
			t.Fatalf("Detect() error: %v", err)
		}
		if name != "UTF-8" {
			t.Errorf("Detect() charset = %q, want UTF-8", name)
		}
		if confidence <= 0 {
			t.Errorf("Detect() confidence = %d, want > 0", confidence)
		}
	})

	t.Run("utf-16le via byte order mark", func(t *testing.T) {
		data := append([]byte{0xFF, 0xFE}, []byte("h\x00i\x00")...)
		name, _, err := Detect(data)
		if err != nil {
			t.Fatalf("Detect() error: %v", err)
		}
		if name != "UTF-16LE" {
			t.Errorf("Detect() charset = %q, want UTF-16LE", name)
		}
	})

	t.Run("empty input fails", func(t *testing.T) {
		if _, _, err := Detect(nil); err == nil {
			t.Error("Detect(nil) expected error, got nil")
		}
	})
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		wantErr bool
	}{
		{"canonical utf-8", "UTF-8", false},
		{"lowercase utf-8", "utf-8", false},
		{"latin-1", "ISO-8859-1", false},
		{"windows codepage", "windows-1252", false},
		{"shift jis", "Shift_JIS", false},
		{"detector gb label", "GB-18030", false},
		{"unknown label", "no-such-charset", true},
		{"known but unsupported", "IBM424_rtl", true},
		{"replacement-mapped label", "ISO-2022-KR", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := Resolve(tt.label)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Resolve(%q) expected error, got nil", tt.label)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tt.label, err)
			}
			if codec.Name() != tt.label {
				t.Errorf("Name() = %q, want %q", codec.Name(), tt.label)
			}
		})
	}
}

func TestUTF8Passthrough(t *testing.T) {
	codec, err := Resolve("UTF-8")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	t.Run("valid input unchanged", func(t *testing.T) {
		in := []byte("plain téxt")
		got, err := codec.Decode(in)
		if err != nil {
			t.Fatalf("Decode() error: %v", err)
		}
		if got != string(in) {
			t.Errorf("Decode() = %q, want %q", got, in)
		}
		back, err := codec.Encode(got)
		if err != nil {
			t.Fatalf("Encode() error: %v", err)
		}
		if !bytes.Equal(back, in) {
			t.Errorf("Encode() = %v, want %v", back, in)
		}
	})

	t.Run("malformed input fails", func(t *testing.T) {
		if _, err := codec.Decode([]byte{0x68, 0xE9, 0x6C}); err == nil {
			t.Error("Decode() expected error for invalid UTF-8, got nil")
		}
	})
}

func TestLegacyRoundTrip(t *testing.T) {
	codec, err := Resolve("ISO-8859-1")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	raw := []byte{0x68, 0xE9, 0x6C, 0x6C, 0x6F} // "héllo" in latin-1
	decoded, err := codec.Decode(raw)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if decoded != "héllo" {
		t.Errorf("Decode() = %q, want %q", decoded, "héllo")
	}

	encoded, err := codec.Encode(decoded)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !bytes.Equal(encoded, raw) {
		t.Errorf("Encode() = %v, want original bytes %v", encoded, raw)
	}
}

func TestEncodeRejectsUnsupportedRunes(t *testing.T) {
	codec, err := Resolve("ISO-8859-1")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	if _, err := codec.Encode("snow ☃ man"); err == nil {
		t.Error("Encode() expected error for rune outside the charset, got nil")
	}
}

func TestUTF8Accessor(t *testing.T) {
	codec := UTF8()
	if codec.Name() != Fallback {
		t.Errorf("Name() = %q, want %q", codec.Name(), Fallback)
	}
	got, err := codec.Decode([]byte("ok"))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if got != "ok" {
		t.Errorf("Decode() = %q, want %q", got, "ok")
	}
}
