package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/innkeeper/internal/encoding"
)

func TestNewUTF8Reader(t *testing.T) {
	const header = "Número;Piso;Tipo de quarto\n"

	type testCase struct {
		name        string
		input       []byte
		wantCharset []encoding.Charset
	}

	tests := []testCase{
		{
			name:        "UTF8Passthrough",
			input:       []byte(header),
			wantCharset: []encoding.Charset{encoding.CharsetUTF8},
		},
		{
			name:        "UTF8BOMStripped",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, header...),
			wantCharset: []encoding.Charset{encoding.CharsetUTF8},
		},
		{
			// ú = 0xFA in Windows-1252.
			name: "Windows1252",
			input: []byte{
				'N', 0xFA, 'm', 'e', 'r', 'o', ';', 'P', 'i', 's', 'o', ';',
				'T', 'i', 'p', 'o', ' ', 'd', 'e', ' ', 'q', 'u', 'a', 'r', 't', 'o', '\n',
			},
			// Short Latin samples are ambiguous to chardet; both decoders agree on these bytes.
			wantCharset: []encoding.Charset{encoding.CharsetWindows1252, encoding.CharsetISO88599},
		},
		{
			name:        "UTF16LE",
			input:       utf16LE(header),
			wantCharset: []encoding.Charset{encoding.CharsetUTF16LE},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, charset, err := encoding.NewUTF8Reader(bytes.NewReader(tt.input))
			require.NoError(t, err)
			assert.Contains(t, tt.wantCharset, charset)

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, header, string(got))
		})
	}
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	r, charset, err := encoding.NewUTF8Reader(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Equal(t, encoding.CharsetUTF8, charset)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// utf16LE encodes s, which must be in the Basic Multilingual Plane, with a little-endian BOM.
func utf16LE(s string) []byte {
	out := []byte{0xFF, 0xFE}
	for _, r := range s {
		out = append(out, byte(r), byte(r>>8))
	}

	return out
}
