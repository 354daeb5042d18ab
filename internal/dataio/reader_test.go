package dataio

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextReader(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"with BOM", append([]byte{0xEF, 0xBB, 0xBF}, "age,sex"...), "age,sex"},
		{"without BOM", []byte("age,sex"), "age,sex"},
		{"empty", []byte{}, ""},
		{"only BOM", []byte{0xEF, 0xBB, 0xBF}, ""},
		{"partial BOM kept", []byte{0xEF, 0xBB, 'a'}, "??a"},
		{"invalid byte replaced", []byte{'h', 'e', 0x80, 'l', 'o'}, "he?lo"},
		{"latin1 byte replaced", []byte("Jos\xe9"), "Jos?"},
		{"valid multibyte kept", []byte("Zoë,ñ"), "Zoë,ñ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(newTextReader(bytes.NewReader(tt.input)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestTextReader_SmallBuffers(t *testing.T) {
	input := "é,ö\n" + strings.Repeat("ü", 10)
	r := newTextReader(iotest.OneByteReader(strings.NewReader(input)))

	var out []byte
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	assert.Equal(t, input, string(out))
}
