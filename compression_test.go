package csveda

import (
	"bytes"
	"compress/gzip"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

func TestCompressionType_Extension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		compression CompressionType
		ext         string
		name        string
	}{
		{CompressionNone, "", "none"},
		{CompressionGZ, ".gz", "gzip"},
		{CompressionBZ2, ".bz2", "bzip2"},
		{CompressionXZ, ".xz", "xz"},
		{CompressionZSTD, ".zst", "zstd"},
		{CompressionType(42), "", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.ext, tt.compression.Extension())
			assert.Equal(t, tt.name, tt.compression.String())
		})
	}
}

func TestCompressionFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		want     CompressionType
		wantBase string
	}{
		{"adults.csv", CompressionNone, "adults.csv"},
		{"adults.csv.gz", CompressionGZ, "adults.csv"},
		{"adults.csv.GZ", CompressionGZ, "adults.csv"},
		{"adults.tsv.bz2", CompressionBZ2, "adults.tsv"},
		{"adults.csv.xz", CompressionXZ, "adults.csv"},
		{"adults.csv.zst", CompressionZSTD, "adults.csv"},
		{"gz", CompressionNone, "gz"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, base := compressionFromPath(tt.path)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantBase, base)
		})
	}
}

func TestNewDecompressingReader(t *testing.T) {
	t.Parallel()

	const payload = "39, State-gov\n"

	var gz bytes.Buffer
	gzw := gzip.NewWriter(&gz)
	_, err := gzw.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, gzw.Close())

	var xzBuf bytes.Buffer
	xzw, err := xz.NewWriter(&xzBuf)
	require.NoError(t, err)
	_, err = xzw.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, xzw.Close())

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	zst := enc.EncodeAll([]byte(payload), nil)
	require.NoError(t, enc.Close())

	tests := []struct {
		name        string
		compression CompressionType
		data        []byte
	}{
		{"none", CompressionNone, []byte(payload)},
		{"gzip", CompressionGZ, gz.Bytes()},
		{"xz", CompressionXZ, xzBuf.Bytes()},
		{"zstd", CompressionZSTD, zst},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reader, closer, err := newDecompressingReader(bytes.NewReader(tt.data), tt.compression)
			require.NoError(t, err)

			got, err := io.ReadAll(reader)
			require.NoError(t, err)
			assert.Equal(t, payload, string(got))
			require.NoError(t, closer())
		})
	}

	t.Run("invalid gzip header", func(t *testing.T) {
		t.Parallel()

		_, _, err := newDecompressingReader(strings.NewReader("plain"), CompressionGZ)
		require.Error(t, err)
	})

	t.Run("unknown compression", func(t *testing.T) {
		t.Parallel()

		_, _, err := newDecompressingReader(strings.NewReader("plain"), CompressionType(42))
		require.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}
