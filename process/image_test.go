package process_test

import (
	"bytes"
	"debug/pe"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

const ntHeaderOffset = 0x80

// peImage returns total bytes starting with minimal DOS and PE32 headers
// declaring sizeOfImage.
func peImage(t *testing.T, sizeOfImage uint32, total int) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.Write([]byte{'M', 'Z'})
	buf.Write(make([]byte, 0x3C-2))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(ntHeaderOffset)))
	buf.Write(make([]byte, ntHeaderOffset-buf.Len()))
	buf.Write([]byte{'P', 'E', 0, 0})

	oh := pe.OptionalHeader32{
		Magic:            0x10b,
		ImageBase:        0x400000,
		SectionAlignment: 0x1000,
		FileAlignment:    0x200,
		SizeOfImage:      sizeOfImage,
		SizeOfHeaders:    0x400,
	}
	fh := pe.FileHeader{
		Machine:              pe.IMAGE_FILE_MACHINE_I386,
		SizeOfOptionalHeader: uint16(binary.Size(oh)),
	}
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, fh))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, oh))

	require.LessOrEqual(t, buf.Len(), total)
	out := make([]byte, total)
	copy(out, buf.Bytes())
	return out
}
