// Package hexdump renders process memory around signature hits.
package hexdump

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"s2autosplit/process"
	"s2autosplit/process/memory_map"
	"s2autosplit/signature"

	"github.com/Moonlight-Companies/gologger/coloransi"
)

// Options control the layout of a dump
type Options struct {
	// BytesPerLine is rounded up to a multiple of 4
	BytesPerLine int

	// StartOffset is the address of data[0]
	StartOffset uint64

	// Highlight marks a signature match at HighlightAt; a negative
	// HighlightAt disables it. Highlighted bytes print in upper case.
	Highlight   signature.Signature
	HighlightAt int

	// MemoryMap enables the pointer column: every aligned 32-bit value on
	// the line that points into a readable region is listed after the ASCII
	MemoryMap []memory_map.MemoryMapItem

	// Color paints highlighted bytes for a terminal
	Color bool
}

func DefaultOptions() Options {
	return Options{
		BytesPerLine: 16,
		HighlightAt:  -1,
	}
}

// Dump creates a hex dump of data
func Dump(data []byte, options Options) string {
	var buffer bytes.Buffer
	DumpToWriter(&buffer, data, options)
	return buffer.String()
}

// DumpToWriter writes a hex dump of data to writer
func DumpToWriter(writer io.Writer, data []byte, options Options) {
	if options.BytesPerLine <= 0 {
		options.BytesPerLine = 16
	}
	options.BytesPerLine = (options.BytesPerLine + 3) &^ 3

	for offset := 0; offset < len(data); offset += options.BytesPerLine {
		end := offset + options.BytesPerLine
		if end > len(data) {
			end = len(data)
		}
		formatLine(writer, data, offset, end, options)
	}
}

func formatLine(writer io.Writer, data []byte, start, end int, options Options) {
	fmt.Fprintf(writer, "%08x  ", options.StartOffset+uint64(start))

	half := start + options.BytesPerLine/2
	for i := start; i < start+options.BytesPerLine; i++ {
		if i > start {
			if i == half {
				fmt.Fprint(writer, " | ")
			} else {
				fmt.Fprint(writer, " ")
			}
		}
		if i >= end {
			fmt.Fprint(writer, "  ")
			continue
		}
		fmt.Fprint(writer, formatByte(data[i], i, options))
	}

	fmt.Fprint(writer, " | ")
	for _, b := range data[start:end] {
		if b >= 0x20 && b < 0x7F {
			fmt.Fprintf(writer, "%c", b)
		} else {
			fmt.Fprint(writer, ".")
		}
	}

	if len(options.MemoryMap) > 0 {
		var ptrs []string
		for i := start; i+4 <= end; i += 4 {
			ptr := uint64(binary.LittleEndian.Uint32(data[i:]))
			if region := memory_map.FindRegion(ptr, options.MemoryMap); region != nil && region.IsReadable() {
				ptrs = append(ptrs, fmt.Sprintf("0x%x", ptr))
			}
		}
		if len(ptrs) > 0 {
			fmt.Fprint(writer, strings.Repeat(" ", options.BytesPerLine-(end-start)), " | ", strings.Join(ptrs, " "))
		}
	}

	fmt.Fprintln(writer)
}

func formatByte(b byte, i int, options Options) string {
	pos := i - options.HighlightAt
	if options.HighlightAt < 0 || pos < 0 || pos >= options.Highlight.Len() {
		return fmt.Sprintf("%02x", b)
	}

	s := fmt.Sprintf("%02X", b)
	if !options.Color {
		return s
	}
	if options.Highlight.At(pos).IsWildcard() {
		return coloransi.Color(coloransi.Red, coloransi.ColorOrange, s)
	}
	return coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, s)
}

// Around dumps the window of before bytes ahead of addr and after bytes from
// it, with sig highlighted at addr
func Around(r process.MemoryReader, addr process.ProcessMemoryAddress, before, after int, sig signature.Signature, mm []memory_map.MemoryMapItem) (string, error) {
	start := addr - process.ProcessMemoryAddress(before)
	data, err := r.ReadMemory(start, process.ProcessMemorySize(before+after))
	if err != nil {
		return "", fmt.Errorf("read around %s: %w", addr.ToString(), err)
	}

	options := DefaultOptions()
	options.StartOffset = uint64(start)
	options.Highlight = sig
	options.HighlightAt = before
	options.MemoryMap = mm
	options.Color = true
	return Dump(data, options), nil
}
