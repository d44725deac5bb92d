package process

import (
	"bytes"
	"debug/pe"
	"encoding/binary"
	"fmt"
)

const (
	dosMagic          = 0x5A4D // "MZ"
	dosLfanewOffset   = 0x3C
	peSignature       = 0x00004550 // "PE\0\0"
	fileHeaderSize    = 20
	optionalMagic32   = 0x10b
	optionalMagic64   = 0x20b
	maxNtHeaderOffset = 0x1000
)

// SizeOfImage reads the PE headers of an image mapped at base and returns
// the SizeOfImage field of its optional header.
func SizeOfImage(r MemoryReader, base ProcessMemoryAddress) (ProcessMemorySize, error) {
	magic, err := ReadUINT16(r, base)
	if err != nil {
		return 0, fmt.Errorf("read DOS header: %w", err)
	}
	if magic != dosMagic {
		return 0, fmt.Errorf("bad DOS magic 0x%X: %w", magic, ErrInvalidImage)
	}

	lfanew, err := ReadUINT32(r, base.Add(dosLfanewOffset))
	if err != nil {
		return 0, fmt.Errorf("read e_lfanew: %w", err)
	}
	if lfanew == 0 || lfanew > maxNtHeaderOffset {
		return 0, fmt.Errorf("e_lfanew 0x%X out of range: %w", lfanew, ErrInvalidImage)
	}

	ntHeaders := base.Add(ProcessMemorySize(lfanew))
	sig, err := ReadUINT32(r, ntHeaders)
	if err != nil {
		return 0, fmt.Errorf("read PE signature: %w", err)
	}
	if sig != peSignature {
		return 0, fmt.Errorf("bad PE signature 0x%X: %w", sig, ErrInvalidImage)
	}

	raw, err := readExact(r, ntHeaders.Add(4), fileHeaderSize)
	if err != nil {
		return 0, fmt.Errorf("read file header: %w", err)
	}
	var fh pe.FileHeader
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, &fh); err != nil {
		return 0, fmt.Errorf("decode file header: %w", err)
	}

	optional := ntHeaders.Add(4 + fileHeaderSize)
	optMagic, err := ReadUINT16(r, optional)
	if err != nil {
		return 0, fmt.Errorf("read optional header magic: %w", err)
	}

	switch optMagic {
	case optionalMagic32:
		var oh pe.OptionalHeader32
		if err := readOptionalHeader(r, optional, fh.SizeOfOptionalHeader, &oh); err != nil {
			return 0, err
		}
		return ProcessMemorySize(oh.SizeOfImage), nil
	case optionalMagic64:
		var oh pe.OptionalHeader64
		if err := readOptionalHeader(r, optional, fh.SizeOfOptionalHeader, &oh); err != nil {
			return 0, err
		}
		return ProcessMemorySize(oh.SizeOfImage), nil
	default:
		return 0, fmt.Errorf("unknown optional header magic 0x%X: %w", optMagic, ErrInvalidImage)
	}
}

func readOptionalHeader(r MemoryReader, addr ProcessMemoryAddress, declared uint16, out any) error {
	size := binary.Size(out)
	if int(declared) < size {
		return fmt.Errorf("optional header is %d bytes, want %d: %w", declared, size, ErrInvalidImage)
	}

	raw, err := readExact(r, addr, ProcessMemorySize(size))
	if err != nil {
		return fmt.Errorf("read optional header: %w", err)
	}

	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, out); err != nil {
		return fmt.Errorf("decode optional header: %w", err)
	}
	return nil
}
