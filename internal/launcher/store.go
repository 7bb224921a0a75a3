package launcher

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

// maxStringLength bounds a single stored string so a corrupt length prefix
// cannot trigger a huge allocation.
const maxStringLength = 1 << 20

// ErrCorruptStore reports a registry file that does not follow the format.
var ErrCorruptStore = errors.New("corrupt registry file")

// Store persists registrations in a flat binary file: a little-endian int32
// entry count followed by that many (name, path) pairs. Each string is UTF-8
// prefixed with its byte length as a 7-bit variable-length integer.
type Store struct {
	path string
}

// NewStore creates a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load replaces the content of registrations with the file content. A missing
// file leaves registrations empty.
func (s *Store) Load(registrations *Registrations) error {
	file, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		registrations.Reset()
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open registry file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Decode(bufio.NewReader(file), registrations)
}

// Save truncates the backing file and writes every registration to it,
// creating the parent directory when needed.
func (s *Store) Save(registrations *Registrations) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create registry directory: %w", err)
		}
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open registry file: %w", err)
	}

	writer := bufio.NewWriter(file)
	if err := Encode(writer, registrations); err != nil {
		_ = file.Close()
		return err
	}
	if err := writer.Flush(); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return file.Close()
}

// Encode writes registrations in the registry file format.
func Encode(w io.Writer, registrations *Registrations) error {
	if registrations.Len() > math.MaxInt32 {
		return fmt.Errorf("too many registrations: %d", registrations.Len())
	}

	buf := binary.LittleEndian.AppendUint32(nil, uint32(registrations.Len()))
	for name, path := range registrations.All() {
		buf = appendString(buf, name)
		buf = appendString(buf, path)
	}

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

// byteReader reads both bulk data and single bytes, as varint decoding needs.
type byteReader interface {
	io.Reader
	io.ByteReader
}

// Decode reads the registry file format into registrations, replacing their content.
func Decode(r io.Reader, registrations *Registrations) error {
	reader, ok := r.(byteReader)
	if !ok {
		reader = bufio.NewReader(r)
	}

	var count int32
	if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("%w: reading entry count: %v", ErrCorruptStore, err)
	}
	if count < 0 {
		return fmt.Errorf("%w: negative entry count %d", ErrCorruptStore, count)
	}

	registrations.Reset()
	for i := range count {
		name, err := readString(reader)
		if err != nil {
			return fmt.Errorf("%w: entry %d name: %v", ErrCorruptStore, i, err)
		}
		path, err := readString(reader)
		if err != nil {
			return fmt.Errorf("%w: entry %d path: %v", ErrCorruptStore, i, err)
		}
		registrations.Set(name, path)
	}
	return nil
}

func readString(r byteReader) (string, error) {
	length, err := binary.ReadUvarint(r)
	if err != nil {
		return "", err
	}
	if length > maxStringLength {
		return "", fmt.Errorf("string length %d exceeds limit", length)
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return "", err
	}
	return string(data), nil
}
