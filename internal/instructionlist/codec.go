package instructionlist

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Encoding limits. A recording bundle of 100 battle ticks stays well below
// both; anything larger indicates a corrupt or hostile stream.
const (
	maxEncodedWords   = 1 << 24
	maxEncodedStrings = maxStringIndex + 1
	maxEncodedStrLen  = 1 << 16
)

// Encode writes the list in its portable binary form: little-endian word
// count and words, followed by the string pool as length-prefixed UTF-8.
func (l *StringInstructionList) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(l.words))); err != nil {
		return err
	}
	for _, word := range l.words {
		if err := binary.Write(w, binary.LittleEndian, int32(word)); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(l.strings))); err != nil {
		return err
	}
	for _, s := range l.strings {
		if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	}
	return nil
}

// Decode replaces the list's content with the stream produced by Encode.
func (l *StringInstructionList) Decode(r io.Reader) error {
	var wordCount uint32
	if err := binary.Read(r, binary.LittleEndian, &wordCount); err != nil {
		return err
	}
	if wordCount > maxEncodedWords {
		return fmt.Errorf("instruction stream declares %d words", wordCount)
	}
	words := make([]Word, wordCount)
	for i := range words {
		var v int32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return err
		}
		words[i] = Word(v)
	}

	var stringCount uint32
	if err := binary.Read(r, binary.LittleEndian, &stringCount); err != nil {
		return err
	}
	if stringCount > maxEncodedStrings {
		return fmt.Errorf("instruction stream declares %d strings", stringCount)
	}
	strings := make([]string, stringCount)
	for i := range strings {
		var n uint32
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return err
		}
		if n > maxEncodedStrLen {
			return fmt.Errorf("instruction stream declares a %d-byte string", n)
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return err
		}
		strings[i] = string(buf)
	}

	//1.- Only commit once the whole stream parsed, keeping the list
	// consistent when fed a truncated payload.
	l.words = words
	l.strings = strings
	l.lastOpcode = 0
	return nil
}
