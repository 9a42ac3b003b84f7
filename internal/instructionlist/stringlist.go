package instructionlist

import "errors"

// ErrTooComplex reports that a list's string pool outgrew the index range
// representable in a parameter word. Recording must be aborted; the list
// stays well-formed but incomplete.
var ErrTooComplex = errors.New("instruction list too complex")

// StringInstructionList extends InstructionList with a pool of string
// parameters, stored out of band and referenced by index.
type StringInstructionList struct {
	InstructionList
	strings []string
}

// AddInstruction appends a new instruction; see InstructionList.AddInstruction.
func (l *StringInstructionList) AddInstruction(opcode uint8) *StringInstructionList {
	l.InstructionList.AddInstruction(opcode)
	return l
}

// AddParameter appends one integer parameter; see InstructionList.AddParameter.
func (l *StringInstructionList) AddParameter(value int32) *StringInstructionList {
	l.InstructionList.AddParameter(value)
	return l
}

// AddStringParameter appends a string parameter by pooling the string and
// recording its index. It fails with ErrTooComplex when the pool index would
// no longer fit the parameter encoding.
func (l *StringInstructionList) AddStringParameter(s string) error {
	index := len(l.strings)
	if index > maxStringIndex {
		return ErrTooComplex
	}
	l.strings = append(l.strings, s)
	l.AddParameter(int32(index))
	return nil
}

// Clear removes all content including the string pool.
func (l *StringInstructionList) Clear() {
	l.InstructionList.Clear()
	l.strings = l.strings[:0]
}

// Swap exchanges the contents of two lists without copying.
func (l *StringInstructionList) Swap(other *StringInstructionList) {
	l.InstructionList.Swap(&other.InstructionList)
	l.strings, other.strings = other.strings, l.strings
}

// Read returns an iterator positioned before the first instruction.
func (l *StringInstructionList) Read() *StringIterator {
	return &StringIterator{Iterator: Iterator{words: l.words}, strings: l.strings}
}

// StringIterator walks a StringInstructionList; in addition to the base
// iterator it can resolve parameters through the string pool.
type StringIterator struct {
	Iterator
	strings []string
}

// ReadStringParameter reads the next parameter as a pool index and resolves
// it. It returns false when the parameter is missing or the index is out of
// range.
func (it *StringIterator) ReadStringParameter() (string, bool) {
	index, ok := it.ReadParameter()
	if !ok {
		return "", false
	}
	if index < 0 || int(index) >= len(it.strings) {
		return "", false
	}
	return it.strings[index], true
}
