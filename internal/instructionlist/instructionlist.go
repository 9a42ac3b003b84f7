// Package instructionlist implements the compact typed instruction stream
// used to ferry recorded combat events between threads and onto disk.
//
// A list is a sequence of integer words. Each instruction starts with an
// opcode word encoding 256*opcode + parameterCount, followed by exactly
// parameterCount parameter words. Strings are stored in a side pool and
// referenced by index.
package instructionlist

// Word is one storage unit of an instruction list. Values are conceptually
// 16-bit; the in-memory representation is wider so that large distances and
// masses survive untruncated.
type Word int32

const (
	// maxParameters bounds the parameter count encodable in an opcode word.
	maxParameters = 255

	// maxStringIndex is the largest string-pool index representable in the
	// conceptual 16-bit parameter encoding.
	maxStringIndex = 0x7FFF
)

// InstructionList is an append-only stream of instructions. The zero value
// is an empty list ready for use.
type InstructionList struct {
	words []Word
	// lastOpcode is 1 + the index of the most recent opcode word, so the
	// zero value means "no instruction yet".
	lastOpcode int
}

// AddInstruction appends a new instruction with the given opcode and no
// parameters yet. Subsequent AddParameter calls attach to this instruction.
func (l *InstructionList) AddInstruction(opcode uint8) *InstructionList {
	l.lastOpcode = len(l.words) + 1
	l.words = append(l.words, Word(int32(opcode)*256))
	return l
}

// AddParameter appends one integer parameter to the most recent instruction.
// Calling it before any AddInstruction, or past the encodable parameter
// count, silently drops the value.
func (l *InstructionList) AddParameter(value int32) *InstructionList {
	if l.lastOpcode == 0 {
		return l
	}
	//1.- Refuse to overflow the count byte; the instruction stays well-formed.
	at := l.lastOpcode - 1
	if int(l.words[at])%256 >= maxParameters {
		return l
	}
	l.words = append(l.words, Word(value))
	l.words[at]++
	return l
}

// Clear removes all content.
func (l *InstructionList) Clear() {
	l.words = l.words[:0]
	l.lastOpcode = 0
}

// Size returns the number of words stored. It is nonzero whenever at least
// one instruction has been added.
func (l *InstructionList) Size() int {
	return len(l.words)
}

// Swap exchanges the contents of two lists without copying.
func (l *InstructionList) Swap(other *InstructionList) {
	l.words, other.words = other.words, l.words
	l.lastOpcode, other.lastOpcode = other.lastOpcode, l.lastOpcode
}

// Read returns an iterator positioned before the first instruction.
func (l *InstructionList) Read() *Iterator {
	return &Iterator{words: l.words}
}

// Iterator walks a list instruction by instruction, then parameter by
// parameter. It must not outlive modifications of the underlying list.
type Iterator struct {
	words     []Word
	pos       int
	remaining int // parameters left in the current instruction
}

// ReadInstruction advances to the next instruction and returns its opcode.
// It returns false at the end of the stream or on a malformed encoding.
func (it *Iterator) ReadInstruction() (uint8, bool) {
	//1.- Skip any parameters the caller did not consume.
	it.pos += it.remaining
	it.remaining = 0
	if it.pos >= len(it.words) {
		return 0, false
	}
	word := int32(it.words[it.pos])
	if word < 0 {
		return 0, false
	}
	count := int(word % 256)
	if it.pos+1+count > len(it.words) {
		return 0, false
	}
	it.pos++
	it.remaining = count
	return uint8(word / 256), true
}

// ReadParameter returns the next declared parameter of the current
// instruction. It returns false when the declared count is exhausted.
func (it *Iterator) ReadParameter() (int32, bool) {
	if it.remaining <= 0 || it.pos >= len(it.words) {
		return 0, false
	}
	value := int32(it.words[it.pos])
	it.pos++
	it.remaining--
	return value, true
}
