// Package classfile writes JVM class files.
//
// Pipeline position: compiler bytecode emission → classfile → .class bytes.
// The writer covers the subset of the class format the Cesium compiler
// needs: a constant pool with deduplication, public static methods with a
// single Code attribute, and forward/backward branch fixups. Files are
// written at format major version 50 so the inference verifier applies and
// no StackMapTable attribute is required.
package classfile

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Class file constants.
const (
	magic        = 0xCAFEBABE
	minorVersion = 0
	majorVersion = 50 // Java 6 format; loads on any Java 8+ VM
)

// Method and class access flags.
const (
	AccPublic uint16 = 0x0001
	AccStatic uint16 = 0x0008
	AccSuper  uint16 = 0x0020
)

// Constant pool tags.
const (
	tagUtf8        = 1
	tagInteger     = 3
	tagFloat       = 4
	tagClass       = 7
	tagString      = 8
	tagFieldref    = 9
	tagMethodref   = 10
	tagNameAndType = 12
)

// ConstantPool accumulates pool entries, deduplicating structurally equal
// ones. Pool indices are 1-based per the class format.
type ConstantPool struct {
	entries [][]byte
	lookup  map[string]uint16
}

func newConstantPool() *ConstantPool {
	return &ConstantPool{lookup: make(map[string]uint16)}
}

// add appends a raw entry unless an equal one exists, returning its index.
func (cp *ConstantPool) add(key string, data []byte) uint16 {
	if idx, ok := cp.lookup[key]; ok {
		return idx
	}
	cp.entries = append(cp.entries, data)
	idx := uint16(len(cp.entries))
	cp.lookup[key] = idx
	return idx
}

// Utf8 interns a CONSTANT_Utf8_info entry.
func (cp *ConstantPool) Utf8(s string) uint16 {
	data := make([]byte, 3+len(s))
	data[0] = tagUtf8
	binary.BigEndian.PutUint16(data[1:], uint16(len(s)))
	copy(data[3:], s)
	return cp.add("u:"+s, data)
}

// Class interns a CONSTANT_Class_info entry for the internal class name.
func (cp *ConstantPool) Class(name string) uint16 {
	nameIdx := cp.Utf8(name)
	data := []byte{tagClass, 0, 0}
	binary.BigEndian.PutUint16(data[1:], nameIdx)
	return cp.add(fmt.Sprintf("c:%d", nameIdx), data)
}

// String interns a CONSTANT_String_info entry.
func (cp *ConstantPool) String(s string) uint16 {
	utfIdx := cp.Utf8(s)
	data := []byte{tagString, 0, 0}
	binary.BigEndian.PutUint16(data[1:], utfIdx)
	return cp.add(fmt.Sprintf("s:%d", utfIdx), data)
}

// Integer interns a CONSTANT_Integer_info entry.
func (cp *ConstantPool) Integer(v int32) uint16 {
	data := []byte{tagInteger, 0, 0, 0, 0}
	binary.BigEndian.PutUint32(data[1:], uint32(v))
	return cp.add(fmt.Sprintf("i:%d", v), data)
}

// Float interns a CONSTANT_Float_info entry.
func (cp *ConstantPool) Float(v float32) uint16 {
	bits := math.Float32bits(v)
	data := []byte{tagFloat, 0, 0, 0, 0}
	binary.BigEndian.PutUint32(data[1:], bits)
	return cp.add(fmt.Sprintf("f:%d", bits), data)
}

// NameAndType interns a CONSTANT_NameAndType_info entry.
func (cp *ConstantPool) NameAndType(name, descriptor string) uint16 {
	nameIdx := cp.Utf8(name)
	descIdx := cp.Utf8(descriptor)
	data := []byte{tagNameAndType, 0, 0, 0, 0}
	binary.BigEndian.PutUint16(data[1:], nameIdx)
	binary.BigEndian.PutUint16(data[3:], descIdx)
	return cp.add(fmt.Sprintf("n:%d:%d", nameIdx, descIdx), data)
}

// Methodref interns a CONSTANT_Methodref_info entry.
func (cp *ConstantPool) Methodref(owner, name, descriptor string) uint16 {
	classIdx := cp.Class(owner)
	natIdx := cp.NameAndType(name, descriptor)
	data := []byte{tagMethodref, 0, 0, 0, 0}
	binary.BigEndian.PutUint16(data[1:], classIdx)
	binary.BigEndian.PutUint16(data[3:], natIdx)
	return cp.add(fmt.Sprintf("m:%d:%d", classIdx, natIdx), data)
}

// Fieldref interns a CONSTANT_Fieldref_info entry.
func (cp *ConstantPool) Fieldref(owner, name, descriptor string) uint16 {
	classIdx := cp.Class(owner)
	natIdx := cp.NameAndType(name, descriptor)
	data := []byte{tagFieldref, 0, 0, 0, 0}
	binary.BigEndian.PutUint16(data[1:], classIdx)
	binary.BigEndian.PutUint16(data[3:], natIdx)
	return cp.add(fmt.Sprintf("fr:%d:%d", classIdx, natIdx), data)
}

// Count returns constant_pool_count (number of entries plus one).
func (cp *ConstantPool) Count() int {
	return len(cp.entries) + 1
}

func (cp *ConstantPool) write(buf *[]byte) {
	appendU16(buf, uint16(len(cp.entries)+1))
	for _, e := range cp.entries {
		*buf = append(*buf, e...)
	}
}

// ClassWriter assembles one public class extending java/lang/Object.
type ClassWriter struct {
	pool       *ConstantPool
	thisClass  uint16
	superClass uint16
	methods    []*MethodWriter
}

// NewClassWriter starts a class with the given internal name (slashes, not
// dots, as package separators).
func NewClassWriter(name string) *ClassWriter {
	pool := newConstantPool()
	return &ClassWriter{
		pool:       pool,
		thisClass:  pool.Class(name),
		superClass: pool.Class("java/lang/Object"),
	}
}

// Pool exposes the constant pool for direct interning.
func (cw *ClassWriter) Pool() *ConstantPool {
	return cw.pool
}

// NewMethod begins a method. Instructions are appended through the returned
// MethodWriter; the method is finalized when Bytes is called on the class.
func (cw *ClassWriter) NewMethod(access uint16, name, descriptor string) *MethodWriter {
	mw := &MethodWriter{
		pool:      cw.pool,
		access:    access,
		name:      name,
		nameIdx:   cw.pool.Utf8(name),
		descIdx:   cw.pool.Utf8(descriptor),
		reachable: true,
		maxLocals: argSlots(descriptor),
	}
	if access&AccStatic == 0 {
		mw.maxLocals++ // implicit this
	}
	cw.methods = append(cw.methods, mw)
	return mw
}

// EmitDefaultConstructor adds the standard no-arg constructor that chains to
// java/lang/Object.<init>.
func (cw *ClassWriter) EmitDefaultConstructor() {
	mw := cw.NewMethod(AccPublic, "<init>", "()V")
	mw.LoadRef(0)
	mw.InvokeSpecial("java/lang/Object", "<init>", "()V")
	mw.Return()
}

// Bytes serializes the class file. It fails if any method left a label
// unbound or recorded an emission error.
func (cw *ClassWriter) Bytes() ([]byte, error) {
	var methodBytes []byte
	for _, mw := range cw.methods {
		mb, err := mw.finish()
		if err != nil {
			return nil, err
		}
		methodBytes = append(methodBytes, mb...)
	}

	var buf []byte
	appendU32(&buf, magic)
	appendU16(&buf, minorVersion)
	appendU16(&buf, majorVersion)
	cw.pool.write(&buf)
	appendU16(&buf, AccPublic|AccSuper)
	appendU16(&buf, cw.thisClass)
	appendU16(&buf, cw.superClass)
	appendU16(&buf, 0) // interfaces_count
	appendU16(&buf, 0) // fields_count
	appendU16(&buf, uint16(len(cw.methods)))
	buf = append(buf, methodBytes...)
	appendU16(&buf, 0) // class attributes_count
	return buf, nil
}

func appendU16(buf *[]byte, v uint16) {
	*buf = append(*buf, byte(v>>8), byte(v))
}

func appendU32(buf *[]byte, v uint32) {
	*buf = append(*buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// argSlots counts the local slots a descriptor's parameters occupy. Every
// type the compiler emits (I, F, reference) is one slot wide.
func argSlots(descriptor string) int {
	n := 0
	i := 1 // skip '('
	for i < len(descriptor) && descriptor[i] != ')' {
		switch descriptor[i] {
		case 'L':
			for i < len(descriptor) && descriptor[i] != ';' {
				i++
			}
			i++
		case '[':
			i++
			continue // element type follows, counted once
		default:
			i++
		}
		n++
	}
	return n
}

// retSlots is 0 for void descriptors, 1 otherwise.
func retSlots(descriptor string) int {
	if descriptor[len(descriptor)-1] == 'V' {
		return 0
	}
	return 1
}
