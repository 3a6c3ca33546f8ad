// Package wire holds the stateless encode and decode routines of the
// MessagePack wire format.
//
// Encoders write one token into a caller-provided slice and always report the
// number of bytes the token needs, even when the slice was too small, so the
// caller can size once and retry. They never write a partial token.
//
// Decoders read one token from a possibly incomplete slice and report a
// DecodeResult next to the value and the token size. EmptyBuffer and
// InsufficientBuffer tell the caller to fetch more input; the size tells it
// exactly how much.
//
// Multi-byte fields are big-endian.
package wire

// Leading bytes.
const (
	PosFixIntMin byte = 0x00
	PosFixIntMax byte = 0x7f
	FixMapMin    byte = 0x80
	FixMapMax    byte = 0x8f
	FixArrayMin  byte = 0x90
	FixArrayMax  byte = 0x9f
	FixStrMin    byte = 0xa0
	FixStrMax    byte = 0xbf
	Nil          byte = 0xc0
	NeverUsed    byte = 0xc1
	False        byte = 0xc2
	True         byte = 0xc3
	Bin8         byte = 0xc4
	Bin16        byte = 0xc5
	Bin32        byte = 0xc6
	Ext8         byte = 0xc7
	Ext16        byte = 0xc8
	Ext32        byte = 0xc9
	Float32      byte = 0xca
	Float64      byte = 0xcb
	Uint8        byte = 0xcc
	Uint16       byte = 0xcd
	Uint32       byte = 0xce
	Uint64       byte = 0xcf
	Int8         byte = 0xd0
	Int16        byte = 0xd1
	Int32        byte = 0xd2
	Int64        byte = 0xd3
	FixExt1      byte = 0xd4
	FixExt2      byte = 0xd5
	FixExt4      byte = 0xd6
	FixExt8      byte = 0xd7
	FixExt16     byte = 0xd8
	Str8         byte = 0xd9
	Str16        byte = 0xda
	Str32        byte = 0xdb
	Array16      byte = 0xdc
	Array32      byte = 0xdd
	Map16        byte = 0xde
	Map32        byte = 0xdf
	NegFixIntMin byte = 0xe0
	NegFixIntMax byte = 0xff
)

const (
	fixStrMask   = 0x1f
	fixArrayMask = 0x0f
	fixMapMask   = 0x0f

	maxFixStr   = 31
	maxFixArray = 15
	maxFixMap   = 15
	minFixNeg   = -32
)

// TimestampType is the extension type code reserved for timestamps.
const TimestampType int8 = -1

// timestampCode is TimestampType as it appears on the wire.
const timestampCode byte = 0xff

// MaxTokenHeader is the largest header or scalar token in bytes: a 96-bit
// timestamp (ext8 header + 12-byte payload).
const MaxTokenHeader = 15

// Type is the coarse family a leading byte belongs to.
type Type uint8

const (
	TypeInvalid Type = iota
	TypeNil
	TypeBool
	TypeInt
	TypeUint
	TypeFloat
	TypeString
	TypeBinary
	TypeArray
	TypeMap
	TypeExtension
)

var typeNames = [...]string{
	TypeInvalid:   "invalid",
	TypeNil:       "nil",
	TypeBool:      "bool",
	TypeInt:       "int",
	TypeUint:      "uint",
	TypeFloat:     "float",
	TypeString:    "string",
	TypeBinary:    "binary",
	TypeArray:     "array",
	TypeMap:       "map",
	TypeExtension: "extension",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// TypeOf classifies a leading byte. Positive fixints and the uint forms are
// TypeUint; negative fixints and the int forms are TypeInt.
func TypeOf(code byte) Type {
	switch {
	case code <= PosFixIntMax:
		return TypeUint
	case code <= FixMapMax:
		return TypeMap
	case code <= FixArrayMax:
		return TypeArray
	case code <= FixStrMax:
		return TypeString
	case code >= NegFixIntMin:
		return TypeInt
	}
	switch code {
	case Nil:
		return TypeNil
	case False, True:
		return TypeBool
	case Bin8, Bin16, Bin32:
		return TypeBinary
	case Ext8, Ext16, Ext32, FixExt1, FixExt2, FixExt4, FixExt8, FixExt16:
		return TypeExtension
	case Float32, Float64:
		return TypeFloat
	case Uint8, Uint16, Uint32, Uint64:
		return TypeUint
	case Int8, Int16, Int32, Int64:
		return TypeInt
	case Str8, Str16, Str32:
		return TypeString
	case Array16, Array32:
		return TypeArray
	case Map16, Map32:
		return TypeMap
	}
	return TypeInvalid
}

// ExtensionHeader is the type code and payload length of an extension token.
type ExtensionHeader struct {
	Type   int8
	Length uint32
}

// Extension is a complete application extension value.
type Extension struct {
	Type int8
	Data []byte
}
