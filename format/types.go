package format

import "strconv"

type (
	// CodecKind identifies a codec variant on the wire. Values match the
	// encoding ids written into codec headers.
	CodecKind int32
	// DataType is the element type of the data series a codec decodes.
	DataType uint8
	// ContentType tags a block with the kind of data it carries.
	ContentType uint8
	// BlockMethod identifies the compression applied to a block payload.
	BlockMethod uint8
)

const (
	KindNull          CodecKind = 0 // KindNull is the empty codec, never decodable.
	KindExternal      CodecKind = 1 // KindExternal reads values from an external block.
	KindGolomb        CodecKind = 2 // KindGolomb is reserved and not implemented.
	KindHuffman       CodecKind = 3 // KindHuffman is canonical Huffman coding.
	KindByteArrayLen  CodecKind = 4 // KindByteArrayLen is a length codec followed by a value codec.
	KindByteArrayStop CodecKind = 5 // KindByteArrayStop reads bytes up to a stop byte.
	KindBeta          CodecKind = 6 // KindBeta is fixed bit-width binary coding.
	KindSubexp        CodecKind = 7 // KindSubexp is Elias subexponential coding.
	KindGolombRice    CodecKind = 8 // KindGolombRice is reserved and not implemented.
	KindGamma         CodecKind = 9 // KindGamma is Elias gamma coding.
)

const (
	TypeInt       DataType = 0x1 // TypeInt is a 32-bit integer series.
	TypeLong      DataType = 0x2 // TypeLong is a 64-bit integer series stored as ITF8.
	TypeByte      DataType = 0x3 // TypeByte is a single byte series.
	TypeByteArray DataType = 0x4 // TypeByteArray is a variable length byte series.
)

const (
	ContentFileHeader        ContentType = 0x0 // ContentFileHeader holds the file header.
	ContentCompressionHeader ContentType = 0x1 // ContentCompressionHeader holds codec headers.
	ContentMappedSlice       ContentType = 0x2 // ContentMappedSlice holds a slice header.
	ContentExternal          ContentType = 0x4 // ContentExternal holds per-series external data.
	ContentCore              ContentType = 0x5 // ContentCore holds the bit-packed core data.
)

const (
	MethodRaw  BlockMethod = 0x0 // MethodRaw stores the payload uncompressed.
	MethodGzip BlockMethod = 0x1 // MethodGzip compresses the payload with gzip.
	MethodZstd BlockMethod = 0x5 // MethodZstd compresses the payload with Zstandard.
	MethodS2   BlockMethod = 0x6 // MethodS2 compresses the payload with S2.
	MethodLZ4  BlockMethod = 0x7 // MethodLZ4 compresses the payload with LZ4 block format.
)

func (k CodecKind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindExternal:
		return "EXTERNAL"
	case KindGolomb:
		return "GOLOMB"
	case KindHuffman:
		return "HUFFMAN"
	case KindByteArrayLen:
		return "BYTE_ARRAY_LEN"
	case KindByteArrayStop:
		return "BYTE_ARRAY_STOP"
	case KindBeta:
		return "BETA"
	case KindSubexp:
		return "SUBEXP"
	case KindGolombRice:
		return "GOLOMB_RICE"
	case KindGamma:
		return "GAMMA"
	default:
		return "UNKNOWN(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseCodecKind returns the kind whose String form equals name.
func ParseCodecKind(name string) (CodecKind, bool) {
	for k := KindNull; k <= KindGamma; k++ {
		if k.String() == name {
			return k, true
		}
	}

	return 0, false
}

func (t DataType) String() string {
	switch t {
	case TypeInt:
		return "Int"
	case TypeLong:
		return "Long"
	case TypeByte:
		return "Byte"
	case TypeByteArray:
		return "ByteArray"
	default:
		return "Unknown"
	}
}

// IsInteger reports whether values of this type are stored as ITF8 integers
// inside external blocks.
func (t DataType) IsInteger() bool {
	return t == TypeInt || t == TypeLong
}

func (c ContentType) String() string {
	switch c {
	case ContentFileHeader:
		return "FileHeader"
	case ContentCompressionHeader:
		return "CompressionHeader"
	case ContentMappedSlice:
		return "MappedSlice"
	case ContentExternal:
		return "External"
	case ContentCore:
		return "Core"
	default:
		return "Unknown"
	}
}

func (m BlockMethod) String() string {
	switch m {
	case MethodRaw:
		return "Raw"
	case MethodGzip:
		return "Gzip"
	case MethodZstd:
		return "Zstd"
	case MethodS2:
		return "S2"
	case MethodLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
