// Package plan describes which codec encodes each data series and builds the
// matching encoders and header blobs.
//
// Plans are written in YAML:
//
//	series:
//	  - name: RL
//	    type: Int
//	    codec: HUFFMAN
//	    frequencies: {100: 1}
//	  - name: RN
//	    type: ByteArray
//	    codec: BYTE_ARRAY_STOP
//	    stop_byte: 9
//	    content_id: 3
//	  - name: QS
//	    type: ByteArray
//	    codec: BYTE_ARRAY_LEN
//	    length: {codec: EXTERNAL, content_id: 4}
//	    value: {codec: EXTERNAL, content_id: 5}
//
// Huffman encodings take their statistics from the map passed to Build,
// keyed by series name, or by "<name>/length" and "<name>/value" for the
// parts of a BYTE_ARRAY_LEN encoding. The frequencies field is used when no
// statistics are supplied.
package plan
