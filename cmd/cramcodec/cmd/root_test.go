package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arloliu/cramcodec/errs"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func TestInspect(t *testing.T) {
	out, _, err := run(t, "inspect", "06020008090101")
	require.NoError(t, err)
	require.Contains(t, out, "offset=0 size=4\n  BETA offset=0 nbits=8\n")
	require.Contains(t, out, "offset=4 size=3\n  GAMMA offset=1\n")
}

func TestInspect_Huffman(t *testing.T) {
	out, _, err := run(t, "inspect", "0306020102020101")
	require.NoError(t, err)
	require.Contains(t, out, "HUFFMAN codes=2")
	require.Contains(t, out, "symbol=1 len=1 code=0\n")
	require.Contains(t, out, "symbol=2 len=1 code=1\n")
}

func TestInspect_Errors(t *testing.T) {
	_, _, err := run(t, "inspect", "zz")
	require.Error(t, err)

	_, stderr, err := run(t, "inspect", "0000")
	require.ErrorIs(t, err, errs.ErrUnsupportedCodec)
	require.Contains(t, stderr, "level=warn")

	_, _, err = run(t, "inspect", "--type", "Float", "06020008")
	require.Error(t, err)
}

func TestHuffman(t *testing.T) {
	out, _, err := run(t, "huffman", "1:3", "2:1")
	require.NoError(t, err)
	require.Contains(t, out, "SYMBOL")
	require.Contains(t, out, "header: 0306020102020101\n")

	_, _, err = run(t, "huffman", "1-3")
	require.Error(t, err)

	_, _, err = run(t, "huffman", "1:0")
	require.Error(t, err)
}

func TestPlan_Default(t *testing.T) {
	out, _, err := run(t, "plan", "--verify")
	require.NoError(t, err)
	require.Contains(t, out, "BYTE_ARRAY_STOP")
	require.Contains(t, out, "BYTE_ARRAY_LEN")
	require.Contains(t, out, "verified: all headers decode\n")
}

func TestPlan_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	doc := `series:
  - name: MQ
    type: Int
    codec: BETA
    nbits: 8
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	out, _, err := run(t, "plan", path)
	require.NoError(t, err)
	require.Contains(t, out, "06020008")
	require.Contains(t, out, "total: 4 bytes\n")

	_, _, err = run(t, "plan", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestDecode_Gamma(t *testing.T) {
	out, _, err := run(t, "decode", "090101", "--bits", "a0", "-n", "2", "--metrics")
	require.NoError(t, err)
	require.Contains(t, out, "0 1\n")
	require.Contains(t, out, `cramcodec_values_decoded_total{kind="GAMMA"} 2`)
	require.Contains(t, out, `cramcodec_codec_init_total{direction="decode",kind="GAMMA",result="ok"} 1`)
}

func TestDecode_ByteArrayStop(t *testing.T) {
	out, _, err := run(t, "decode", "05050903000000", "--type", "ByteArray",
		"--block", "3=6869096f6b09", "-n", "2")
	require.NoError(t, err)
	require.Equal(t, "\"hi\"\n\"ok\"\n", out)
}

func TestDecode_Errors(t *testing.T) {
	_, _, err := run(t, "decode", "05050903000000", "--type", "ByteArray", "-n", "1")
	require.ErrorIs(t, err, errs.ErrBlockNotFound)

	_, _, err = run(t, "decode", "090101", "--bits", "00", "-n", "1")
	require.Error(t, err)

	_, _, err = run(t, "decode", "090101", "--block", "nope")
	require.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	_, _, err := run(t, "--log-level", "verbose", "inspect", "06020008")
	require.Error(t, err)

	_, stderr, err := run(t, "--log-level", "error", "inspect", "0000")
	require.Error(t, err)
	require.NotContains(t, stderr, "level=warn")
}

func TestRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	doc := `series:
  - name: FN
    type: Int
    codec: GAMMA
    offset: 1
  - name: RN
    type: ByteArray
    codec: BYTE_ARRAY_STOP
    stop_byte: 9
    content_id: 3
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	out, _, err := run(t, "records", path,
		"--slice", "records=2,core=a0,3=6869096f6b09",
		"--slice", "records=1,core=80,3=7809",
		"--limit", "2")
	require.NoError(t, err)
	require.Equal(t, "slice 0: 2 records\n  FN: 0 1\n  RN: \"hi\" \"ok\"\n"+
		"slice 1: 1 records\n  FN: 0\n  RN: \"x\"\n", out)

	// The same headers given explicitly.
	out, _, err = run(t, "records", path, "--headers", "090101 05050903000000",
		"--slice", "records=1,core=80,3=7809")
	require.NoError(t, err)
	require.Contains(t, out, "RN: \"x\"\n")
}

func TestRecords_Errors(t *testing.T) {
	_, _, err := run(t, "records", "--slice", "records=x")
	require.Error(t, err)

	_, _, err = run(t, "records", "--slice", "core")
	require.Error(t, err)

	_, _, err = run(t, "records", "--headers", "090101", "--slice", "records=1")
	require.Error(t, err)
}
