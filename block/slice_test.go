package block

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/arloliu/cramcodec/errs"
	"github.com/arloliu/cramcodec/format"
	"github.com/stretchr/testify/require"
)

func TestSlice_Lookup(t *testing.T) {
	core := New(format.ContentCore, 5, []byte{0xff})
	ext5 := NewExternal(5, []byte("five"))
	ext9 := NewExternal(9, []byte("nine"))
	dup9 := NewExternal(9, []byte("dup"))

	for _, indexed := range []bool{false, true} {
		s := NewSlice(core, ext5, ext9, dup9)
		if indexed {
			s.Index()
		}
		require.Equal(t, indexed, s.Indexed())

		b, err := s.Lookup(5)
		require.NoError(t, err)
		require.Same(t, ext5, b, "core blocks must not satisfy external lookups")

		b, err = s.Lookup(9)
		require.NoError(t, err)
		require.Same(t, ext9, b, "first block with an id wins")

		_, err = s.Lookup(42)
		require.ErrorIs(t, err, errs.ErrBlockNotFound)
	}
}

func TestSlice_AddAfterIndex(t *testing.T) {
	s := NewSlice()
	s.Index()

	ext := NewExternal(3, nil)
	s.Add(ext)
	s.Add(New(format.ContentCore, 4, nil))

	b, err := s.Lookup(3)
	require.NoError(t, err)
	require.Same(t, ext, b)

	_, err = s.Lookup(4)
	require.ErrorIs(t, err, errs.ErrBlockNotFound)
	require.Len(t, s.Blocks(), 2)
}

func TestSlice_NilLookup(t *testing.T) {
	var s *Slice
	_, err := s.Lookup(1)
	require.ErrorIs(t, err, errs.ErrBlockNotFound)
}

func TestSlice_Reset(t *testing.T) {
	a := NewExternal(1, []byte("abc"))
	b := NewExternal(2, []byte("xyz"))
	s := NewSlice(a, b)

	_, err := a.Extract(2)
	require.NoError(t, err)
	_, err = b.Extract(3)
	require.NoError(t, err)

	s.Reset()
	require.Zero(t, a.Pos())
	require.Zero(t, b.Pos())
}

func TestForEach(t *testing.T) {
	slices := make([]*Slice, 16)
	for i := range slices {
		slices[i] = NewSlice(NewExternal(1, []byte{byte(i)}))
	}

	var sum atomic.Int64
	seen := make([]bool, len(slices))
	err := ForEach(context.Background(), slices, 4, func(_ context.Context, i int, s *Slice) error {
		seen[i] = true
		b, err := s.Lookup(1)
		if err != nil {
			return err
		}
		c, err := b.ReadByte()
		if err != nil {
			return err
		}
		sum.Add(int64(c))

		return nil
	})

	require.NoError(t, err)
	require.Equal(t, int64(120), sum.Load())
	require.NotContains(t, seen, false)
}

func TestSlice_Core(t *testing.T) {
	core := New(format.ContentCore, 0, []byte{0xa0})
	s := NewSlice(NewExternal(1, []byte("x")), core, New(format.ContentCore, 0, []byte{0xff}))
	require.Same(t, core, s.Core())

	require.Nil(t, NewSlice(NewExternal(1, nil)).Core())
}

func TestForEach_PropagatesError(t *testing.T) {
	slices := []*Slice{NewSlice(), NewSlice(), NewSlice()}
	boom := errors.New("boom")

	err := ForEach(context.Background(), slices, 0, func(_ context.Context, _ int, _ *Slice) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
}
