//go:build unix

package mmfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestOpenSourceBytes(t *testing.T) {
	data := []byte("hello world test data for mmap")
	path := writeFile(t, data)

	src, err := OpenSource[byte](path, Normal)
	require.NoError(t, err)
	defer src.Close()

	assert.True(t, src.IsOpen())
	assert.Equal(t, int64(len(data)), src.Bytes())
	assert.Equal(t, len(data), src.Len())
	assert.Equal(t, data, src.Raw())
	assert.Equal(t, data, src.Data())
}

func TestOpenSourceTypedLen(t *testing.T) {
	// 10 bytes is 2 whole uint32 elements plus a 2-byte tail.
	path := writeFile(t, make([]byte, 10))

	src, err := OpenSource[uint32](path, Normal)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, int64(10), src.Bytes())
	assert.Equal(t, 2, src.Len())
	assert.Len(t, src.Raw(), 10)

	visited := 0
	for range src.Values() {
		visited++
	}
	assert.Equal(t, 2, visited)
}

func TestOpenSourceNonexistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.bin")

	src, err := OpenSource[byte](path, Normal)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileOpen))
	assert.False(t, errors.Is(err, ErrMapping))
	assert.Nil(t, src)
}

func TestOpenSourceEmptyFile(t *testing.T) {
	path := writeFile(t, nil)

	_, err := OpenSource[byte](path, Normal)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMapping))
	assert.True(t, errors.Is(err, ErrEmptyFile))
}

func TestSourceCloseIdempotent(t *testing.T) {
	path := writeFile(t, []byte("close test"))

	src, err := OpenSource[byte](path, Normal)
	require.NoError(t, err)

	require.NoError(t, src.Close())
	assert.False(t, src.IsOpen())
	assert.Equal(t, int64(0), src.Bytes())
	assert.Equal(t, 0, src.Len())
	assert.Nil(t, src.Data())
	assert.Nil(t, src.Raw())

	// Second close is a no-op.
	require.NoError(t, src.Close())
	assert.False(t, src.IsOpen())
}

func TestSourceAdviceVariants(t *testing.T) {
	path := writeFile(t, make([]byte, 4096))

	for _, adv := range []Advice{Normal, Random, Sequential} {
		t.Run(adv.String(), func(t *testing.T) {
			src, err := OpenSource[byte](path, adv)
			require.NoError(t, err)
			require.NoError(t, src.Close())
		})
	}
}

func TestOpenSourceInvalidAdvice(t *testing.T) {
	path := writeFile(t, []byte("data"))

	src, err := OpenSource[byte](path, Advice(42))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAdvise))
	assert.Nil(t, src)
}

func TestSourceAt(t *testing.T) {
	path := writeFile(t, []byte{1, 2, 3, 4})

	src, err := OpenSource[uint16](path, Normal)
	require.NoError(t, err)
	defer src.Close()

	require.Equal(t, 2, src.Len())
	assert.Equal(t, src.Data()[0], src.At(0))
	assert.Equal(t, src.Data()[1], src.At(1))
}

func TestSourceValuesRestartable(t *testing.T) {
	data := []byte{10, 20, 30, 40}
	path := writeFile(t, data)

	src, err := OpenSource[byte](path, Sequential)
	require.NoError(t, err)
	defer src.Close()

	collect := func() []byte {
		var got []byte
		for v := range src.Values() {
			got = append(got, v)
		}
		return got
	}
	assert.Equal(t, data, collect())
	assert.Equal(t, data, collect())

	// Early break must stop the sequence cleanly.
	var first byte
	for v := range src.Values() {
		first = v
		break
	}
	assert.Equal(t, byte(10), first)
}

func TestSourceLockUnlock(t *testing.T) {
	path := writeFile(t, make([]byte, 4096))

	src, err := OpenSource[byte](path, Normal)
	require.NoError(t, err)
	defer src.Close()

	if err := src.Lock(); err != nil {
		t.Skipf("mlock not permitted: %v", err)
	}
	require.NoError(t, src.Unlock())
}

func TestSourceClosedLock(t *testing.T) {
	path := writeFile(t, []byte("x"))

	src, err := OpenSource[byte](path, Normal)
	require.NoError(t, err)
	require.NoError(t, src.Close())

	assert.ErrorIs(t, src.Lock(), ErrClosed)
	assert.ErrorIs(t, src.Unlock(), ErrClosed)
}
