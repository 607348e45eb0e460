package cpu

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/lunixbochs/archcore/go/models"
)

func checkSize(size int) error {
	switch size {
	case 1, 2, 4, 8, 16, 32, 64:
		return nil
	}
	return errors.Wrapf(models.ErrInvalidMemoryAccess, "unsupported uint size: %d", size)
}

// PackUint encodes n into size bytes. It fails if n does not fit.
func PackUint(order binary.ByteOrder, size int, buf []byte, n models.Uint512) ([]byte, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if buf == nil {
		buf = make([]byte, size)
	} else if len(buf) < size {
		return nil, errors.Errorf("buffer too small (%d < %d)", len(buf), size)
	}
	if !n.Fits(uint32(size) * 8) {
		return nil, errors.Wrapf(models.ErrValueTooLarge, "%s in %d bytes", n, size)
	}
	copy(buf, n.Bytes(size, order))
	return buf[:size], nil
}

func UnpackUint(order binary.ByteOrder, size int, buf []byte) (models.Uint512, error) {
	if err := checkSize(size); err != nil {
		return models.Uint512{}, err
	}
	if len(buf) < size {
		return models.Uint512{}, errors.Errorf("buffer too small (%d < %d)", len(buf), size)
	}
	return models.Uint512FromBytes(buf[:size], order), nil
}
