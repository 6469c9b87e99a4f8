package reads

import (
	"bufio"
	"io"

	gzip "github.com/klauspost/pgzip"
)

const bufSize = 4 << 20 // 4 MiB

// maybeGunzip sniffs the gzip magic and transparently decompresses.
func maybeGunzip(r io.Reader, cl *closers) (io.Reader, error) {
	br := bufio.NewReaderSize(r, bufSize)
	magic, err := br.Peek(2)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		*cl = append(*cl, zr)
		return zr, nil
	}
	return br, nil
}
