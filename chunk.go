package filerange

// maxAccessSize is the largest number of bytes a single host
// read/write call is allowed to move, defined per backend build in
// chunk_windows.go, chunk_linux.go, chunk_darwin.go,
// chunk_unix_other.go and chunk_portable.go (spec.md §3 "Host maximum
// single-access length", §4.4). Every backend loops over this limit
// rather than trusting a single call with an arbitrarily large
// request, because Win32 read/write take 32-bit counts, Linux caps a
// single transfer at 0x7ffff000 bytes, and POSIX in general may
// short-transfer.
var maxAccessSize int64

// transferFunc performs one host call moving at most len(buf) bytes
// at off, returning the number of bytes actually transferred.
type transferFunc func(buf []byte, off int64) (int, error)

// chunked drives fn over data in maxAccessSize-sized slices starting
// at offset, advancing by the actually-transferred count each time
// (spec.md §4.4). It stops early, without error, the first time fn
// transfers fewer bytes than requested — callers reading use this to
// detect EOF; callers writing treat a short transfer from fn as a
// logic error in fn, since writes are expected to always complete a
// requested chunk or return an error.
func chunked(data []byte, offset int64, fn transferFunc) (total int, err error) {
	chunk := maxAccessSize
	if chunk <= 0 || chunk > int64(len(data)) {
		chunk = int64(len(data))
	}
	if chunk == 0 {
		chunk = 1
	}
	for total < len(data) {
		end := total + int(chunk)
		if end > len(data) {
			end = len(data)
		}
		requested := end - total
		n, ferr := fn(data[total:end], offset+int64(total))
		total += n
		if ferr != nil {
			return total, ferr
		}
		if n < requested {
			// fn transferred less than requested: for reads this
			// means EOF; for writes the caller compares the returned
			// total with len(data) and reports ErrBadIO, so it is
			// safe to stop here either way.
			break
		}
	}
	return total, nil
}
