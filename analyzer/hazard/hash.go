package hazard

import (
	"bytes"
	"strconv"

	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Hash returns highwayhash-64 of data
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// Fingerprint identifies a hazard independently of its line, whitespace in snippet is ignored
func Fingerprint(path, operator string, snippet []byte) string {
	buf := bytes.Buffer{}
	buf.WriteString(path)
	buf.WriteByte(0)
	buf.WriteString(operator)
	buf.WriteByte(0)
	buf.Write(bytes.Join(bytes.Fields(snippet), nil))
	sum, err := Hash(buf.Bytes())
	if err != nil {
		return ""
	}
	return strconv.FormatUint(sum, 16)
}
