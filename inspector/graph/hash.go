package graph

import (
	"github.com/minio/highwayhash"
)

var hashKey = []byte("phpuml-activity-fingerprint-key!")

// Hash returns a 64-bit highwayhash of data
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}
