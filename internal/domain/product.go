package domain

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Product is a catalog entry identified by its code.
// Two products are the same product when their codes match.
type Product struct {
	code        int64
	description string
}

// NewProduct accepts any code and description, the empty string included.
// An absent description can only occur at the API boundary.
func NewProduct(code int64, description string) Product {
	return Product{
		code:        code,
		description: description,
	}
}

func (p Product) Code() int64 {
	return p.code
}

func (p Product) Description() string {
	return p.description
}

func (p Product) Equal(other Product) bool {
	return p.code == other.code
}

// Hash is consistent with Equal: only the code is hashed.
func (p Product) Hash() uint64 {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(p.code))

	return xxhash.Sum64(buf[:])
}
