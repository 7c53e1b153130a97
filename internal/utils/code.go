package utils

import "crypto/rand"

// couponAlphabet deliberately omits 0/O/1/I/L so codes read unambiguously
// when printed on a receipt or spoken over the counter.
const couponAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// CouponCodeLen is the length of generated coupon codes.  31 symbols at
// length 10 gives about 49 bits of entropy, which is unguessable for a
// shop-scale coupon space; uniqueness is still enforced by the database.
const CouponCodeLen = 10

// NewCouponCode returns a fresh random coupon code drawn from the coupon
// alphabet using crypto/rand.  Bytes at or above the largest multiple of
// the alphabet size are rejected and redrawn so every symbol is equally
// likely; a plain modulo would over-represent the first 256%31 symbols.
func NewCouponCode() (string, error) {
	const limit = 256 - 256%len(couponAlphabet)
	out := make([]byte, 0, CouponCodeLen)
	buf := make([]byte, 2*CouponCodeLen)
	for len(out) < CouponCodeLen {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, couponAlphabet[int(b)%len(couponAlphabet)])
			if len(out) == CouponCodeLen {
				break
			}
		}
	}
	return string(out), nil
}
