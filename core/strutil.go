package core

// utoa converts an unsigned integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}

	return string(buf[pos:])
}

// utox converts an unsigned integer to a 0x-prefixed lowercase hex string
func utox(n uint32) string {
	const digits = "0123456789abcdef"

	var buf [10]byte
	pos := len(buf)
	for {
		pos--
		buf[pos] = digits[n&0xF]
		n >>= 4
		if n == 0 {
			break
		}
	}
	pos--
	buf[pos] = 'x'
	pos--
	buf[pos] = '0'

	return string(buf[pos:])
}
