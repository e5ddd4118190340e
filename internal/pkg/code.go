package pkg

import (
	"crypto/rand"
)

// RandDigits 生成 n 位数字验证码
func RandDigits(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = '0' + buf[i]%10
	}
	return string(buf), nil
}
