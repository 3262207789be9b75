package utils

import (
	"crypto/rand"
	"math/big"
)

const tokenChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ResetTokenLength — длина токена сброса пароля.
const ResetTokenLength = 40

// RandomToken возвращает криптостойкую случайную строку из латиницы и цифр.
func RandomToken(length int) (string, error) {
	max := big.NewInt(int64(len(tokenChars)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = tokenChars[n.Int64()]
	}
	return string(b), nil
}
