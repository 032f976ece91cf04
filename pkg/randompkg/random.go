// Package randompkg provides functionality for generating random application items in tests.
package randompkg

import (
	"crypto/rand"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// Float64 is a shortcut for generating a random float between 0 and 1 using crypto/rand.
func Float64() float64 {
	return float64(Intn(1<<32)) / (1 << 32)
}

// IDBetween generates a random account id between min and max.
func IDBetween(min, max int) int64 {
	return int64(min) + Intn(max-min+1)
}

// FloatBetween generates a random decimal number between min and max rounded to 4 decimals.
func FloatBetween(min, max float64) float64 {
	numInRange := min + Float64()*(max-min)
	return math.Floor(numInRange*10_000) / 10_000
}

// String generates a random string of length n.
func String(n int) string {
	var sb strings.Builder

	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// HolderName generates a random account holder name.
func HolderName() string {
	return capitalize(String(6)) + " " + capitalize(String(8))
}

func capitalize(s string) string {
	return strings.ToUpper(s[:1]) + s[1:]
}

// MoneyAmountBetween generates a random amount of money between min and max rounded to 4 decimals.
func MoneyAmountBetween(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(FloatBetween(min, max))
}
