package domain

import "math"

// RoundMoney 金额四舍五入到分
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
