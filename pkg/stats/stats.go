package stats

import (
	"time"
	"unicode/utf8"
)

// Summary describes one batch of accepted passwords.
type Summary struct {
	Count     int
	AvgScore  float64
	MinScore  float64
	MaxScore  float64
	AvgLength float64
	AvgBits   float64
}

type DayData struct {
	Date      time.Time
	Sessions  int64
	Passwords int64
}

// Summarize aggregates scores and lengths. passwords and scores are paired by index.
func Summarize(passwords []string, scores []float64) Summary {
	n := min(len(passwords), len(scores))
	if n == 0 {
		return Summary{}
	}

	s := Summary{Count: n, MinScore: scores[0], MaxScore: scores[0]}
	var totalScore float64
	var totalLen int
	for i := 0; i < n; i++ {
		totalScore += scores[i]
		totalLen += utf8.RuneCountInString(passwords[i])
		if scores[i] < s.MinScore {
			s.MinScore = scores[i]
		}
		if scores[i] > s.MaxScore {
			s.MaxScore = scores[i]
		}
	}
	s.AvgScore = totalScore / float64(n)
	s.AvgLength = float64(totalLen) / float64(n)
	s.AvgBits = s.AvgLength * BitsPerChar
	return s
}

// BitsPerChar is the rough entropy credited per character in progress output.
const BitsPerChar = 4

// EntropyBits is a display estimate, not a strength guarantee.
func EntropyBits(password string) int {
	return utf8.RuneCountInString(password) * BitsPerChar
}

// Speed returns items per second.
func Speed(count int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(count) / elapsed.Seconds()
}

func CalculateDailyAverage(days []DayData) float64 {
	if len(days) == 0 {
		return 0
	}
	var total int64
	for _, d := range days {
		total += d.Passwords
	}
	return float64(total) / float64(len(days))
}

// FindPeak returns the index and value of the largest entry; the first wins ties.
func FindPeak(values []int64) (index int, count int64) {
	for i, c := range values {
		if c > count {
			index = i
			count = c
		}
	}
	return
}

func FormatCount(count int64) string {
	if count >= 1000000 {
		return formatFloat(float64(count)/1000000) + "M"
	}
	if count >= 1000 {
		return formatFloat(float64(count)/1000) + "K"
	}
	return formatInt(count)
}

func formatFloat(f float64) string {
	intPart := int64(f)
	if f == float64(intPart) {
		return formatInt(intPart)
	}
	// Get first decimal digit
	decimalPart := int((f - float64(intPart)) * 10)
	return formatInt(intPart) + "." + string(byte('0'+decimalPart))
}

func formatInt(i int64) string {
	if i == 0 {
		return "0"
	}
	var result []byte
	for i > 0 {
		result = append([]byte{byte('0' + i%10)}, result...)
		i /= 10
	}
	return string(result)
}
