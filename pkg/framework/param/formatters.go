package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DecibelFormatter formats dB values
func DecibelFormatter(db float64) string {
	if db <= -60 {
		return "-∞ dB"
	}
	return fmt.Sprintf("%.1f dB", db)
}

// DecibelParser parses dB strings
func DecibelParser(str string) (float64, error) {
	if strings.Contains(str, "∞") || strings.Contains(str, "inf") {
		return -96.0, nil
	}
	str = strings.TrimSuffix(strings.TrimSpace(str), "dB")
	str = strings.TrimSuffix(strings.TrimSpace(str), "db")
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// PanFormatter formats pan position
func PanFormatter(pan float64) string {
	if math.Abs(pan) < 0.01 {
		return "C"
	} else if pan < 0 {
		return fmt.Sprintf("%.0fL", -pan*100)
	}
	return fmt.Sprintf("%.0fR", pan*100)
}

// PanParser parses pan position strings
func PanParser(str string) (float64, error) {
	str = strings.ToUpper(strings.TrimSpace(str))
	if str == "C" || str == "CENTER" {
		return 0, nil
	}

	sign := 1.0
	switch {
	case strings.HasSuffix(str, "L"):
		sign = -1
		str = strings.TrimSuffix(str, "L")
	case strings.HasSuffix(str, "R"):
		str = strings.TrimSuffix(str, "R")
	default:
		return 0, fmt.Errorf("expected C, <n>L or <n>R, got: %s", str)
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, err
	}
	return sign * val / 100, nil
}

// OnOffFormatter formats boolean as On/Off
func OnOffFormatter(value float64) string {
	if value > 0.5 {
		return "On"
	}
	return "Off"
}

// OnOffParser parses On/Off strings
func OnOffParser(str string) (float64, error) {
	str = strings.ToLower(strings.TrimSpace(str))
	switch str {
	case "on", "yes", "true", "1":
		return 1, nil
	case "off", "no", "false", "0":
		return 0, nil
	default:
		return 0, fmt.Errorf("expected 'on' or 'off', got: %s", str)
	}
}
