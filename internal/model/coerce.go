package model

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Minutes はエクササイズの所要時間（分）を表す。
// 数値変換に失敗した入力はNaNのまま保持する（入力検証は行わない）。
type Minutes float64

// IsNaN は変換に失敗した値かどうかを返す。
func (m Minutes) IsNaN() bool {
	return math.IsNaN(float64(m))
}

// MarshalJSON はNaN・無限大をnullとして、それ以外を数値として出力する。
func (m Minutes) MarshalJSON() ([]byte, error) {
	f := float64(m)
	if m.IsNaN() || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
}

// ParseMinutes は入力文字列を整数の分数に変換する。
// 先頭の空白と符号、0xプレフィックス（16進）を受け付け、先頭の数字列だけを解釈する。
// 数字が1つもない場合はNaNを返す。例: "30" → 30, "45min" → 45, "3.7" → 3, "abc" → NaN。
func ParseMinutes(s string) Minutes {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	sign := 1.0
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}

	base := 10.0
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	value := 0.0
	digits := 0
	for _, r := range s {
		d := digitValue(r)
		if d < 0 || float64(d) >= base {
			break
		}
		value = value*base + float64(d)
		digits++
	}

	if digits == 0 {
		return Minutes(math.NaN())
	}
	return Minutes(sign * value)
}

func digitValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'z':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'Z':
		return int(r-'A') + 10
	default:
		return -1
	}
}

// ParseLimit はクエリパラメータlimitを件数に変換する。
// 数値として解釈できない値、空文字、無限大は0（件数制限なし）になる。
// 小数は0方向に切り捨てる。負数はそのまま返し、解釈はストレージ層に委ねる。
func ParseLimit(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// 0x / 0o / 0b プレフィックス付きの整数表記
		i, ierr := strconv.ParseInt(s, 0, 64)
		if ierr != nil {
			return 0
		}
		return i
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(math.Trunc(f))
}
