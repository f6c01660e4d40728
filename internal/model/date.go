package model

import (
	"regexp"
	"strconv"
	"time"
)

const (
	// DateLayout は保存時の日付フォーマット（YYYY-MM-DD）。
	DateLayout = "2006-01-02"

	// LongDateLayout はレスポンスで返す可読な日付フォーマット。
	LongDateLayout = "Mon Jan 02 2006"

	// EpochDate はログ照会の開始日のデフォルト値。
	EpochDate = "1970-01-01"

	// InvalidDate は解釈できない日付を表示するときの文字列。
	InvalidDate = "Invalid Date"
)

// Today は指定時刻のUTC日付をYYYY-MM-DD形式で返す。
func Today(now time.Time) string {
	return now.UTC().Format(DateLayout)
}

// isoDatePattern は範囲外の日（例: 2023-02-30）を繰り上げて扱うための日付パターン。
var isoDatePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// fallbackLayouts はYYYY-MM-DD以外に受け付ける日付表記。
var fallbackLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01",
	"2006",
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	LongDateLayout,
}

// ParseDate は保存された日付文字列をUTCの時刻に変換する。
// YYYY-MM-DDでは月は1〜12、日は1〜31を受け付け、月末を超える日は翌月に繰り上げる。
func ParseDate(s string) (time.Time, bool) {
	if m := isoDatePattern.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return time.Time{}, false
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatLongDate は保存された日付を "Mon Jan 02 2006" 形式で返す。
// 解釈できない場合は "Invalid Date" を返す。
func FormatLongDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return InvalidDate
	}
	return t.Format(LongDateLayout)
}
