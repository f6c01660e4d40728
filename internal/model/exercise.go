// Package model はドメインモデルを定義する。
package model

import "fmt"

// Exercise はユーザーに紐づくエクササイズ記録を表す。
// Usernameは作成時点のユーザー名の非正規化コピーで、以後同期しない。
type Exercise struct {
	ID          string
	UserID      string
	Username    string
	Description string
	Duration    Minutes
	Date        string // YYYY-MM-DD（カレンダー上の妥当性は検証しない）
}

// Validate は書き込み時の必須フィールド制約を検証する。
// durationはNaNでも保存を許容するため、ここではdescriptionのみを検証する。
func (e *Exercise) Validate() error {
	if e.Description == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	return nil
}

// LogEntry はログ照会で返すエクササイズの射影。
type LogEntry struct {
	Description string
	Duration    Minutes
	Date        string
}

// LogQuery はエクササイズログの照会条件を表す。
// From/ToはYYYY-MM-DD文字列で、両端を含む辞書順比較で絞り込む。
// Limitが0の場合は件数制限なしを意味する。
type LogQuery struct {
	From  string
	To    string
	Limit int64
}

// ExerciseLog はユーザーとその絞り込み済みエクササイズ一覧を表す。
type ExerciseLog struct {
	User    User
	Entries []LogEntry
}
