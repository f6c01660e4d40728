// Package model はドメインモデルを定義する。
package model

import "errors"

var (
	// ErrUserNotFound は参照されたユーザーが存在しないことを示す。
	// HTTP層では200のメッセージレスポンス（ソフト失敗）として扱う。
	ErrUserNotFound = errors.New("user not found")

	// ErrValidation は書き込み時の必須フィールド制約違反を示す。
	ErrValidation = errors.New("validation failed")
)
