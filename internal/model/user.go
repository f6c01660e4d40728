// Package model はドメインモデルを定義する。
package model

// User はエクササイズを記録するアカウントを表す。
// IDはストレージ層が生成する不透明な識別子（ObjectIDの16進文字列）。
type User struct {
	ID       string
	Username string
}

// DeleteResult は一括削除の結果を表す。
type DeleteResult struct {
	Acknowledged bool
	DeletedCount int64
}
