package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// maxBodyBytes はリクエストボディの上限サイズ。
const maxBodyBytes = 100 << 10

// invalidBodyMessage はボディの解析に失敗したときに返すメッセージ。
const invalidBodyMessage = "Invalid request body!"

// errInvalidBody はボディの解析失敗を表す。
var errInvalidBody = errors.New("invalid request body")

// bodyFields はリクエストボディから取り出したフィールドを文字列として保持する。
// 存在しないフィールドは空文字として扱う。
type bodyFields map[string]string

// Get はフィールドの値を返す。
func (f bodyFields) Get(key string) string {
	return f[key]
}

// parseBody はJSONまたはフォーム形式のボディを解析する。
// JSONのスカラー値は文字列化し、変換はサービス層に委ねる。
// それ以外のContent-Type（multipart/form-dataを含む）のボディは無視して空のフィールドを返す。
func parseBody(w http.ResponseWriter, r *http.Request) (bodyFields, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return bodyFields{}, nil
	}

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return parseJSONBody(r.Body)
	case mediaType == "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidBody, err)
		}
		return formFields(r), nil
	default:
		return bodyFields{}, nil
	}
}

// parseJSONBody はJSONオブジェクトのボディを解析する。
// 空のボディは空のオブジェクトとして扱う。トップレベルが配列の場合はフィールドなしとする。
func parseJSONBody(body io.Reader) (bodyFields, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return bodyFields{}, nil
		}
		return nil, fmt.Errorf("%w: %v", errInvalidBody, err)
	}

	switch v := raw.(type) {
	case map[string]any:
		fields := make(bodyFields, len(v))
		for key, value := range v {
			fields[key] = stringifyJSONValue(value)
		}
		return fields, nil
	case []any:
		return bodyFields{}, nil
	default:
		return nil, fmt.Errorf("%w: top-level value must be an object or array", errInvalidBody)
	}
}

// stringifyJSONValue はJSONの値を文字列に変換する。nullは空文字とする。
func stringifyJSONValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case json.Number:
		return value.String()
	case bool:
		return strconv.FormatBool(value)
	default:
		b, err := json.Marshal(value)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// formFields はフォームの各キーの最初の値を取り出す。
func formFields(r *http.Request) bodyFields {
	fields := make(bodyFields, len(r.PostForm))
	for key := range r.PostForm {
		fields[key] = r.PostForm.Get(key)
	}
	return fields
}
