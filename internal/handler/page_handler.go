package handler

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

//go:embed views/index.html public
var assets embed.FS

// indexSyncTimeout はランディングページ表示後のインデックス同期に与える時間。
const indexSyncTimeout = 30 * time.Second

// IndexSyncer はコレクションのインデックスを同期するインターフェース。
type IndexSyncer interface {
	SyncIndexes(ctx context.Context) error
}

// PageHandler はランディングページと静的ファイルを配信する。
type PageHandler struct {
	syncers []IndexSyncer
	index   []byte
	public  http.Handler
}

// NewPageHandler はPageHandlerを生成する。
// syncersはランディングページの配信後にインデックス同期を行う対象。
func NewPageHandler(syncers ...IndexSyncer) *PageHandler {
	index, err := assets.ReadFile("views/index.html")
	if err != nil {
		panic("handler: embedded index.html is missing: " + err.Error())
	}
	public, err := fs.Sub(assets, "public")
	if err != nil {
		panic("handler: embedded public directory is missing: " + err.Error())
	}

	return &PageHandler{
		syncers: syncers,
		index:   index,
		public:  http.StripPrefix("/public/", http.FileServer(http.FS(public))),
	}
}

// Index はランディングページを返す。
// レスポンスを送信し終えた後にインデックス同期を行い、失敗はログのみに記録する。
// GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(h.index)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(h.index); err != nil {
		slog.Warn("failed to write landing page", slog.String("error", err.Error()))
	}
	if err := http.NewResponseController(w).Flush(); err != nil {
		slog.Debug("response flush not supported", slog.String("error", err.Error()))
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), indexSyncTimeout)
	defer cancel()
	h.syncIndexes(ctx)
}

// Public は静的ファイルを返す。
// GET /public/*
func (h *PageHandler) Public(w http.ResponseWriter, r *http.Request) {
	h.public.ServeHTTP(w, r)
}

func (h *PageHandler) syncIndexes(ctx context.Context) {
	for _, s := range h.syncers {
		if err := s.SyncIndexes(ctx); err != nil {
			slog.Error("index synchronization failed", slog.String("error", err.Error()))
		}
	}
}
