package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/debemdeboas/the-draft/internal/config"
	"github.com/debemdeboas/the-draft/internal/draft"
	"github.com/debemdeboas/the-draft/internal/editor"
	"github.com/debemdeboas/the-draft/internal/export"
	"github.com/debemdeboas/the-draft/internal/imagestore"
	"github.com/debemdeboas/the-draft/internal/logger"
	"github.com/debemdeboas/the-draft/internal/model"
	"github.com/debemdeboas/the-draft/internal/notify"
	"github.com/debemdeboas/the-draft/internal/render"
	"github.com/debemdeboas/the-draft/internal/repository"
	"github.com/debemdeboas/the-draft/internal/routes"
	"github.com/debemdeboas/the-draft/internal/store"
	"github.com/debemdeboas/the-draft/internal/util"
)

var clients = notify.NewClients()

var kvStore store.Store
var postRepository repository.PostRepository
var surface *editor.HeadlessSurface
var scheduler *editor.QueueScheduler
var session *editor.Session

// sessionMu serializes handler access to the editing session. The
// engine is single-threaded and cooperative; concurrent requests take
// turns instead of interleaving surface mutations.
var sessionMu sync.Mutex

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Msg("Error loading .env file")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	if err := config.LoadConfig(configPath); err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	cfg := config.AppConfig

	l := logger.New(cfg.Logging.Level)
	config.SetLogger(l)
	store.SetLogger(l)
	draft.SetLogger(l)
	editor.SetLogger(l)
	imagestore.SetLogger(l)
	render.SetLogger(l)
	repository.SetLogger(l)

	switch cfg.Storage.Driver {
	case "memory":
		kvStore = store.NewMemoryStore(cfg.Storage.QuotaBytes)
	default:
		sqlStore, err := store.NewSQLiteStore(cfg.Storage.Path)
		if err != nil {
			l.Fatal().Err(err).Msg("Error opening storage")
		}
		defer sqlStore.Close()
		kvStore = sqlStore
	}

	var images imagestore.Store
	if cfg.Images.Driver == "s3" {
		images = imagestore.NewS3Store(
			os.Getenv("S3_ACCESS_KEY_ID"),
			os.Getenv("S3_ACCESS_KEY_SECRET"),
			cfg.Images.S3.Endpoint,
			cfg.Images.S3.Bucket,
			cfg.Images.S3.PublicURL,
		)
	} else {
		images = imagestore.NewDataURLStore()
	}

	postRepository = repository.NewStorePostRepository(kvStore, cfg.Storage.PostsKey)

	drafts := draft.NewController(
		kvStore,
		cfg.Storage.DraftKey,
		time.Duration(cfg.Editor.AutosaveDelaySeconds)*time.Second,
		draft.WithNotifier(clients),
	)

	surface = editor.NewHeadlessSurface()
	scheduler = editor.NewQueueScheduler()
	session = editor.NewSession(editor.SessionConfig{
		Surface:       surface,
		Images:        images,
		Drafts:        drafts,
		Notifier:      clients,
		Scheduler:     scheduler,
		AttachRetries: cfg.Editor.AttachRetries,
	})
	defer session.Close()

	if session.Load() {
		l.Info().Msg("Restored draft from storage")
	}

	mux := newMux()

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	l.Info().Str("addr", addr).Msg("Listening")
	l.Fatal().Err(http.ListenAndServe(addr, secureHeaders(mux.ServeHTTP))).Msg("Server stopped")
}

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc(routes.RootPath, serveIndex)
	mux.HandleFunc(routes.APIPosts, servePosts)
	mux.HandleFunc(routes.APIPost, servePost)
	mux.HandleFunc(routes.APIPostMD, servePostMarkdown)
	mux.HandleFunc(routes.APIPublish, servePublish)
	mux.HandleFunc(routes.APIDraft, serveDraft)
	mux.HandleFunc(routes.APIDraftPreview, serveDraftPreview)
	mux.HandleFunc(routes.APIDraftImages, serveDraftImages)
	mux.HandleFunc(routes.SSEPath, eventsHandler)
	return mux
}

func secureHeaders(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-XSS-Protection", "1; mode=block")

		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(config.HCType, config.CTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Error encoding response")
	}
}

func serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != routes.RootPath {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"name":        config.AppConfig.Site.Name,
		"description": config.AppConfig.Site.Description,
	})
}

func servePosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, postRepository.List())
}

func servePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	post, ok := postRepository.Get(model.PostID(r.PathValue("id")))
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func servePostMarkdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	post, ok := postRepository.Get(model.PostID(r.PathValue("id")))
	if !ok {
		http.NotFound(w, r)
		return
	}

	md, err := export.Markdown(*post)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HCType, "text/markdown")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(md))
}

func servePublish(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	sessionMu.Lock()
	defer sessionMu.Unlock()

	post, err := postRepository.Publish(session.Snapshot())
	if err != nil {
		notify.Error(clients, "Could not publish post")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	session.Reset()
	notify.Success(clients, "Post published")
	writeJSON(w, http.StatusCreated, post)
}

type draftUpdate struct {
	Title   *string  `json:"title"`
	Tags    []string `json:"tags"`
	Content *string  `json:"content"`
}

// settleRender runs the deferred render pass and the work scheduled
// behind it, then one more pass for retries queued during the first.
// Callers hold sessionMu.
func settleRender() {
	surface.FlushRendered()
	scheduler.Drain()
	if scheduler.Pending() > 0 {
		scheduler.Drain()
	}
}

// warmPreview pre-renders the preview for the current content so the
// next preview request hits the cache. The snapshot strings are taken
// under sessionMu; the rendering itself runs detached.
func warmPreview() {
	docHTML := surface.HTML()
	render.WarmCache(docHTML, util.ContentHashString(docHTML), config.AppConfig.Render.SyntaxTheme)
}

func serveDraft(w http.ResponseWriter, r *http.Request) {
	sessionMu.Lock()
	defer sessionMu.Unlock()

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, session.Snapshot())
	case http.MethodPut:
		var update draftUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			http.Error(w, "Invalid draft payload", http.StatusBadRequest)
			return
		}
		if update.Title != nil {
			session.SetTitle(*update.Title)
		}
		if update.Tags != nil {
			session.SetTags(update.Tags)
		}
		if update.Content != nil {
			if err := surface.LoadContent(*update.Content); err != nil {
				http.Error(w, "Invalid draft content", http.StatusBadRequest)
				return
			}
			settleRender()
			warmPreview()
		}
		writeJSON(w, http.StatusOK, session.Snapshot())
	case http.MethodDelete:
		session.Reset()
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
	}
}

func serveDraftPreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	syntaxTheme := r.URL.Query().Get("syntax-theme")
	if syntaxTheme == "" {
		syntaxTheme = config.AppConfig.Render.SyntaxTheme
	}

	sessionMu.Lock()
	defer sessionMu.Unlock()

	docHTML := surface.HTML()
	rendered := render.PreviewCached(docHTML, util.ContentHashString(docHTML), syntaxTheme)

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(rendered))
}

func serveDraftImages(w http.ResponseWriter, r *http.Request) {
	sessionMu.Lock()
	defer sessionMu.Unlock()

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, session.Images())
	case http.MethodPost:
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, "Invalid upload", http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			http.Error(w, "Image file required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, "Could not read image", http.StatusBadRequest)
			return
		}

		record, err := session.InsertImage(header.Filename, data)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		settleRender()
		writeJSON(w, http.StatusCreated, record)
	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "Image id required", http.StatusBadRequest)
			return
		}
		if !session.RemoveImage(model.ImageID(id)) {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
	}
}

func eventsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(config.HCType, "text/event-stream")
	w.Header().Set(config.HCacheControl, "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Del("X-Content-Type-Options")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	fmt.Fprintf(w, "event: connected\ndata: SSE connection established\n\n")
	flusher.Flush()

	client := &notify.Client{
		Events: make(chan notify.Event),
	}
	clients.Add(client)

	log.Info().Msg("New SSE client connected")

	defer func() {
		clients.Delete(client)
		log.Info().Msg("SSE client disconnected")
	}()

	done := r.Context().Done()
	for {
		select {
		case ev, open := <-client.Events:
			if !open {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		case <-done:
			return
		}
	}
}
