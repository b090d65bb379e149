package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"blossom/internal/api"
	"blossom/internal/config"
	"blossom/internal/logging"
	"blossom/internal/pipeline"
)

// maxUploadBytes bounds multipart memory parsing for media uploads.
const maxUploadBytes = 200 << 20

type apiServer struct {
	bind           string
	logger         *slog.Logger
	daemon         *Daemon
	requestTimeout time.Duration

	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) (*apiServer, error) {
	if cfg == nil || d == nil {
		return nil, nil
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, nil
	}

	srv := &apiServer{
		bind:           bind,
		logger:         logger,
		daemon:         d,
		requestTimeout: time.Duration(cfg.Workflow.RequestTimeoutSeconds) * time.Second,
	}

	token := cfg.Paths.APIToken
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze/image", authMiddleware(token, srv.handleAnalyzeImage))
	mux.HandleFunc("/api/analyze/video", authMiddleware(token, srv.handleAnalyzeVideo))
	mux.HandleFunc("/api/diagnose", authMiddleware(token, srv.handleDiagnose))
	mux.HandleFunc("/api/chat", authMiddleware(token, srv.handleChat))
	mux.HandleFunc("/api/status", authMiddleware(token, srv.handleStatus))
	mux.HandleFunc("/api/history", authMiddleware(token, srv.handleHistory))

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       120 * time.Second,
		WriteTimeout:      300 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

func (s *apiServer) start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", slog.String("error", err.Error()))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log().Info("api server listening", slog.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) handleAnalyzeImage(w http.ResponseWriter, r *http.Request) {
	s.handleAnalyzeMedia(w, r, "image", s.daemon.pipe.AnalyzeImage)
}

func (s *apiServer) handleAnalyzeVideo(w http.ResponseWriter, r *http.Request) {
	s.handleAnalyzeMedia(w, r, "video", s.daemon.pipe.AnalyzeVideo)
}

func (s *apiServer) handleAnalyzeMedia(w http.ResponseWriter, r *http.Request, kind string, analyze func(context.Context, string) (pipeline.Analysis, error)) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("No %s provided", kind))
		return
	}
	file, header, err := r.FormFile(kind)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("No %s provided", kind))
		return
	}
	defer file.Close()

	id, path, err := s.daemon.uploads.Save(kind, header.Filename, file)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctx := r.Context()
	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	result, err := analyze(ctx, path)
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, api.UploadResponse{
			FileID: id,
			Error:  fmt.Sprintf("Analysis failed: %v", err),
		})
		return
	}

	s.writeJSON(w, http.StatusOK, api.UploadResponse{
		Success: true,
		FileID:  id,
		AnalysisResult: &api.AnalysisResult{
			Type:       result.Kind,
			FilePath:   id,
			Emotions:   result.Emotions.Map(),
			Diagnosis:  result.Diagnosis.Label,
			Confidence: result.Diagnosis.Confidence,
		},
		Advice: result.Advice,
	})
}

func (s *apiServer) handleDiagnose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req api.DiagnoseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "No text provided")
		return
	}

	result, err := s.daemon.pipe.DiagnoseText(r.Context(), req.Text)
	switch {
	case errors.Is(err, pipeline.ErrEmptyText):
		s.writeError(w, http.StatusBadRequest, "No text provided")
		return
	case errors.Is(err, pipeline.ErrTextModelUnavailable):
		s.writeError(w, http.StatusInternalServerError, "Model not loaded")
		return
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, api.DiagnoseResponse{
		Diagnosis:  result.Diagnosis.Label,
		Confidence: result.Diagnosis.Confidence,
		Remedies: api.Remedies{
			Intro:       result.Remedies.Intro,
			Suggestions: result.Remedies.Suggestions,
		},
	})
}

func (s *apiServer) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req api.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "No text provided")
		return
	}

	reply, fallback, err := s.daemon.pipe.Chat(r.Context(), req.Text)
	switch {
	case errors.Is(err, pipeline.ErrEmptyText):
		s.writeError(w, http.StatusBadRequest, "No text provided")
		return
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("Generation failed: %v", err))
		return
	}

	s.writeJSON(w, http.StatusOK, api.ChatResponse{Reply: reply, Fallback: fallback})
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	status := s.daemon.Status()
	dependencies := make([]api.DependencyStatus, len(status.Dependencies))
	for i, dep := range status.Dependencies {
		dependencies[i] = api.DependencyStatus{
			Name:        dep.Name,
			Command:     dep.Command,
			Description: dep.Description,
			Optional:    dep.Optional,
			Available:   dep.Available,
			Detail:      dep.Detail,
		}
	}
	s.writeJSON(w, http.StatusOK, api.DaemonStatus{
		Running:      status.Running,
		PID:          status.PID,
		Analyzer:     status.Analyzer,
		Classifier:   status.Classifier,
		Generator:    status.Generator,
		TextModel:    status.TextModel,
		HistoryPath:  status.HistoryPath,
		LockFilePath: status.LockFilePath,
		Dependencies: dependencies,
	})
}

func (s *apiServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.daemon.store == nil {
		s.writeJSON(w, http.StatusOK, api.HistoryResponse{Entries: nil})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := s.daemon.store.Recent(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	payload := make([]api.HistoryEntry, len(entries))
	for i, entry := range entries {
		payload[i] = api.HistoryEntry{
			ID:         entry.ID,
			Kind:       entry.Kind,
			Source:     entry.Source,
			Diagnosis:  entry.Diagnosis,
			Confidence: entry.Confidence,
			Backend:    entry.Backend,
			CreatedAt:  entry.CreatedAt.Format(time.RFC3339),
		}
	}
	s.writeJSON(w, http.StatusOK, api.HistoryResponse{Entries: payload})
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Error: message})
}

func (s *apiServer) log() *slog.Logger {
	if s.logger != nil {
		return s.logger.With(slog.String("component", "api-server"))
	}
	return logging.NewNop()
}
