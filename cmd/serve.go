package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/assessment-cli/internal/assess"
	"github.com/sells-group/assessment-cli/internal/delivery"
	"github.com/sells-group/assessment-cli/internal/model"
	"github.com/sells-group/assessment-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the assessment intake server",
	Long: `Serve the scoring API for the public assessment form. Submissions are
scored synchronously; CRM delivery of qualified leads happens in the
background so form latency stays flat.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		r, err := loadRules()
		if err != nil {
			return err
		}
		processor := assess.New(r)

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return err
		}

		dispatcher, err := initDispatcher()
		if err != nil {
			return err
		}

		api := &apiServer{processor: processor, store: st, dispatcher: dispatcher}

		router := chi.NewRouter()
		router.Use(middleware.RequestID)
		router.Use(middleware.Recoverer)
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))

		router.Get("/health", api.health)
		router.Post("/assessments", api.submit)
		router.Post("/assessments/validate", api.validate)
		router.Get("/assessments", api.list)
		router.Get("/assessments/{id}", api.get)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

type apiServer struct {
	processor  *assess.Processor
	store      store.Store
	dispatcher *delivery.Dispatcher
}

type submitRequest struct {
	Answers     model.Answers `json:"answers"`
	GDPRConsent bool          `json:"gdpr_consent"`
}

func (s *apiServer) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *apiServer) submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Answers) == 0 {
		writeError(w, http.StatusBadRequest, "answers are required")
		return
	}

	result, err := s.processor.Process(req.Answers, req.GDPRConsent)
	if err != nil {
		zap.L().Error("submission scoring failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "scoring failed")
		return
	}

	saved, err := s.store.SaveAssessment(r.Context(), result)
	if err != nil {
		zap.L().Error("submission save failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "save failed")
		return
	}

	// Deliver in the background; the respondent never waits on CRM calls.
	if s.dispatcher.Sinks() > 0 && s.dispatcher.Qualifies(result.Record) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.dispatcher.Deliver(ctx, result.Record); err != nil {
				zap.L().Error("background delivery failed",
					zap.String("session_id", result.Record.SessionID),
					zap.Error(err),
				)
				return
			}
			if err := s.store.MarkDelivered(ctx, saved.ID); err != nil {
				zap.L().Warn("mark delivered failed", zap.String("id", saved.ID), zap.Error(err))
			}
		}()
	}

	writeJSON(w, http.StatusCreated, struct {
		ID     string        `json:"id"`
		Result *model.Result `json:"result"`
	}{saved.ID, result})
}

func (s *apiServer) validate(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Validation model.Validation `json:"validation"`
		Progress   model.Progress   `json:"progress"`
	}{s.processor.Validate(req.Answers), s.processor.Progress(req.Answers)})
}

func (s *apiServer) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, err := s.store.GetAssessment(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "assessment not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *apiServer) list(w http.ResponseWriter, r *http.Request) {
	filter := store.Filter{Limit: 50}

	q := r.URL.Query()
	if p := q.Get("persona"); p != "" {
		filter.Persona = model.Tier(p)
	}
	if v := q.Get("min_lead_score"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "min_lead_score must be an integer")
			return
		}
		filter.MinLeadScore = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filter.Limit = n
	}
	filter.Undelivered = q.Get("undelivered") == "true"

	assessments, err := s.store.ListAssessments(r.Context(), filter)
	if err != nil {
		zap.L().Error("list assessments failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Assessments []store.Assessment `json:"assessments"`
		Count       int                `json:"count"`
	}{assessments, len(assessments)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
