// Package server provides the HTTP service that checks uploaded sample
// logs.
package server

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/umeldt/darwinsheet/internal/check"
	"github.com/umeldt/darwinsheet/internal/config"
	"github.com/umeldt/darwinsheet/internal/fields"
	"github.com/umeldt/darwinsheet/internal/spreadsheet"
	"github.com/umeldt/darwinsheet/internal/spreadsheet/processor"
)

// MaxUploadSize limits the size of an uploaded workbook.
const MaxUploadSize = 32 << 20

// Options configure a Server.
type Options struct {
	Catalogue    *fields.Catalogue
	Setups       config.Setups
	DefaultSetup string
	HeaderRow    int

	// Now is the clock relative date limits are resolved against. It is
	// time.Now when nil.
	Now func() time.Time

	// Log receives request and error logs.
	Log *jww.Notepad

	// Registry is where the metrics are registered and served from. A new
	// registry is made when nil.
	Registry *prometheus.Registry
}

// Server checks sample logs over HTTP. The catalogue is shared by all
// requests and never changed, each request builds its own checker.
type Server struct {
	opts    Options
	router  *chi.Mux
	metrics *metrics
}

func New(opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.Log == nil {
		opts.Log = jww.NewNotepad(jww.LevelFatal, jww.LevelFatal, io.Discard, io.Discard, "", 0)
	}

	s := &Server{
		opts:    opts,
		router:  chi.NewRouter(),
		metrics: newMetrics(opts.Registry),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.opts.Registry, promhttp.HandlerOpts{}))

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/check", s.handleCheck)
		r.Get("/fields", s.handleFields)
		r.Get("/setups", s.handleSetups)
	})
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start listens on addr until the listener fails.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.opts.Log.INFO.Printf("Starting server on %s", addr)
	return srv.ListenAndServe()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.opts.Log.INFO.Printf("%s %s %d %s [%s]", r.Method, r.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCheck checks the workbook in the multipart field "file", or the
// request body when the request isn't a multipart form. The setup is taken
// from the "setup" query parameter.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("setup")
	if name == "" {
		name = s.opts.DefaultSetup
	}
	setup, err := s.opts.Setups.Get(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body, filename, err := readUpload(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	result, err := s.check(setup, body)
	if err != nil {
		s.opts.Log.ERROR.Printf("check of %s failed: %s [%s]", filename, err, middleware.GetReqID(r.Context()))
		s.metrics.observe("error", time.Since(start))
		writeError(w, http.StatusInternalServerError, "unable to check the file")
		return
	}
	result.File = filename

	outcome := "failed"
	if result.Report.Passed {
		outcome = "passed"
	}
	s.metrics.observe(outcome, time.Since(start))

	writeJSON(w, http.StatusOK, result)
}

// check loads and checks a workbook. A file without the sheets a sample log
// has gives a failed report, not an error.
func (s *Server) check(setup config.Setup, body []byte) (*check.Result, error) {
	checker, err := check.NewChecker(s.opts.Catalogue, setup, check.WithClock(s.opts.Now))
	if err != nil {
		return nil, err
	}

	wb, err := spreadsheet.NewLoader(s.opts.HeaderRow).LoadReader(bytes.NewReader(body))
	if err != nil {
		if missing, ok := spreadsheet.AsMissingSheet(err); ok {
			return &check.Result{Setup: setup.Name, Report: check.StructuralReport(missing.Error())}, nil
		}
		return &check.Result{Setup: setup.Name, Report: check.StructuralReport("Not a readable xlsx workbook")}, nil
	}

	return checker.CheckWorkbook(wb), nil
}

var (
	errBadForm = errors.New("file too large or invalid form")
	errNoFile  = errors.New("no file provided")
)

// readUpload returns the uploaded workbook and its file name.
func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
			return nil, "", errBadForm
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", errNoFile
		}
		defer file.Close()

		body, err := io.ReadAll(file)
		return body, header.Filename, err
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, "", err
	}
	if len(body) == 0 {
		return nil, "", errNoFile
	}
	return body, "", nil
}

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, processor.ViewFields(s.opts.Catalogue.Fields()))
}

func (s *Server) handleSetups(w http.ResponseWriter, r *http.Request) {
	setups := make([]config.Setup, 0, len(s.opts.Setups))
	for _, name := range s.opts.Setups.Names() {
		setups = append(setups, s.opts.Setups[name])
	}
	writeJSON(w, http.StatusOK, setups)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := sonic.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unable to encode the response")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	data, _ := sonic.Marshal(map[string]string{"error": message})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
