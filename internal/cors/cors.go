package cors

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/angeloszaimis/demo-api/config"
)

const (
	Wildcard      = "*"
	DefaultMaxAge = 600
)

// standardMethods is advertised when every method is allowed.
var standardMethods = []string{
	http.MethodDelete,
	http.MethodGet,
	http.MethodHead,
	http.MethodOptions,
	http.MethodPatch,
	http.MethodPost,
	http.MethodPut,
}

type Options struct {
	AllowOrigins     []string
	AllowCredentials bool
	AllowMethods     []string
	AllowHeaders     []string
	MaxAge           int
}

func FromConfig(cfg config.CORSConfig) Options {
	return Options{
		AllowOrigins:     cfg.AllowOrigins,
		AllowCredentials: cfg.AllowCredentials,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		MaxAge:           DefaultMaxAge,
	}
}

// Insecure reports the wildcard origin plus credentials combination.
func (o Options) Insecure() bool {
	return o.AllowCredentials && slices.Contains(o.AllowOrigins, Wildcard)
}

type Middleware struct {
	allowAllOrigins bool
	allowAllMethods bool
	allowAllHeaders bool
	origins         []string
	methods         []string
	headers         string
	credentials     bool
	maxAge          string
}

func New(opts Options) *Middleware {
	m := &Middleware{
		allowAllOrigins: slices.Contains(opts.AllowOrigins, Wildcard),
		allowAllMethods: slices.Contains(opts.AllowMethods, Wildcard),
		allowAllHeaders: slices.Contains(opts.AllowHeaders, Wildcard),
		origins:         opts.AllowOrigins,
		credentials:     opts.AllowCredentials,
	}

	if m.allowAllMethods {
		m.methods = standardMethods
	} else {
		for _, method := range opts.AllowMethods {
			m.methods = append(m.methods, strings.ToUpper(method))
		}
	}

	if !m.allowAllHeaders {
		m.headers = strings.Join(opts.AllowHeaders, ", ")
	}

	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	m.maxAge = strconv.Itoa(maxAge)

	return m
}

// Handler wraps next with the cross-origin policy and answers preflight
// requests itself.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPreflight(r) {
			m.preflight(w, r)
			return
		}

		m.setOriginHeaders(w.Header(), r.Header.Get("Origin"))
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) preflight(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	m.setOriginHeaders(h, r.Header.Get("Origin"))

	requested := strings.ToUpper(r.Header.Get("Access-Control-Request-Method"))
	if !m.allowAllMethods && !slices.Contains(m.methods, requested) {
		http.Error(w, "Disallowed CORS method", http.StatusBadRequest)
		return
	}

	h.Set("Access-Control-Allow-Methods", strings.Join(m.methods, ", "))
	if m.allowAllHeaders {
		if requestedHeaders := r.Header.Get("Access-Control-Request-Headers"); requestedHeaders != "" {
			h.Set("Access-Control-Allow-Headers", requestedHeaders)
		}
	} else if m.headers != "" {
		h.Set("Access-Control-Allow-Headers", m.headers)
	}
	h.Set("Access-Control-Max-Age", m.maxAge)

	h.Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (m *Middleware) setOriginHeaders(h http.Header, origin string) {
	switch {
	case m.allowAllOrigins:
		h.Set("Access-Control-Allow-Origin", Wildcard)
	case origin != "" && slices.Contains(m.origins, origin):
		h.Set("Access-Control-Allow-Origin", origin)
		h.Add("Vary", "Origin")
	default:
		h.Add("Vary", "Origin")
		return
	}

	if m.credentials {
		h.Set("Access-Control-Allow-Credentials", "true")
	}
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
}
