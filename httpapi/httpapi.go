// Package httpapi is a small chi-routed HTTP front end over the
// translator and cache, modeled on server/api/api.go's router and
// server/token.go's AuthHandler. Unlike the teacher's full user/session
// lookup, authentication here checks only a bearer JWT's signature and
// expiry against one shared secret - this domain has no user repository
// for a subject claim to resolve against, so that part of the teacher's
// design is deliberately left out (see DESIGN.md).
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/whitemech/lydia-sub000/dfa"
	"github.com/whitemech/lydia-sub000/internal/cache"
	"github.com/whitemech/lydia-sub000/internal/sexpr"
	"github.com/whitemech/lydia-sub000/logger"
	"github.com/whitemech/lydia-sub000/mona"
	"github.com/whitemech/lydia-sub000/syntax"
	"github.com/whitemech/lydia-sub000/translate"
)

// PathPrefix is the prefix every route is mounted under, the same role
// server/api/api.go's PathPrefix constant plays.
const PathPrefix = "/api/v1"

type ctxKey int

const requestIDKey ctxKey = iota

// API holds the collaborators the HTTP handlers need: a cache (optional -
// nil disables memoization), the shared JWT secret, and a logger.
type API struct {
	Cache  *cache.Cache
	Secret []byte
	Log    logger.Logger
}

// New builds an API. log may be nil, defaulting to logger.NopLogger.
func New(c *cache.Cache, secret []byte, log logger.Logger) *API {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &API{Cache: c, Secret: secret, Log: log}
}

// Router builds the chi.Router exposing /translate and /check under
// PathPrefix, behind the bearer-JWT auth middleware.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(a.tagRequestID)
	r.Route(PathPrefix, func(r chi.Router) {
		r.Use(a.requireAuth)
		r.Post("/translate", a.handleTranslate)
		r.Post("/check", a.handleCheck)
	})
	return r
}

func (a *API) tagRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := uuid.New().String()
		req = req.WithContext(context.WithValue(req.Context(), requestIDKey, id))
		a.Log.Info("%s %s %s: start", id, req.Method, req.URL.Path)
		next.ServeHTTP(w, req)
		a.Log.Info("%s %s %s: done", id, req.Method, req.URL.Path)
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (a *API) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		tok, err := getBearerToken(req)
		if err != nil {
			a.Log.Info("%s: unauthorized: %v", requestIDFrom(req.Context()), err)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		_, err = jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
			return a.Secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithLeeway(time.Minute))
		if err != nil {
			a.Log.Info("%s: invalid token: %v", requestIDFrom(req.Context()), err)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, req)
	})
}

func getBearerToken(req *http.Request) (string, error) {
	header := strings.TrimSpace(req.Header.Get("Authorization"))
	if header == "" {
		return "", fmt.Errorf("no authorization header present")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}
	return strings.TrimSpace(parts[1]), nil
}

type translateRequest struct {
	Formula string `json:"formula"`
}

func (a *API) handleTranslate(w http.ResponseWriter, req *http.Request) {
	var body translateRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, "malformed JSON body", http.StatusBadRequest)
		return
	}

	m := syntax.NewManager()
	f, err := sexpr.Parse(m, body.Formula)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d, err := a.translate(req.Context(), body.Formula, m, f)
	if err != nil {
		a.Log.Error("%s: translate failed: %v", requestIDFrom(req.Context()), err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	if err := mona.Write(w, d); err != nil {
		a.Log.Error("%s: writing MONA response failed: %v", requestIDFrom(req.Context()), err)
	}
}

type checkRequest struct {
	Formula string   `json:"formula"`
	Traces  []string `json:"traces"`
}

type checkResponse struct {
	Results []bool `json:"results"`
}

// handleCheck's trace format: instants within one trace are ";"-separated,
// each instant a bitstring ("10" means variable 0 true, variable 1 false)
// in d.VarNames() order; an empty string is the empty trace.
func (a *API) handleCheck(w http.ResponseWriter, req *http.Request) {
	var body checkRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, "malformed JSON body", http.StatusBadRequest)
		return
	}

	m := syntax.NewManager()
	f, err := sexpr.Parse(m, body.Formula)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d, err := a.translate(req.Context(), body.Formula, m, f)
	if err != nil {
		a.Log.Error("%s: translate failed: %v", requestIDFrom(req.Context()), err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	results := make([]bool, len(body.Traces))
	for i, tr := range body.Traces {
		trace, err := parseTraceBitstring(tr, d.NVars())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		results[i] = d.Accepts(trace)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(checkResponse{Results: results})
}

func parseTraceBitstring(s string, nVars int) ([]map[int]bool, error) {
	if s == "" {
		return nil, nil
	}
	instants := strings.Split(s, ";")
	trace := make([]map[int]bool, len(instants))
	for i, inst := range instants {
		assign := make(map[int]bool, len(inst))
		for v, c := range inst {
			if v >= nVars {
				break
			}
			switch c {
			case '1':
				assign[v] = true
			case '0':
				assign[v] = false
			default:
				return nil, fmt.Errorf("invalid bit %q in trace instant %q", c, inst)
			}
		}
		trace[i] = assign
	}
	return trace, nil
}

// translate consults the cache (if configured) before falling back to
// translate.ToDFA, writing the result back through the cache on a miss.
// f's canonical string form, not the caller-supplied text, is the cache
// key, so two different-looking inputs that parse to the same formula
// share one cache entry.
func (a *API) translate(ctx context.Context, rawFormula string, m *syntax.Manager, f syntax.LDLf) (*dfa.DFA, error) {
	key := f.String()

	if a.Cache != nil {
		if d, ok, err := a.Cache.Get(ctx, key); err != nil {
			a.Log.Error("cache get failed for %s: %v", key, err)
		} else if ok {
			return d, nil
		}
	}

	d, err := translate.ToDFA(m, f)
	if err != nil {
		return nil, err
	}

	if a.Cache != nil {
		if err := a.Cache.Put(ctx, key, key, d); err != nil {
			a.Log.Error("cache put failed for %s: %v", key, err)
		}
	}

	return d, nil
}
