package service

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"blogstore/app/canister"
	"blogstore/app/middleware"
	"blogstore/app/models"

	"github.com/gorilla/mux"
)

// Gateway bridges net/http to the canister's HTTP entry points. Each request
// first runs on the read entry as a query; an upgrade response replays the
// identical request on the write entry as an update.
type Gateway struct {
	runtime *Runtime
	maxBody int64
	logger  *slog.Logger
}

// NewGateway creates a Gateway that caps request bodies at maxBody bytes.
func NewGateway(runtime *Runtime, maxBody int64, logger *slog.Logger) *Gateway {
	return &Gateway{runtime: runtime, maxBody: maxBody, logger: logger}
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := g.readRequest(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			g.writeError(w, r, http.StatusRequestEntityTooLarge, models.KindMalformed, "Request body too large")
			return
		}
		g.writeError(w, r, http.StatusBadRequest, models.KindMalformed, "Failed to read request body")
		return
	}

	var resp models.HTTPResponse
	if err := g.runtime.Query(r.Context(), func(c *canister.Canister) {
		resp = c.HTTPRequest(req)
	}); err != nil {
		g.unavailable(w, r, err)
		return
	}

	if resp.Upgraded() {
		upgradesTotal.Inc()
		caller := CallerFromRequest(r)
		if err := g.runtime.Update(r.Context(), func(c *canister.Canister) {
			resp = c.HTTPRequestUpdate(caller, req)
		}); err != nil {
			g.unavailable(w, r, err)
			return
		}
	}

	g.writeResponse(w, r, resp)
}

func (g *Gateway) readRequest(w http.ResponseWriter, r *http.Request) (models.HTTPRequest, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, g.maxBody))
	if err != nil {
		return models.HTTPRequest{}, err
	}

	headers := make([]models.HeaderField, 0, len(r.Header))
	for name, values := range r.Header {
		for _, value := range values {
			headers = append(headers, models.HeaderField{Name: name, Value: value})
		}
	}

	return models.HTTPRequest{
		Method:  r.Method,
		URL:     r.URL.RequestURI(),
		Headers: headers,
		Body:    body,
	}, nil
}

func (g *Gateway) writeResponse(w http.ResponseWriter, r *http.Request, resp models.HTTPResponse) {
	seen := make(map[string]bool, len(resp.Headers))
	for _, h := range resp.Headers {
		name := http.CanonicalHeaderKey(h.Name)
		if seen[name] {
			w.Header().Add(name, h.Value)
			continue
		}
		seen[name] = true
		w.Header().Set(name, h.Value)
	}
	status := int(resp.StatusCode)
	httpResponses.WithLabelValues(r.Method, strconv.Itoa(status)).Inc()
	w.WriteHeader(status)
	if len(resp.Body) > 0 {
		if _, err := w.Write(resp.Body); err != nil {
			g.logger.Debug("write response", "error", err)
		}
	}
}

func (g *Gateway) unavailable(w http.ResponseWriter, r *http.Request, err error) {
	g.logger.Warn("call not executed",
		"request_id", middleware.RequestIDFromContext(r.Context()),
		"error", err,
	)
	g.writeError(w, r, http.StatusServiceUnavailable, models.KindUnknown, "Service unavailable")
}

func (g *Gateway) writeError(w http.ResponseWriter, r *http.Request, status int, kind models.Kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	httpResponses.WithLabelValues(r.Method, strconv.Itoa(status)).Inc()
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"code": kind.String(), "error": message})
}

// RPCHandler serves POST /rpc/{method}. Query methods run as queries, every
// other method as an update on behalf of the bearer-token caller.
type RPCHandler struct {
	gateway *Gateway
}

// NewRPCHandler creates an RPCHandler sharing gateway's runtime and limits.
func NewRPCHandler(gateway *Gateway) *RPCHandler {
	return &RPCHandler{gateway: gateway}
}

func (h *RPCHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g := h.gateway
	name := mux.Vars(r)["method"]
	method, ok := canister.Lookup(name)
	if !ok {
		g.writeError(w, r, http.StatusNotFound, models.KindNotFound, "Unknown method "+strconv.Quote(name))
		return
	}
	rpcCalls.WithLabelValues(method.Name).Inc()

	args, err := io.ReadAll(http.MaxBytesReader(w, r.Body, g.maxBody))
	if err != nil {
		g.writeError(w, r, http.StatusRequestEntityTooLarge, models.KindMalformed, "Request body too large")
		return
	}

	caller := CallerFromRequest(r)
	var out interface{}
	var callErr error
	run := func(c *canister.Canister) {
		out, callErr = method.Call(c, caller, args)
	}
	if method.Query {
		err = g.runtime.Query(r.Context(), run)
	} else {
		err = g.runtime.Update(r.Context(), run)
	}
	if err != nil {
		g.unavailable(w, r, err)
		return
	}
	if callErr != nil {
		g.writeError(w, r, http.StatusBadRequest, models.KindOf(callErr), callErr.Error())
		return
	}

	body, err := json.Marshal(out)
	if err != nil {
		g.writeError(w, r, http.StatusInternalServerError, models.KindUnknown, "Failed to encode response")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	httpResponses.WithLabelValues(r.Method, strconv.Itoa(http.StatusOK)).Inc()
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
