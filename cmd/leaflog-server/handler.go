package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Bren2010/leaflog/tree/accumulator"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/v1/meta", handleAPI("meta", h.Meta)).Methods("GET")
	r.HandleFunc("/v1/tree/{tree}/leaves", handleAPI("insert", h.Insert)).Methods("POST")
	r.HandleFunc("/v1/tree/{tree}/leaves", handleAPI("leaves", h.Leaves)).Methods("GET")
	r.HandleFunc("/v1/tree/{tree}/root", handleAPI("root", h.Root)).Methods("GET")
	return r
}

type Handler struct {
	read   *accumulator.Log // Bound to a read-only store clone.
	ch     chan<- InsertRequest
	logger *logrus.Entry
}

type errorResponse struct {
	Error string `json:"error"`
}

type rootResponse struct {
	Root accumulator.Hash `json:"root"`
	Size int              `json:"size"`
}

type leavesResponse struct {
	Size   int                `json:"size"`
	Leaves []accumulator.Hash `json:"leaves"`
}

type MetaResponse struct {
	HashAlgorithm string `json:"hash_algorithm"`
	Tree          string `json:"tree"`
	Version       string `json:"version"`
}

// handleAPI wraps an API endpoint with response encoding, error-to-status
// mapping, and request metrics.
func handleAPI(path string, fn func(req *http.Request) (interface{}, error)) http.HandlerFunc {
	return func(rw http.ResponseWriter, req *http.Request) {
		res, err := fn(req)

		status := http.StatusOK
		if err != nil {
			status = statusOf(err)
			res = errorResponse{Error: err.Error()}
		}
		requestCtr.WithLabelValues(path, fmt.Sprint(status)).Inc()

		rw.Header().Set("Content-Type", "application/json")
		rw.WriteHeader(status)
		if err := json.NewEncoder(rw).Encode(res); err != nil {
			logrus.WithError(err).Warn("Failed to encode response.")
		}
	}
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, accumulator.ErrIdentityMismatch):
		return http.StatusNotFound
	case errors.Is(err, accumulator.ErrUninitialized):
		return http.StatusNotFound
	case errors.Is(err, accumulator.ErrMalformedState):
		return http.StatusInternalServerError
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var errBadRequest = errors.New("bad request")

// checkTree rejects requests addressed to an accumulator other than the one
// this server owns, before any state is touched.
func (h *Handler) checkTree(req *http.Request) error {
	return h.read.Verify(mux.Vars(req)["tree"])
}

// Insert decodes an insert-leaf command, hands it to the inserter goroutine,
// and responds with the post-insertion root.
func (h *Handler) Insert(req *http.Request) (interface{}, error) {
	if err := h.checkTree(req); err != nil {
		return nil, err
	}

	var body struct {
		Hash *accumulator.Hash `json:"hash"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	} else if body.Hash == nil {
		return nil, fmt.Errorf("%w: field not provided: hash", errBadRequest)
	}
	h.logger.WithField("hash", body.Hash).Debug("Received insert request.")

	resp := make(chan InsertResponse, 1)
	h.ch <- InsertRequest{Leaf: *body.Hash, Resp: resp}

	res := <-resp
	if res.Err != nil {
		return nil, res.Err
	}
	return rootResponse{Root: res.Root, Size: res.Size}, nil
}

// Root returns the current root hash and tree size.
func (h *Handler) Root(req *http.Request) (interface{}, error) {
	if err := h.checkTree(req); err != nil {
		return nil, err
	}

	state, err := h.read.State()
	if err != nil {
		return nil, err
	}
	return rootResponse{Root: state.Root(), Size: state.Size()}, nil
}

// Leaves returns the full insertion-ordered leaf sequence.
func (h *Handler) Leaves(req *http.Request) (interface{}, error) {
	if err := h.checkTree(req); err != nil {
		return nil, err
	}

	state, err := h.read.State()
	if err != nil {
		return nil, err
	}
	return leavesResponse{Size: state.Size(), Leaves: state.Leaves()}, nil
}

func (h *Handler) Meta(req *http.Request) (interface{}, error) {
	return MetaResponse{
		HashAlgorithm: "sha256",
		Tree:          h.read.Name(),
		Version:       Version,
	}, nil
}
