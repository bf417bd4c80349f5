package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/devtrack/backend/database"
	"github.com/devtrack/backend/errs"
	"github.com/devtrack/backend/models"
)

const maxBodySize = 1 << 20

// state is threaded by value through the checks of one request. A check
// returns the state it was given, possibly with more fields bound.
type state struct {
	body   []byte
	fields map[string]json.RawMessage // top-level keys of a JSON object body

	developerID int64
	projectID   int64
	technology  models.Technology
	info        models.DeveloperInfo
	developer   models.Developer
	project     models.Project
	changes     database.Changes
}

// check is one read-only validation step. A non-nil error ends the request
// with that error as the response.
type check func(r *http.Request, s state) (state, error)

// terminal handles a request whose checks all passed.
type terminal func(w http.ResponseWriter, r *http.Request, s state)

type pipeline struct {
	responder Responder
	checks    []check
}

func newPipeline(responder Responder, checks ...check) pipeline {
	return pipeline{responder: responder, checks: checks}
}

// then runs the checks in order and hands the final state to handler. The
// first failing check short-circuits the chain.
func (p pipeline) then(handler terminal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := readBody(r)
		if err != nil {
			p.responder.WriteError(w, err)
			return
		}

		for _, c := range p.checks {
			next, err := c(r, s)
			if err != nil {
				p.responder.WriteError(w, err)
				return
			}
			s = next
		}

		handler(w, r, s)
	}
}

func readBody(r *http.Request) (state, error) {
	if r.Body == nil {
		return state{}, nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil {
		return state{}, errs.NewMalformedPayloadError("request", err)
	}
	if len(body) > maxBodySize {
		return state{}, errs.NewBadRequestError("request body too large")
	}

	s := state{body: body}
	if len(bytes.TrimSpace(body)) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(body, &s.fields); err != nil {
		return state{}, errs.NewMalformedPayloadError("JSON", err)
	}
	return s, nil
}

// field decodes one top-level body key. ok is false when the key is absent.
func field[T any](s state, key string) (value T, ok bool, err error) {
	raw, present := s.fields[key]
	if !present {
		return value, false, nil
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, true, errs.NewInvalidFieldError(key, err.Error())
	}
	return value, true, nil
}

// decodeStrict decodes the whole body into dest, rejecting unknown keys.
func decodeStrict(s state, payloadName string, dest any) error {
	decoder := json.NewDecoder(bytes.NewReader(s.body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return errs.NewMalformedPayloadError(payloadName, err)
	}
	return nil
}
