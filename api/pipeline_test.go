package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtrack/backend/errs"
)

func TestPipeline_ShortCircuits(t *testing.T) {
	var calls []string
	step := func(name string, err error) check {
		return func(r *http.Request, s state) (state, error) {
			calls = append(calls, name)
			return s, err
		}
	}

	handlerCalled := false
	h := newPipeline(NewResponder(zerolog.Nop()),
		step("first", nil),
		step("second", errs.NewConflictError("stop here")),
		step("third", nil),
	).then(func(w http.ResponseWriter, r *http.Request, s state) {
		handlerCalled = true
	})

	rec := doRequest(t, h, http.MethodPost, "/", `{"a":1}`)

	assertError(t, rec, http.StatusConflict, "stop here")
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.False(t, handlerCalled)
}

func TestPipeline_ThreadsState(t *testing.T) {
	bind := func(r *http.Request, s state) (state, error) {
		s.projectID = 42
		return s, nil
	}

	var got state
	h := newPipeline(NewResponder(zerolog.Nop()), bind).
		then(func(w http.ResponseWriter, r *http.Request, s state) {
			got = s
			w.WriteHeader(http.StatusNoContent)
		})

	rec := doRequest(t, h, http.MethodPost, "/", `{"name":"React"}`)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(42), got.projectID)
	assert.JSONEq(t, `"React"`, string(got.fields["name"]))
}

func TestPipeline_RejectsNonObjectBody(t *testing.T) {
	h := newPipeline(NewResponder(zerolog.Nop())).
		then(func(w http.ResponseWriter, r *http.Request, s state) {
			t.Fatal("handler must not run")
		})

	rec := doRequest(t, h, http.MethodPost, "/", `[1,2]`)
	resp := assertError(t, rec, http.StatusBadRequest, "malformed payload")
	assert.Equal(t, "payload", resp.Field)
}

func TestField(t *testing.T) {
	s := state{fields: map[string]json.RawMessage{
		"email": json.RawMessage(`"ada@mail.com"`),
		"id":    json.RawMessage(`"seven"`),
	}}

	email, ok, err := field[string](s, "email")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ada@mail.com", email)

	_, ok, err = field[string](s, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = field[int64](s, "id")
	assert.True(t, ok)
	assert.True(t, errs.IsInvalidFieldError(err))
}
