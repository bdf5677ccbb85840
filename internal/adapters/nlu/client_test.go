package nlu_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/picbot/internal/adapters/nlu"
	"github.com/aretw0/picbot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Classify(t *testing.T) {
	var gotQuery, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"query": "search for cats",
			"topScoringIntent": {"intent": "SearchPics", "score": 0.9},
			"entities": [{"entity": "cats", "type": "facet"}]
		}`))
	}))
	defer srv.Close()

	client := nlu.New(srv.URL, "secret")
	rec, err := client.Classify(context.Background(), "search for cats")
	require.NoError(t, err)

	assert.Equal(t, "search for cats", gotQuery)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, domain.IntentSearchPics, rec.Intent)
	assert.Equal(t, "SearchPics", rec.TopIntent)
	assert.InDelta(t, 0.9, rec.Score, 1e-9)
	assert.Equal(t, []string{"cats"}, rec.Entities["facet"])
}

func TestClient_Classify_PredictionEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"prediction": {
				"topScoringIntent": {"intent": "Greeting", "score": 0.75},
				"entities": []
			}
		}`))
	}))
	defer srv.Close()

	client := nlu.New(srv.URL, "")
	rec, err := client.Classify(context.Background(), "hello there")
	require.NoError(t, err)

	assert.Equal(t, domain.IntentGreeting, rec.Intent)
	assert.InDelta(t, 0.75, rec.Score, 1e-9)
	assert.Empty(t, rec.Entities)
}

func TestClient_Classify_UnknownIntentName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"topScoringIntent": {"intent": "BookFlight", "score": 0.95}}`))
	}))
	defer srv.Close()

	client := nlu.New(srv.URL, "")
	rec, err := client.Classify(context.Background(), "book me a flight")
	require.NoError(t, err)

	assert.Equal(t, domain.IntentUnknown, rec.Intent)
	assert.Equal(t, "BookFlight", rec.TopIntent)
}

func TestClient_Classify_AbsentTopIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"query": "gibberish"}`))
	}))
	defer srv.Close()

	client := nlu.New(srv.URL, "")
	rec, err := client.Classify(context.Background(), "gibberish")
	require.NoError(t, err)

	assert.Equal(t, domain.IntentNone, rec.Intent)
	assert.Empty(t, rec.TopIntent)
	assert.Zero(t, rec.Score)
}

func TestClient_Classify_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := nlu.New(srv.URL, "")
	_, err := client.Classify(context.Background(), "anything")
	assert.Error(t, err)
}
