package bible

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		in   string
		want Reference
	}{
		{"Ján 3,16", Reference{Book: "John", Chapter: 3, StartVerse: 16}},
		{"Ján 3:16", Reference{Book: "John", Chapter: 3, StartVerse: 16}},
		{"Žalm 23,1-4", Reference{Book: "Ps", Chapter: 23, StartVerse: 1, EndVerse: 4}},
		{"  matúš 5,3 ", Reference{Book: "Matt", Chapter: 5, StartVerse: 3}},
		{"1. Korinťanom 13,4-7", Reference{Book: "1Cor", Chapter: 13, StartVerse: 4, EndVerse: 7}},
		{"Ž 91,1", Reference{Book: "Ps", Chapter: 91, StartVerse: 1}},
	}

	for _, tt := range tests {
		got, err := ParseReference(tt.in)
		require.NoError(t, err, "reference %q", tt.in)
		assert.Equal(t, tt.want, got, "reference %q", tt.in)
	}
}

func TestParseReferenceRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "Ján", "Neznáma 1,1", "3,16"} {
		_, err := ParseReference(in)
		assert.Error(t, err, "expected %q to be rejected", in)
	}
}

func TestPassageJoinsVerses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/passage/ROH/John", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("start-chapter"))
		assert.Equal(t, "16", r.URL.Query().Get("start-verse"))
		assert.Equal(t, "17", r.URL.Query().Get("end-verse"))

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"verses": []map[string]any{
					{"verse": 16, "text": "Lebo tak Boh miloval svet..."},
					{"verse": 17, "text": "Lebo neposlal Boh..."},
				},
			},
		})
	}))
	defer srv.Close()

	c := NewClient()
	c.baseURL = srv.URL

	text, err := c.Passage(context.Background(), Reference{
		Book: "John", Chapter: 3, StartVerse: 16, EndVerse: 17,
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "Lebo tak Boh miloval svet... Lebo neposlal Boh...", text)
}

func TestPassageUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient()
	c.baseURL = srv.URL

	_, err := c.Verse(context.Background(), "Ján 3,16")
	assert.Error(t, err)
}
