package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	_, ok := s.Get("nope")
	require.False(t, ok)

	s.Put("sid1", State{Authenticated: true, RubricText: "some rubric"})
	st, ok := s.Get("sid1")
	require.True(t, ok)
	require.True(t, st.Authenticated)
	require.Equal(t, "some rubric", st.RubricText)

	// A new rubric submission fully replaces the cached one.
	st.RubricText = "replacement"
	s.Put("sid1", st)
	st, _ = s.Get("sid1")
	require.Equal(t, "replacement", st.RubricText)

	s.Delete("sid1")
	_, ok = s.Get("sid1")
	require.False(t, ok)
}

func TestTokenCodecRoundTrip(t *testing.T) {
	c := NewTokenCodec("unit-test-secret")
	tok, err := c.Issue("sid-42")
	require.NoError(t, err)

	sid, err := c.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, "sid-42", sid)
}

func TestTokenCodecRejectsWrongSecret(t *testing.T) {
	tok, err := NewTokenCodec("secret-a").Issue("sid-42")
	require.NoError(t, err)

	_, err = NewTokenCodec("secret-b").Parse(tok)
	require.Error(t, err)
}

func TestTokenCodecRejectsGarbage(t *testing.T) {
	_, err := NewTokenCodec("secret").Parse("not-a-token")
	require.Error(t, err)
}
