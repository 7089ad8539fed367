package forms

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactSchema() Schema {
	return Schema{
		{Name: "name", Rules: []Rule{Required("name required"), MinLen(2, "name too short")}},
		{Name: "email", Sanitize: SanitizeEmail, Rules: []Rule{Required("email required"), Email("invalid email")}},
		{Name: "subject", Rules: []Rule{Required("subject required"), MinLen(5, "subject too short")}},
		{Name: "message", Rules: []Rule{Required("message required"), MinLen(10, "message too short")}},
	}
}

func TestSubmitNeverCalledOnInvalidInput(t *testing.T) {
	called := false
	form := New("test", contactSchema(), func(context.Context, map[string]string) error {
		called = true
		return nil
	}, zerolog.Nop())

	fieldErrs, err := form.Submit(context.Background(), map[string]string{
		"name":    "Al",
		"email":   "bad-email",
		"subject": "Hi",
		"message": "",
	})
	require.NoError(t, err)
	assert.False(t, called)

	// "Al" is two characters and passes; email, subject and message fail.
	assert.NotContains(t, fieldErrs, "name")
	assert.Equal(t, "invalid email", fieldErrs["email"])
	assert.Equal(t, "subject too short", fieldErrs["subject"])
	assert.Equal(t, "message required", fieldErrs["message"])
	assert.Len(t, fieldErrs, 3)
}

func TestSubmitReceivesSanitizedValues(t *testing.T) {
	var got map[string]string
	form := New("test", contactSchema(), func(_ context.Context, values map[string]string) error {
		got = values
		return nil
	}, zerolog.Nop())

	fieldErrs, err := form.Submit(context.Background(), map[string]string{
		"name":    "  <Alessandro>  ",
		"email":   " Chef@Example.COM ",
		"subject": "Consulting inquiry",
		"message": "We would like to talk about our kitchen workflow.",
	})
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	assert.Equal(t, "Alessandro", got["name"])
	assert.Equal(t, "chef@example.com", got["email"])
}

func TestSubmitErrorIsReturnedUnchanged(t *testing.T) {
	boom := errors.New("backend unavailable")
	form := New("test", contactSchema(), func(context.Context, map[string]string) error {
		return boom
	}, zerolog.Nop())

	fieldErrs, err := form.Submit(context.Background(), map[string]string{
		"name":    "Al",
		"email":   "a@b.co",
		"subject": "Hello there",
		"message": "A long enough message.",
	})
	assert.Nil(t, fieldErrs)
	assert.Equal(t, boom, err)
}

func TestDuplicateSubmitBlockedWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	form := New("test", contactSchema(), func(context.Context, map[string]string) error {
		once.Do(func() { close(started) })
		<-release
		return nil
	}, zerolog.Nop())

	values := map[string]string{
		"name":    "Al",
		"email":   "a@b.co",
		"subject": "Hello there",
		"message": "A long enough message.",
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := form.Submit(context.Background(), values)
		assert.NoError(t, err)
	}()

	<-started
	_, err := form.Submit(context.Background(), values)
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(release)
	wg.Wait()

	// After the first submit completes, the form accepts another one.
	_, err = form.Submit(context.Background(), values)
	assert.NoError(t, err)
}
