package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.January, 1), d)
	assert.Equal(t, "2024-01-01", d.String())

	for _, bad := range []string{"", "01-01-2024", "2024-13-01", "2024-01-01T10:00:00Z"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	d := DateOf(time.Date(2024, 3, 5, 23, 30, 0, 0, loc))
	assert.Equal(t, NewDate(2024, time.March, 5), d)
	assert.Equal(t, time.UTC, d.Time().Location())
}

func TestDateJSON(t *testing.T) {
	payload := struct {
		Date Date `json:"date"`
	}{Date: NewDate(2024, time.February, 29)}

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-02-29"}`, string(raw))

	var decoded struct {
		Date Date `json:"date"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, payload.Date, decoded.Date)

	require.NoError(t, json.Unmarshal([]byte(`{"date":null}`), &decoded))
	assert.True(t, decoded.Date.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"date":"29/02/2024"}`), &decoded))
}

func TestDateScanAndValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-01", d.String())

	require.NoError(t, d.Scan("2024-01-02 00:00:00+00:00"))
	assert.Equal(t, "2024-01-02", d.String())

	require.NoError(t, d.Scan([]byte("2024-01-03")))
	assert.Equal(t, "2024-01-03", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
	assert.Error(t, d.Scan("garbage"))

	v, err := NewDate(2024, time.January, 1).Value()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestNewAssignmentView(t *testing.T) {
	a := UserExercice{ID: 7, UserID: 1, ExerciceID: 3, Date: NewDate(2024, 1, 1), Series: 3, Repetitions: 10, Optional: true}
	e := Exercice{ID: 3, Name: "Squats", Description: "legs", VideoLink: "https://video/squats"}

	v := NewAssignmentView(a, e)
	assert.Equal(t, AssignmentView{
		AssignmentID: 7,
		ExerciceID:   3,
		Name:         "Squats",
		Description:  "legs",
		Date:         NewDate(2024, 1, 1),
		Series:       3,
		Repetitions:  10,
		Optional:     true,
		VideoLink:    "https://video/squats",
	}, v)
}
