package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestScoreRecord_KeepsExtraFields(t *testing.T) {
	in := `{"username":"adrian","mode":"Easy","score":1200,"timestamp":"2025-11-02T10:00:00Z","meta":{"device":"pc"}}`

	var record ScoreRecord
	require.NoError(t, json.Unmarshal([]byte(in), &record))

	assert.Equal(t, "adrian", record.Username)
	assert.Equal(t, "Easy", record.Mode)
	assert.Equal(t, json.Number("1200"), record.Score)
	assert.Len(t, record.Extra, 2)

	out, err := json.Marshal(record)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestScoreRecord_UnexpectedTypesStayOpaque(t *testing.T) {
	in := `{"username":42,"mode":"Hard","score":"lots"}`

	var record ScoreRecord
	require.NoError(t, json.Unmarshal([]byte(in), &record))

	assert.Empty(t, record.Username)
	assert.Equal(t, "Hard", record.Mode)
	assert.Empty(t, record.Score)
	assert.Contains(t, record.Extra, "username")
	assert.Contains(t, record.Extra, "score")

	out, err := json.Marshal(record)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestScoreRecord_NullScore(t *testing.T) {
	in := `{"username":"sam","mode":"Easy","score":null}`

	var record ScoreRecord
	require.NoError(t, json.Unmarshal([]byte(in), &record))
	assert.Empty(t, record.Score)

	out, err := json.Marshal(record)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestScoreRecord_RejectsNonObject(t *testing.T) {
	var record ScoreRecord
	assert.Error(t, json.Unmarshal([]byte(`["adrian"]`), &record))
}

func TestScoreRecord_Msgpack(t *testing.T) {
	board := Scoreboard{
		Scores: []ScoreRecord{{
			Username: "nina",
			Mode:     "Regular",
			Score:    json.Number("10.50"),
			Extra:    map[string]json.RawMessage{"level": json.RawMessage(`3`)},
		}},
	}

	b, err := msgpack.Marshal(board)
	require.NoError(t, err)

	var decoded Scoreboard
	require.NoError(t, msgpack.Unmarshal(b, &decoded))
	assert.Nil(t, decoded.Mode)
	require.Len(t, decoded.Scores, 1)
	assert.Equal(t, "nina", decoded.Scores[0].Username)
	assert.Equal(t, json.Number("10.50"), decoded.Scores[0].Score)
	assert.JSONEq(t, `3`, string(decoded.Scores[0].Extra["level"]))
}

func TestScoreRecord_Clone(t *testing.T) {
	record := ScoreRecord{
		Username: "adrian",
		Score:    json.Number("1.0"),
		Extra:    map[string]json.RawMessage{"k": json.RawMessage(`1`)},
	}

	clone := record.Clone()
	clone.Score = json.Number("2")
	clone.Extra["k"] = json.RawMessage(`2`)
	clone.Extra["other"] = json.RawMessage(`true`)

	assert.Equal(t, json.Number("1.0"), record.Score)
	assert.Equal(t, json.RawMessage(`1`), record.Extra["k"])
	assert.Len(t, record.Extra, 1)
}

func TestScoreRecord_ScoreLiteralSurvives(t *testing.T) {
	cases := []string{
		`{"mode":"Easy","score":9007199254740993,"username":"adrian"}`,
		`{"mode":"Easy","score":1.0,"username":"adrian"}`,
		`{"mode":"Easy","score":-2.50e3,"username":"adrian"}`,
	}

	for _, in := range cases {
		var record ScoreRecord
		require.NoError(t, json.Unmarshal([]byte(in), &record))
		assert.Empty(t, record.Extra, in)

		out, err := json.Marshal(record)
		require.NoError(t, err)
		assert.Equal(t, in, string(out))
	}
}

func TestScoreRecord_QuotedScoreStaysString(t *testing.T) {
	in := `{"mode":"Easy","score":"12","username":"adrian"}`

	var record ScoreRecord
	require.NoError(t, json.Unmarshal([]byte(in), &record))
	assert.Empty(t, record.Score)

	out, err := json.Marshal(record)
	require.NoError(t, err)
	assert.Equal(t, in, string(out))
}

func TestScoreRow_ToRecord(t *testing.T) {
	score := "1.0"
	row := ScoreRow{
		ID:       7,
		Username: "adrian",
		Mode:     "Hard",
		Score:    &score,
		Extra: map[string]json.RawMessage{
			"username":  json.RawMessage(`"mallory"`),
			"mode":      json.RawMessage(`"Easy"`),
			"score":     json.RawMessage(`1`),
			"timestamp": json.RawMessage(`"2025-11-02T10:00:00Z"`),
		},
	}

	record := row.ToRecord()
	assert.Equal(t, "adrian", record.Username)
	assert.Equal(t, "Hard", record.Mode)
	assert.Equal(t, json.Number("1.0"), record.Score)
	assert.Equal(t, map[string]json.RawMessage{"timestamp": json.RawMessage(`"2025-11-02T10:00:00Z"`)}, record.Extra)

	out, err := json.Marshal(record)
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"adrian","mode":"Hard","score":1.0,"timestamp":"2025-11-02T10:00:00Z"}`, string(out))

	record.Extra["timestamp"] = json.RawMessage(`null`)
	assert.JSONEq(t, `"2025-11-02T10:00:00Z"`, string(row.Extra["timestamp"]))
}

func TestScoreRow_ToRecordWithoutScore(t *testing.T) {
	row := ScoreRow{Username: "sam", Mode: "Easy"}

	record := row.ToRecord()
	assert.Empty(t, record.Score)
	assert.Nil(t, record.Extra)

	out, err := json.Marshal(record)
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"sam","mode":"Easy"}`, string(out))
}
