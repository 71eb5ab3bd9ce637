package models

import (
	"bytes"
	"encoding/json"

	"github.com/uptrace/bun"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	fieldUsername = "username"
	fieldMode     = "mode"
	fieldScore    = "score"
)

// ScoreRecord is a single stored result. Fields other than username, mode and
// score are kept untouched in Extra and written back on encode. Score keeps the
// number literal it was decoded from; empty means absent.
type ScoreRecord struct {
	Username string
	Mode     string
	Score    json.Number
	Extra    map[string]json.RawMessage
}

func (record *ScoreRecord) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*record = ScoreRecord{}
	for key, raw := range fields {
		null := bytes.Equal(bytes.TrimSpace(raw), []byte("null"))

		switch key {
		case fieldUsername:
			if !null && json.Unmarshal(raw, &record.Username) == nil {
				continue
			}
		case fieldMode:
			if !null && json.Unmarshal(raw, &record.Mode) == nil {
				continue
			}
		case fieldScore:
			if isNumber(raw) {
				record.Score = json.Number(bytes.TrimSpace(raw))
				continue
			}
		}

		// unknown field, or a known one with an unexpected type
		if record.Extra == nil {
			record.Extra = make(map[string]json.RawMessage)
		}
		record.Extra[key] = raw
	}

	return nil
}

// isNumber reports whether raw is a JSON number literal. Quoted numbers are
// strings and stay opaque.
func isNumber(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return false
	}

	var number json.Number
	return json.Unmarshal(raw, &number) == nil
}

func (record ScoreRecord) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, len(record.Extra)+3)
	for key, raw := range record.Extra {
		fields[key] = raw
	}

	if _, ok := fields[fieldUsername]; !ok {
		fields[fieldUsername] = record.Username
	}
	if _, ok := fields[fieldMode]; !ok {
		fields[fieldMode] = record.Mode
	}
	if _, ok := fields[fieldScore]; !ok && record.Score != "" {
		fields[fieldScore] = record.Score
	}

	return json.Marshal(fields)
}

// EncodeMsgpack stores the JSON form so cached records keep their extra fields.
func (record ScoreRecord) EncodeMsgpack(enc *msgpack.Encoder) error {
	b, err := record.MarshalJSON()
	if err != nil {
		return err
	}
	return enc.EncodeBytes(b)
}

func (record *ScoreRecord) DecodeMsgpack(dec *msgpack.Decoder) error {
	b, err := dec.DecodeBytes()
	if err != nil {
		return err
	}
	return record.UnmarshalJSON(b)
}

// Clone returns a copy that shares no memory with the receiver.
func (record *ScoreRecord) Clone() ScoreRecord {
	clone := ScoreRecord{
		Username: record.Username,
		Mode:     record.Mode,
		Score:    record.Score,
	}

	if record.Extra != nil {
		clone.Extra = make(map[string]json.RawMessage, len(record.Extra))
		for key, raw := range record.Extra {
			clone.Extra[key] = append(json.RawMessage(nil), raw...)
		}
	}

	return clone
}

// ScoreRow is the postgres form of a score. Score is a numeric column read
// back as text so its literal survives.
type ScoreRow struct {
	bun.BaseModel `bun:"table:scores"`
	ID            int64                      `bun:"id,pk,autoincrement"`
	Username      string                     `bun:"username,notnull"`
	Mode          string                     `bun:"mode,notnull"`
	Score         *string                    `bun:"score,type:numeric"`
	Extra         map[string]json.RawMessage `bun:"extra,type:jsonb"`
}

// ToRecord copies the row into a record. Columns win over extra keys of the
// same name, which are dropped.
func (row *ScoreRow) ToRecord() ScoreRecord {
	record := ScoreRecord{
		Username: row.Username,
		Mode:     row.Mode,
	}
	if row.Score != nil {
		record.Score = json.Number(*row.Score)
	}

	for key, raw := range row.Extra {
		switch key {
		case fieldUsername, fieldMode, fieldScore:
			continue
		}
		if record.Extra == nil {
			record.Extra = make(map[string]json.RawMessage, len(row.Extra))
		}
		record.Extra[key] = append(json.RawMessage(nil), raw...)
	}

	return record
}
