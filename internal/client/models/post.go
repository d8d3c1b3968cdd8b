package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostID is the canonical identifier of a history post. The backend sends
// ids either raw ("65f0...") or as an extended-JSON reference
// ({"$oid": "65f0..."}); both decode to the same PostID.
type PostID string

func (id PostID) String() string { return string(id) }

type oidRef struct {
	OID string `json:"$oid"`
}

// canonical lower-cases valid ObjectID hex so raw and wrapped forms compare
// equal; anything else is returned trimmed.
func canonical(s string) PostID {
	s = strings.TrimSpace(s)
	if oid, err := primitive.ObjectIDFromHex(s); err == nil {
		return PostID(oid.Hex())
	}
	return PostID(s)
}

// UnmarshalJSON accepts a string, a number, null or {"$oid": "..."}.
func (id *PostID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = canonical(s)
		return nil
	case b[0] == '{':
		var ref oidRef
		if err := json.Unmarshal(b, &ref); err != nil {
			return err
		}
		// non-hex $oid values are kept verbatim like raw string ids
		*id = canonical(ref.OID)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("unsupported post id %s", string(b))
		}
		*id = PostID(n.String())
		return nil
	}
}

// NormalizePostID turns user or server input into a PostID. It accepts the
// same shapes as the JSON decoder, including a literal {"$oid": "..."}.
func NormalizePostID(raw string) (PostID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", invalid("id", "post id is required")
	}
	if strings.HasPrefix(raw, "{") {
		var id PostID
		if err := id.UnmarshalJSON([]byte(raw)); err != nil {
			return "", invalid("id", err.Error())
		}
		if id == "" {
			return "", invalid("id", "post id is required")
		}
		return id, nil
	}
	return canonical(raw), nil
}

// HistoryPost is one entry of GET /user/posts.
type HistoryPost struct {
	ID              PostID   `json:"_id" yaml:"id"`
	Platform        string   `json:"platform" yaml:"platform"`
	Topic           string   `json:"topic" yaml:"topic"`
	Content         string   `json:"content" yaml:"content"`
	Images          []string `json:"images" yaml:"images"`
	EngagementScore float64  `json:"engagement_score" yaml:"engagement_score"`
}

// UnmarshalJSON falls back to a plain "id" field when "_id" is missing.
func (p *HistoryPost) UnmarshalJSON(b []byte) error {
	type plain HistoryPost
	var aux struct {
		plain
		AltID PostID `json:"id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*p = HistoryPost(aux.plain)
	if p.ID == "" {
		p.ID = aux.AltID
	}
	return nil
}
