package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"
)

// OpenMatch is one entry of the list_matches response.
type OpenMatch struct {
	MatchID string          `json:"match_id"`
	Size    int32           `json:"size"`
	Label   json.RawMessage `json:"label"`
}

// rpcListMatches returns the matches waiting for a player.
//
// Payload: unused.
// Returns: JSON array of OpenMatch.
func rpcListMatches(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userId, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	limit := 50
	authoritative := true
	minSize := 0
	maxSize := 1

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, openMatchQuery)
	if err != nil {
		logger.Error("RpcListMatches [User:%s]: Failed to list matches: %v", userId, err)
		return "", err
	}

	out := make([]OpenMatch, 0, len(matches))
	for _, m := range matches {
		label := json.RawMessage("{}")
		if m.GetLabel() != nil && json.Valid([]byte(m.GetLabel().GetValue())) {
			label = json.RawMessage(m.GetLabel().GetValue())
		}
		out = append(out, OpenMatch{MatchID: m.GetMatchId(), Size: m.GetSize(), Label: label})
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	logger.Debug("RpcListMatches [User:%s]: %d open matches", userId, len(out))
	return string(b), nil
}
