package router

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"maeul-forum/internal/domain"
)

func (e *env) createVote(tok string, postID uint, voteType string, options ...string) uint {
	e.t.Helper()
	w := e.do(http.MethodPost, "/api/votes", tok, map[string]any{
		"post_id":   postID,
		"title":     "어디를 먼저 고칠까요",
		"vote_type": voteType,
		"options":   options,
	})
	wantStatus(e.t, w, http.StatusOK)
	return uint(jsonNum(e.dataField(w, "id")))
}

func (e *env) voteOptionIDs(postID uint) []uint {
	e.t.Helper()
	w := e.do(http.MethodGet, "/api/votes/post/"+itoa(postID), "", nil)
	wantStatus(e.t, w, http.StatusOK)
	var opts []domain.VoteOptionResult
	if err := json.Unmarshal(e.dataField(w, "options"), &opts); err != nil {
		e.t.Fatalf("decode options: %v", err)
	}
	ids := make([]uint, len(opts))
	for i, o := range opts {
		ids[i] = o.ID
	}
	return ids
}

func TestVoteCreateAndResults(t *testing.T) {
	e := newEnv(t)
	owner, tok := e.approved("01030000001")
	_, tok2 := e.approved("01030000002")
	postID := e.post(owner.ID, domain.CategorySuggestion, "vote host")

	e.createVote(tok, postID, domain.VoteTypeSingle, "놀이터", "주차장", "화단")
	ids := e.voteOptionIDs(postID)
	if len(ids) != 3 {
		t.Fatalf("options = %d, want 3", len(ids))
	}

	w := e.do(http.MethodPost, "/api/votes/"+itoa(e.activeVoteID(postID))+"/cast", tok2,
		map[string]any{"option_ids": []uint{ids[0]}})
	wantStatus(t, w, http.StatusOK)

	w = e.do(http.MethodGet, "/api/votes/post/"+itoa(postID), tok2, nil)
	if got := jsonNum(e.dataField(w, "total_votes")); got != 1 {
		t.Errorf("total_votes = %d, want 1", got)
	}
	var mine []uint
	if err := json.Unmarshal(e.dataField(w, "my_votes"), &mine); err != nil {
		t.Fatalf("decode my_votes: %v", err)
	}
	if len(mine) != 1 || mine[0] != ids[0] {
		t.Errorf("my_votes = %v, want [%d]", mine, ids[0])
	}
}

func (e *env) activeVoteID(postID uint) uint {
	e.t.Helper()
	w := e.do(http.MethodGet, "/api/votes/post/"+itoa(postID), "", nil)
	return uint(jsonNum(e.dataField(w, "id")))
}

func TestSingleVoteRejectsMultipleOptions(t *testing.T) {
	e := newEnv(t)
	owner, tok := e.approved("01030000003")
	postID := e.post(owner.ID, domain.CategorySuggestion, "single vote")
	e.createVote(tok, postID, domain.VoteTypeSingle, "A", "B")
	ids := e.voteOptionIDs(postID)

	w := e.do(http.MethodPost, "/api/votes/"+itoa(e.activeVoteID(postID))+"/cast", tok,
		map[string]any{"option_ids": ids})
	wantStatus(t, w, http.StatusBadRequest)
}

func TestRecastReplacesBallot(t *testing.T) {
	e := newEnv(t)
	owner, tok := e.approved("01030000004")
	postID := e.post(owner.ID, domain.CategorySuggestion, "recast")
	e.createVote(tok, postID, domain.VoteTypeSingle, "A", "B")
	ids := e.voteOptionIDs(postID)
	voteID := e.activeVoteID(postID)

	w := e.do(http.MethodPost, "/api/votes/"+itoa(voteID)+"/cast", tok,
		map[string]any{"option_ids": []uint{ids[0]}})
	wantStatus(t, w, http.StatusOK)
	w = e.do(http.MethodPost, "/api/votes/"+itoa(voteID)+"/cast", tok,
		map[string]any{"option_ids": []uint{ids[1]}})
	wantStatus(t, w, http.StatusOK)

	// The old ballot is gone; only the new option counts.
	w = e.do(http.MethodGet, "/api/votes/post/"+itoa(postID), tok, nil)
	if got := jsonNum(e.dataField(w, "total_votes")); got != 1 {
		t.Errorf("total_votes = %d, want 1", got)
	}
	var mine []uint
	if err := json.Unmarshal(e.dataField(w, "my_votes"), &mine); err != nil {
		t.Fatalf("decode my_votes: %v", err)
	}
	if len(mine) != 1 || mine[0] != ids[1] {
		t.Errorf("my_votes = %v, want [%d]", mine, ids[1])
	}
}

func TestMultipleVoteAllowsSeveralOptions(t *testing.T) {
	e := newEnv(t)
	owner, tok := e.approved("01030000005")
	postID := e.post(owner.ID, domain.CategorySuggestion, "multi")
	e.createVote(tok, postID, domain.VoteTypeMultiple, "A", "B", "C")
	ids := e.voteOptionIDs(postID)

	w := e.do(http.MethodPost, "/api/votes/"+itoa(e.activeVoteID(postID))+"/cast", tok,
		map[string]any{"option_ids": []uint{ids[0], ids[2]}})
	wantStatus(t, w, http.StatusOK)

	w = e.do(http.MethodGet, "/api/votes/post/"+itoa(postID), tok, nil)
	if got := jsonNum(e.dataField(w, "total_votes")); got != 2 {
		t.Errorf("total_votes = %d, want 2", got)
	}
}

func TestCloseBlocksFurtherBallots(t *testing.T) {
	e := newEnv(t)
	owner, tok := e.approved("01030000006")
	_, otherTok := e.approved("01030000007")
	postID := e.post(owner.ID, domain.CategorySuggestion, "closable")
	e.createVote(tok, postID, domain.VoteTypeSingle, "A", "B")
	ids := e.voteOptionIDs(postID)
	voteID := e.activeVoteID(postID)

	// Only the post owner (or an admin) can close.
	w := e.do(http.MethodPost, "/api/votes/"+itoa(voteID)+"/close", otherTok, nil)
	wantStatus(t, w, http.StatusForbidden)

	w = e.do(http.MethodPost, "/api/votes/"+itoa(voteID)+"/close", tok, nil)
	wantStatus(t, w, http.StatusOK)

	w = e.do(http.MethodPost, "/api/votes/"+itoa(voteID)+"/cast", otherTok,
		map[string]any{"option_ids": []uint{ids[0]}})
	wantStatus(t, w, http.StatusNotFound)
}

func TestVoteCreateValidation(t *testing.T) {
	e := newEnv(t)
	owner, tok := e.approved("01030000008")
	_, otherTok := e.approved("01030000009")
	postID := e.post(owner.ID, domain.CategorySuggestion, "strict")

	// Fewer than two options.
	w := e.do(http.MethodPost, "/api/votes", tok, map[string]any{
		"post_id": postID, "title": "t", "vote_type": "single", "options": []string{"only"},
	})
	wantStatus(t, w, http.StatusBadRequest)

	// Unknown vote type.
	w = e.do(http.MethodPost, "/api/votes", tok, map[string]any{
		"post_id": postID, "title": "t", "vote_type": "ranked", "options": []string{"A", "B"},
	})
	wantStatus(t, w, http.StatusBadRequest)

	// Only the post owner can attach a vote.
	w = e.do(http.MethodPost, "/api/votes", otherTok, map[string]any{
		"post_id": postID, "title": "t", "vote_type": "single", "options": []string{"A", "B"},
	})
	wantStatus(t, w, http.StatusForbidden)
}

func TestVoteGetWithoutVoteIsNull(t *testing.T) {
	e := newEnv(t)
	owner, _ := e.approved("01030000010")
	postID := e.post(owner.ID, domain.CategorySuggestion, "voteless")

	w := e.do(http.MethodGet, "/api/votes/post/"+itoa(postID), "", nil)
	wantStatus(t, w, http.StatusOK)
	out := e.decode(w)
	if len(out.Data) != 0 && string(out.Data) != "null" {
		t.Errorf("data = %s, want empty", out.Data)
	}
}

func TestExpiredVoteRejectsCast(t *testing.T) {
	e := newEnv(t)
	owner, tok := e.approved("01030000010")
	postID := e.post(owner.ID, domain.CategorySuggestion, "expired vote")

	w := e.do(http.MethodPost, "/api/votes", tok, map[string]any{
		"post_id":   postID,
		"title":     "끝난 투표",
		"vote_type": domain.VoteTypeSingle,
		"options":   []string{"A", "B"},
		"end_date":  time.Now().Add(-time.Hour).UTC().Format(time.RFC3339),
	})
	wantStatus(t, w, http.StatusOK)

	ids := e.voteOptionIDs(postID)
	w = e.do(http.MethodPost, "/api/votes/"+itoa(e.activeVoteID(postID))+"/cast", tok,
		map[string]any{"option_ids": []uint{ids[0]}})
	wantStatus(t, w, http.StatusBadRequest)
}

func TestVoteEndDateFormats(t *testing.T) {
	e := newEnv(t)
	owner, tok := e.approved("01030000011")

	// Bare yyyy-mm-dd parses to midnight UTC, so a past date blocks casts.
	postID := e.post(owner.ID, domain.CategorySuggestion, "dated vote")
	w := e.do(http.MethodPost, "/api/votes", tok, map[string]any{
		"post_id":   postID,
		"title":     "날짜만 적은 투표",
		"vote_type": domain.VoteTypeSingle,
		"options":   []string{"A", "B"},
		"end_date":  "2020-01-01",
	})
	wantStatus(t, w, http.StatusOK)
	ids := e.voteOptionIDs(postID)
	w = e.do(http.MethodPost, "/api/votes/"+itoa(e.activeVoteID(postID))+"/cast", tok,
		map[string]any{"option_ids": []uint{ids[0]}})
	wantStatus(t, w, http.StatusBadRequest)

	other := e.post(owner.ID, domain.CategorySuggestion, "bad date vote")
	w = e.do(http.MethodPost, "/api/votes", tok, map[string]any{
		"post_id":   other,
		"title":     "잘못된 날짜",
		"vote_type": domain.VoteTypeSingle,
		"options":   []string{"A", "B"},
		"end_date":  "not-a-date",
	})
	wantStatus(t, w, http.StatusBadRequest)
}
